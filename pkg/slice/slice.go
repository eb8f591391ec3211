// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice holds the generic projections the catalog views are built with.

Every helper returns a non-nil slice so an empty result renders as [] in JSON.
*/
package slice

// Map projects every element of items through fn.
func Map[In, Out any](items []In, fn func(In) Out) []Out {
	projected := make([]Out, 0, len(items))
	for _, item := range items {
		projected = append(projected, fn(item))
	}
	return projected
}

// Filter keeps the elements accepted by keep, preserving order.
func Filter[E any](items []E, keep func(E) bool) []E {
	kept := make([]E, 0, len(items))
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
