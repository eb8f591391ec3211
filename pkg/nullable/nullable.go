// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package nullable converts between optional Go values (*T) and [sql.Null]
columns for the database/sql store, where the driver cannot scan NULL into a
pointer field directly.
*/
package nullable

import "database/sql"

// Ptr returns nil for a NULL column and a pointer to a copy otherwise.
func Ptr[T any](column sql.Null[T]) *T {
	if !column.Valid {
		return nil
	}
	value := column.V
	return &value
}

// From turns an optional value into a column argument. nil becomes NULL.
func From[T any](value *T) sql.Null[T] {
	if value == nil {
		return sql.Null[T]{}
	}
	return sql.Null[T]{V: *value, Valid: true}
}
