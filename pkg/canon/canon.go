// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package canon normalizes the natural keys of the catalog.
//
// Region and country names arrive from a scraper that reads several archive
// front-ends, so the same name may show up precomposed in one harvest and
// decomposed in the next ("Côte d'Ivoire"). Keys are stored in NFC with
// collapsed whitespace so both spellings resolve to the same row.
package canon

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name returns the NFC form of s with surrounding whitespace trimmed and
// inner runs of whitespace collapsed to one space.
func Name(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Code returns the NFC form of a language code with whitespace trimmed.
// Case is preserved.
func Code(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// IsFileSafe reports whether s can be used as a single path element of the
// resource repository.
func IsFileSafe(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}
