// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 issues the primary keys of the catalog tables.
//
// Version 7 keys embed a millisecond timestamp, so rows inserted by one
// harvest run sort together in both stores.
package uuidv7

import "github.com/google/uuid"

// New returns a fresh UUIDv7 in canonical text form.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s parses as a version 7 UUID.
func Valid(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 7
}
