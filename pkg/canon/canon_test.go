// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package canon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/langdata/pkg/canon"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Algeria", "Algeria"},
		{"trimmed", "  Algeria \n", "Algeria"},
		{"inner whitespace", "Papua   New\tGuinea", "Papua New Guinea"},
		{"decomposed accent", "Co\u0302te d'Ivoire", "C\u00f4te d'Ivoire"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canon.Name(tt.in))
		})
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, "aaa", canon.Code(" aaa "))
	assert.Equal(t, "AAA", canon.Code("AAA"))
}

func TestIsFileSafe(t *testing.T) {
	assert.True(t, canon.IsFileSafe("aaa"))
	assert.True(t, canon.IsFileSafe("20180501"))
	assert.False(t, canon.IsFileSafe(""))
	assert.False(t, canon.IsFileSafe(".."))
	assert.False(t, canon.IsFileSafe("../etc"))
	assert.False(t, canon.IsFileSafe(`a\b`))
}
