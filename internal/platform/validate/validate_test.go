// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/validate"
)

// fields runs the rules on a fresh validator and returns the failed fields.
func fields(t *testing.T, rules func(*validate.Validator)) []string {
	t.Helper()

	v := &validate.Validator{}
	rules(v)
	err := v.Err()
	if err == nil {
		return nil
	}

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.Equal(t, apperr.CodeValidation, appError.Code)

	failed := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		failed = append(failed, detail.Field)
	}
	return failed
}

func TestValidator(t *testing.T) {
	tests := []struct {
		name  string
		rules func(*validate.Validator)
		want  []string
	}{
		{"name present", func(v *validate.Validator) { v.Required("name", "Algeria") }, nil},
		{"name empty", func(v *validate.Validator) { v.Required("name", "") }, []string{"name"}},
		{"name blank", func(v *validate.Validator) { v.Required("name", " \t") }, []string{"name"}},
		{"countries present", func(v *validate.Validator) { v.RequiredList("countries", []string{"Algeria", "Angola"}) }, nil},
		{"countries missing", func(v *validate.Validator) { v.RequiredList("countries", nil) }, []string{"countries"}},
		{"blank country", func(v *validate.Validator) { v.RequiredList("countries", []string{"Algeria", " "}) }, []string{"countries[1]"}},
		{"short code", func(v *validate.Validator) { v.MaxLen("code", "aaa", 3) }, nil},
		{"long code", func(v *validate.Validator) { v.MaxLen("code", "aaaa", 3) }, []string{"code"}},
		{"multibyte counts runes", func(v *validate.Validator) { v.MaxLen("name", "Ñañ", 3) }, nil},
		{"custom passes", func(v *validate.Validator) { v.Custom("code", false, "bad") }, nil},
		{"custom fails", func(v *validate.Validator) { v.Custom("code", true, "bad") }, []string{"code"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(t, tt.rules))
		})
	}
}

func TestValidator_HarvestDate(t *testing.T) {
	tests := map[string]bool{
		"20180501":   true,
		"20160229":   true,
		"":           true,
		"2018-05-01": false,
		"20181301":   false,
		"20170229":   false,
		"2018050":    false,
		"２０１８０５０１":   false,
	}

	for value, valid := range tests {
		t.Run(value, func(t *testing.T) {
			v := (&validate.Validator{}).HarvestDate("date", value)
			assert.Equal(t, !valid, v.HasErrors())
		})
	}
}

func TestValidator_Accumulates(t *testing.T) {
	failed := fields(t, func(v *validate.Validator) {
		v.Required("code", "").Required("date", "").HarvestDate("date", "yesterday")
	})

	assert.Equal(t, []string{"code", "date", "date"}, failed)
}
