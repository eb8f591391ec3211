// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate checks mutation payloads before the service touches a store.

A [Validator] gathers every failed rule of one payload, so a scraper sees all
of its mistakes in a single 400 and nothing is written half way.

	v := &validate.Validator{}
	v.Required("code", code).HarvestDate("date", date)
	if err := v.Err(); err != nil {
	    return err
	}
*/
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/langdata/internal/platform/apperr"
)

// HarvestDateLayout is the time layout of harvest dates (YYYYMMDD).
const HarvestDateLayout = "20060102"

// ErrInvalidJSON rejects a body that does not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates field failures. The zero value is ready to use and
// belongs to a single goroutine.
type Validator struct {
	failures []apperr.FieldError
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Required rejects empty and whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, blank(value), "This field is required")
}

// RequiredList rejects an empty list and reports each blank entry by index.
func (v *Validator) RequiredList(field string, values []string) *Validator {
	if len(values) == 0 {
		return v.Custom(field, true, "At least one entry is required")
	}
	for index, value := range values {
		v.Custom(fmt.Sprintf("%s[%d]", field, index), blank(value), "Entry must not be empty")
	}
	return v
}

// MaxLen rejects values longer than limit characters (not bytes).
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

// HarvestDate rejects anything but eight digits naming a real calendar day.
// An empty value passes; pair it with [Validator.Required].
func (v *Validator) HarvestDate(field, value string) *Validator {
	switch {
	case value == "":
	case len(value) != len(HarvestDateLayout) || strings.IndexFunc(value, notDigit) >= 0:
		v.Custom(field, true, "Must be a date formatted as YYYYMMDD")
	default:
		_, err := time.Parse(HarvestDateLayout, value)
		v.Custom(field, err != nil, "Must be a valid calendar date")
	}
	return v
}

func notDigit(r rune) bool {
	return r > unicode.MaxASCII || !unicode.IsDigit(r)
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err folds the failures into one VALIDATION_ERROR, or returns nil.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.failures...)
}
