// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package retention prunes harvests that are no longer worth keeping.

The datasource is harvested daily but only the first harvest of every month
is archived. A retention pass keeps today's harvest and every
first-of-month harvest, and deletes the rest with their resource documents.
*/
package retention

import (
	"fmt"
	"regexp"
	"time"
	_ "time/tzdata"

	"github.com/taibuivan/langdata/internal/platform/validate"
)

// monthlyDate matches harvest dates taken on the first of a month.
var monthlyDate = regexp.MustCompile(`\d{6}01`)

// Policy decides which harvest dates survive a retention pass.
type Policy struct {
	location *time.Location
	now      func() time.Time
}

// NewPolicy returns a policy whose "today" is computed in the named IANA
// time zone (e.g. "Australia/Melbourne").
func NewPolicy(timezone string) (*Policy, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("retention: unknown time zone %q: %w", timezone, err)
	}
	return &Policy{location: location, now: time.Now}, nil
}

// WithClock returns a copy of the policy reading the current time from now.
func (policy *Policy) WithClock(now func() time.Time) *Policy {
	return &Policy{location: policy.location, now: now}
}

// Today returns the current date in the policy's time zone as YYYYMMDD.
func (policy *Policy) Today() string {
	return policy.now().In(policy.location).Format(validate.HarvestDateLayout)
}

// Keep reports whether the harvests of date survive a pass run on today.
func (policy *Policy) Keep(date, today string) bool {
	return date == today || monthlyDate.MatchString(date)
}
