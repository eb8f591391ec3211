// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Count is one category of a [Summary].
type Count struct {
	Category string
	Count    int64
}

// Summary is the per-harvest category breakdown. It is stored and served as
// an ordered list of single-key objects:
//
//	[{"Lexical resources": 1}, {"Language descriptions": 6}]
type Summary []Count

// Summarize derives the summary of a document, one entry per category in
// source order. A category without a usable "count" contributes 0.
func Summarize(document *Document) Summary {
	summary := make(Summary, 0, document.Len())
	for _, entry := range document.Entries() {
		summary = append(summary, Count{Category: entry.Key, Count: categoryCount(entry.Value)})
	}
	return summary
}

// Get returns the count of a category and whether it is present.
func (summary Summary) Get(category string) (int64, bool) {
	for _, count := range summary {
		if count.Category == category {
			return count.Count, true
		}
	}
	return 0, false
}

// MarshalJSON writes the list form. A nil summary is written as [].
func (summary Summary) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('[')
	for i, count := range summary {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(count.Category)
		if err != nil {
			return nil, err
		}
		buffer.WriteByte('{')
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.WriteString(strconv.FormatInt(count.Count, 10))
		buffer.WriteByte('}')
	}
	buffer.WriteByte(']')
	return buffer.Bytes(), nil
}

// UnmarshalJSON reads the list form. Each element may hold several keys; they
// are read in source order.
func (summary *Summary) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("resources: summary: %w", err)
	}

	parsed := make(Summary, 0, len(items))
	for _, item := range items {
		document, err := Parse(item)
		if err != nil {
			return fmt.Errorf("resources: summary entry: %w", err)
		}
		for _, entry := range document.Entries() {
			parsed = append(parsed, Count{Category: entry.Key, Count: numberValue(entry.Value)})
		}
	}

	*summary = parsed
	return nil
}

// categoryCount reads the "count" field of a category value.
func categoryCount(value json.RawMessage) int64 {
	var category struct {
		Count json.RawMessage `json:"count"`
	}
	if err := json.Unmarshal(value, &category); err != nil {
		return 0
	}
	return numberValue(category.Count)
}

// numberValue accepts a JSON number or a numeric string. Fractions are
// truncated; anything else is 0.
func numberValue(raw json.RawMessage) int64 {
	text := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}
