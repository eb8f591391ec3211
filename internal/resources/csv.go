// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package resources

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// LanguageSummary pairs a language code with the summary of its harvest.
type LanguageSummary struct {
	Code    string
	Summary Summary
}

// Row is one language of a [Projection]. Counts line up with
// [Projection.Categories].
type Row struct {
	Code   string
	Counts []int64
}

// Projection is the table form of several summaries.
type Projection struct {
	Categories []string
	Rows       []Row
}

// Project builds the table of the given summaries. Categories are the union
// over all languages, sorted; a language without a category counts 0 there.
// Rows keep the input order.
func Project(languages []LanguageSummary) Projection {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, language := range languages {
		for _, count := range language.Summary {
			if _, ok := seen[count.Category]; !ok {
				seen[count.Category] = struct{}{}
				categories = append(categories, count.Category)
			}
		}
	}
	slices.Sort(categories)

	rows := make([]Row, 0, len(languages))
	for _, language := range languages {
		counts := make([]int64, len(categories))
		for i, category := range categories {
			counts[i], _ = language.Summary.Get(category)
		}
		rows = append(rows, Row{Code: language.Code, Counts: counts})
	}

	return Projection{Categories: categories, Rows: rows}
}

// Header returns the CSV header: "code" followed by the categories.
func (projection Projection) Header() []string {
	return append([]string{"code"}, projection.Categories...)
}

// WriteCSV renders the projection, header first.
func WriteCSV(writer io.Writer, projection Projection) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(projection.Header()); err != nil {
		return fmt.Errorf("resources: csv header: %w", err)
	}

	record := make([]string, 0, len(projection.Categories)+1)
	for _, row := range projection.Rows {
		record = append(record[:0], row.Code)
		for _, count := range row.Counts {
			record = append(record, strconv.FormatInt(count, 10))
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("resources: csv row %s: %w", row.Code, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
