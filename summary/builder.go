package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/posterior/model"
)

// SortByMean returns a copy of rows sorted by posterior mean ascending.
// The sort is stable: ties keep their extraction order.
func SortByMean(rows []model.PosteriorRow) []model.PosteriorRow {
	out := append([]model.PosteriorRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mean < out[j].Mean
	})
	return out
}

// Filter restricts rows to the named features, preserving the rows' relative
// order. Call it after sorting so the result is a subsequence of the full
// ordering. In strict mode every requested feature must be present among the
// rows; unknown names fail with a lookup error listing them all. In lenient
// mode unknown names are silently dropped. A nil or empty feature list
// returns the rows unchanged.
func Filter(rows []model.PosteriorRow, features []string, strict bool) ([]model.PosteriorRow, error) {
	if len(features) == 0 {
		return rows, nil
	}

	want := make(map[string]bool, len(features))
	for _, f := range features {
		want[f] = true
	}

	out := make([]model.PosteriorRow, 0, len(features))
	seen := make(map[string]bool, len(features))
	for _, row := range rows {
		if want[row.Name] {
			out = append(out, row)
			seen[row.Name] = true
		}
	}

	if strict {
		var missing []string
		for _, f := range features {
			if !seen[f] {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s", model.ErrUnknownFeature, strings.Join(missing, ", "))
		}
	}
	return out, nil
}

// Join pairs each row with its correlation annotation and produces the
// report. Row order is preserved exactly; it is the report's authoritative
// order. A row whose name has no annotation entry gets an empty
// CorrelatedWith, which is the documented default rather than an error.
func Join(rows []model.PosteriorRow, ann model.Annotations) *model.Report {
	rep := &model.Report{Rows: make([]model.ReportRow, len(rows))}
	for i, row := range rows {
		rep.Rows[i] = model.ReportRow{
			Name:           row.Name,
			Mean:           row.Mean,
			SD:             row.SD,
			SE:             row.SE,
			CorrelatedWith: ann.Joined(row.Name),
		}
	}
	return rep
}

// Builder assembles a report from extracted rows and annotations.
type Builder struct {
	// Features restricts the report to the named parameters. Empty means
	// no restriction.
	Features []string

	// Strict makes an unknown feature name an error rather than a silent
	// drop.
	Strict bool
}

// NewBuilder creates a builder with strict feature lookup enabled.
func NewBuilder() *Builder {
	return &Builder{Strict: true}
}

// Build sorts rows by mean ascending, applies the feature filter, and joins
// the result with the annotations.
func (b *Builder) Build(rows []model.PosteriorRow, ann model.Annotations) (*model.Report, error) {
	ordered := SortByMean(rows)
	ordered, err := Filter(ordered, b.Features, b.Strict)
	if err != nil {
		return nil, err
	}
	return Join(ordered, ann), nil
}
