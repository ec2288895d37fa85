package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Annotations maps a parameter name to the ordered names of the other
// parameters whose absolute pairwise posterior correlation with it exceeds
// the annotation threshold. Order follows the covariance matrix's column
// order. Derived entirely from a fit's covariance; no hidden state.
type Annotations map[string][]string

// Joined returns the annotation list for name joined with single spaces, or
// "" when the name has no entry. Absence is a documented default, not an
// error: a filtered report may carry rows the covariance never saw.
func (a Annotations) Joined(name string) string {
	return strings.Join(a[name], " ")
}

// ReportRow is one row of a finished report: a coefficient's posterior
// summary plus the names of the parameters it is strongly correlated with.
type ReportRow struct {
	Name           string  `json:"name"`
	Mean           float64 `json:"mean"`
	SD             float64 `json:"sd"`
	SE             float64 `json:"se"`
	CorrelatedWith string  `json:"correlated_with"`
}

// Report is the final ordered, annotated posterior summary table, sorted by
// posterior mean ascending (ties keep extraction order) and optionally
// restricted to a feature subset. Row order is authoritative: exports and
// plots reproduce it exactly.
type Report struct {
	Rows []ReportRow `json:"rows"`
}

// Len returns the number of rows.
func (r *Report) Len() int {
	return len(r.Rows)
}

// Names returns the parameter names in report order.
func (r *Report) Names() []string {
	names := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		names[i] = row.Name
	}
	return names
}

var reportHeader = []string{"parameter", "mean", "sd", "se", "correlated_with"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func (r *Report) cells() [][]string {
	rows := make([][]string, 0, len(r.Rows)+1)
	rows = append(rows, reportHeader)
	for _, row := range r.Rows {
		rows = append(rows, []string{
			row.Name,
			formatFloat(row.Mean),
			formatFloat(row.SD),
			formatFloat(row.SE),
			row.CorrelatedWith,
		})
	}
	return rows
}

// String renders the report as an aligned plain-text table.
func (r *Report) String() string {
	cells := r.cells()
	widths := make([]int, len(reportHeader))
	for _, row := range cells {
		for j, cell := range row {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}
	var sb strings.Builder
	var line strings.Builder
	for _, row := range cells {
		line.Reset()
		for j, cell := range row {
			if j > 0 {
				line.WriteString("  ")
			}
			fmt.Fprintf(&line, "%-*s", widths[j], cell)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToCSV converts the report to CSV, header row first.
func (r *Report) ToCSV() string {
	return r.delimited(",")
}

// ToTSV converts the report to tab-separated text, header row first.
func (r *Report) ToTSV() string {
	return r.delimited("\t")
}

func (r *Report) delimited(sep string) string {
	var sb strings.Builder
	for _, row := range r.cells() {
		for j, cell := range row {
			if strings.Contains(cell, sep) || strings.Contains(cell, "\"") || strings.Contains(cell, "\n") {
				cell = "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
			}
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the report to a markdown table.
func (r *Report) ToMarkdown() string {
	cells := r.cells()
	var sb strings.Builder
	for j, cell := range cells[0] {
		sb.WriteString("| ")
		sb.WriteString(cell)
		sb.WriteString(" ")
		if j == len(cells[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")
	for j := range cells[0] {
		sb.WriteString("|---")
		if j == len(cells[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")
	for _, row := range cells[1:] {
		for j, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
			if j == len(row)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
