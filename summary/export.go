package summary

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/tsawler/posterior/model"
)

// WriteJSON writes the report as an indented JSON object with a "rows"
// array, preserving report order.
func WriteJSON(w io.Writer, rep *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding report JSON: %w", err)
	}
	return nil
}

// WriteHTML writes the report as a standalone HTML table, one <tr> per
// report row in report order, cell values escaped.
func WriteHTML(w io.Writer, rep *model.Report) error {
	write := func(s string) error {
		_, err := io.WriteString(w, s)
		return err
	}

	if err := write("<table>\n<thead>\n<tr><th>parameter</th><th>mean</th><th>sd</th><th>se</th><th>correlated_with</th></tr>\n</thead>\n<tbody>\n"); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		line := "<tr>" +
			"<td>" + html.EscapeString(row.Name) + "</td>" +
			"<td>" + strconv.FormatFloat(row.Mean, 'g', 6, 64) + "</td>" +
			"<td>" + strconv.FormatFloat(row.SD, 'g', 6, 64) + "</td>" +
			"<td>" + strconv.FormatFloat(row.SE, 'g', 6, 64) + "</td>" +
			"<td>" + html.EscapeString(row.CorrelatedWith) + "</td>" +
			"</tr>\n"
		if err := write(line); err != nil {
			return err
		}
	}
	return write("</tbody>\n</table>\n")
}
