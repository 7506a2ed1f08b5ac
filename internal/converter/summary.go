package converter

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary prints one line per booth and the warning count.
func WriteSummary(w io.Writer, res Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"ID", "Circle", "Days", "Links", "Tags"})
	for _, b := range res.Booths {
		days := make([]string, 0, len(b.Attendance))
		for _, a := range b.Attendance {
			d := fmt.Sprintf("%d:%s", a.Day, a.Location)
			if a.IsBorrowed {
				d += "*"
			}
			days = append(days, d)
		}
		t.AppendRow(table.Row{b.ID, b.Circle, strings.Join(days, " "), len(b.Links), strings.Join(b.Tags, ", ")})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d booths", len(res.Booths)), "", "", fmt.Sprintf("%d warnings", len(res.Warnings))})
	t.Render()
}
