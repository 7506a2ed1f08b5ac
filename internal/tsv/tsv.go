// Package tsv splits the exported spreadsheets into rows.  There is no
// quoting or escaping: a tab always separates columns and a line feed always
// separates rows.
package tsv

import (
	"strings"
	"unicode"
)

// Row is one tab-separated line.
type Row []string

// Col returns column i, or "" when the row is too short.
func (r Row) Col(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Trimmed returns column i with surrounding whitespace removed.
func (r Row) Trimmed(i int) string { return Trim(r.Col(i)) }

// From returns the columns starting at index i.
func (r Row) From(i int) []string {
	if i >= len(r) {
		return nil
	}
	return r[i:]
}

// Trim removes leading and trailing whitespace, including a stray byte
// order mark left behind by spreadsheet exports.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// Lines drops every carriage return, splits on line feeds and discards the
// header line.  Blank lines are kept; callers decide what they mean.
func Lines(data []byte) []Row {
	text := strings.ReplaceAll(string(data), "\r", "")
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return nil
	}
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, Row(strings.Split(line, "\t")))
	}
	return rows
}
