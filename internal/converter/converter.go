// Package converter joins an event's attendance, links and tags exports into
// the booths.json artifact.  The column layout of each file is fixed; see
// the constants below.
package converter

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"unicode"

	"github.com/iliyamo/booth-data/internal/model"
	"github.com/iliyamo/booth-data/internal/tsv"
)

// attendance.tsv columns
const (
	colID             = 0
	colCircle         = 1
	colArtist         = 2 // unused
	colCoverImageName = 3
	colFirstDay       = 4 // (location, isBorrowed) pairs from here on
)

// links.tsv columns
const (
	colLinkCircle   = 0
	colLinkName     = 1
	colLinkCategory = 2
	colLinkURL      = 3
)

// tags.tsv columns
const (
	colTagCircle = 0
	colTag       = 1
)

// borrowedMarker is the only value that marks a location as borrowed.
const borrowedMarker = "TRUE"

// Result is the outcome of one conversion.
type Result struct {
	Booths   []model.Booth
	Warnings []string
}

// Converter joins the three exports.  Warnings go to Logger, or to stderr
// through the standard logger when Logger is nil.
type Converter struct {
	Logger *log.Logger
}

// New returns a Converter that logs warnings to w.
func New(w io.Writer) *Converter {
	if w == nil {
		w = os.Stderr
	}
	return &Converter{Logger: log.New(w, "", log.LstdFlags)}
}

// Convert builds one Booth per attendance row and merges links and tags
// into them.  Rows that cannot be used are skipped; only links and tags that
// name an unknown circle produce a warning.
func (c *Converter) Convert(attendance, links, tags []byte) Result {
	ix := newBoothIndex()
	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		c.logf("warning: %s", msg)
	}

	for _, row := range tsv.Lines(attendance) {
		if b, ok := boothFromRow(row); ok {
			ix.put(b)
		}
	}

	for _, row := range tsv.Lines(links) {
		circle := row.Col(colLinkCircle)
		b, ok := ix.get(tsv.Trim(circle))
		if !ok {
			warn("booth with circle %q not found in attendance data while processing its link entry", circle)
			continue
		}
		name, category, url := row.Trimmed(colLinkName), row.Trimmed(colLinkCategory), row.Trimmed(colLinkURL)
		if name == "" || category == "" || url == "" {
			continue
		}
		b.Links = append(b.Links, model.Link{Name: name, Category: category, URL: url})
	}

	for _, row := range tsv.Lines(tags) {
		circle := row.Col(colTagCircle)
		b, ok := ix.get(tsv.Trim(circle))
		if !ok {
			warn("booth with circle %q not found in attendance data while processing its tag entry", circle)
			continue
		}
		tag := row.Trimmed(colTag)
		if tag == "" {
			continue
		}
		b.Tags = append(b.Tags, tag)
	}

	return Result{Booths: ix.booths(), Warnings: warnings}
}

func (c *Converter) logf(format string, args ...any) {
	if c == nil || c.Logger == nil {
		log.Printf(format, args...)
		return
	}
	c.Logger.Printf(format, args...)
}

// boothFromRow turns one attendance row into a Booth.  It reports false when
// the id column does not start with an integer.
func boothFromRow(row tsv.Row) (*model.Booth, bool) {
	id, ok := parseID(row.Col(colID))
	if !ok {
		return nil, false
	}
	b := model.NewBooth(id, row.Trimmed(colCircle), row.Trimmed(colCoverImageName))

	days := row.From(colFirstDay)
	for i := 0; i < len(days); i += 2 {
		location := tsv.Trim(days[i])
		if location == "" {
			continue
		}
		var flag string
		if i+1 < len(days) {
			flag = tsv.Trim(days[i+1])
		}
		b.Attendance = append(b.Attendance, model.Attendance{
			Day:        i/2 + 1,
			Location:   location,
			IsBorrowed: flag == borrowedMarker,
		})
	}
	return b, true
}

// parseID reads a base-10 integer prefix: leading whitespace and a sign are
// allowed and anything after the digits is ignored, so "12a" is 12 and "a12"
// is rejected.  Values outside the int range are rejected.
func parseID(s string) (int, bool) {
	i := 0
	runes := []rune(s)
	for i < len(runes) && (unicode.IsSpace(runes[i]) || runes[i] == '\uFEFF') {
		i++
	}
	start := i
	if i < len(runes) && (runes[i] == '+' || runes[i] == '-') {
		i++
	}
	digits := i
	for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, false
	}
	n, err := strconv.Atoi(string(runes[start:i]))
	if err != nil {
		return 0, false
	}
	return n, true
}
