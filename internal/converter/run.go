package converter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iliyamo/booth-data/internal/layout"
	"github.com/iliyamo/booth-data/internal/model"
)

var (
	// ErrMissingEventID is returned when no event id was given.
	ErrMissingEventID = errors.New("please provide an event ID using --eventId")
	// ErrInvalidEventID is returned for ids that are not a single path
	// segment.
	ErrInvalidEventID = errors.New("event ID must be a single directory name")
	// ErrEventNotFound is returned when the event directory does not exist.
	ErrEventNotFound = errors.New("event does not exist in the data directory")
	// ErrInputMissing is returned when one of the three exports is absent.
	ErrInputMissing = errors.New("input file does not exist")
)

// Run converts the exports of eventID under l and writes booths.json,
// replacing any previous file.  It returns the converted result and the
// path written.
func (c *Converter) Run(l layout.Layout, eventID string) (Result, string, error) {
	if eventID == "" {
		return Result{}, "", ErrMissingEventID
	}
	if !layout.ValidEventID(eventID) {
		return Result{}, "", fmt.Errorf("event ID %q: %w", eventID, ErrInvalidEventID)
	}
	if !exists(l.EventDir(eventID)) {
		return Result{}, "", fmt.Errorf("event ID %s: %w", eventID, ErrEventNotFound)
	}

	inputs := []struct {
		label string
		path  string
	}{
		{"attendance TSV", l.AttendancePath(eventID)},
		{"links TSV", l.LinksPath(eventID)},
		{"tags TSV", l.TagsPath(eventID)},
	}
	for _, in := range inputs {
		if !exists(in.path) {
			return Result{}, "", fmt.Errorf("%s file at path %s: %w", in.label, in.path, ErrInputMissing)
		}
	}

	contents := make([][]byte, len(inputs))
	for i, in := range inputs {
		data, err := os.ReadFile(in.path)
		if err != nil {
			return Result{}, "", fmt.Errorf("read %s: %w", in.label, err)
		}
		contents[i] = data
	}

	res := c.Convert(contents[0], contents[1], contents[2])

	out := l.BoothsPath(eventID)
	if err := WriteBooths(out, res.Booths); err != nil {
		return res, "", err
	}
	c.logf("booths data written to %s", out)
	return res, out, nil
}

// Encode renders booths as a two-space indented JSON array.  HTML characters
// are left unescaped and there is no trailing newline.
func Encode(booths []model.Booth) ([]byte, error) {
	if booths == nil {
		booths = []model.Booth{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(booths); err != nil {
		return nil, fmt.Errorf("encode booths: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteBooths encodes booths and writes them to path.
func WriteBooths(path string, booths []model.Booth) error {
	data, err := Encode(booths)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write booths: %w", err)
	}
	return nil
}

// ReadBooths loads a booths.json file.
func ReadBooths(path string) ([]model.Booth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var booths []model.Booth
	if err := json.Unmarshal(data, &booths); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return booths, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
