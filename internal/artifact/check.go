// Package artifact checks and publishes an event's generated files.  Every
// local check runs before the first byte goes over the network.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iliyamo/booth-data/internal/layout"
)

var (
	ErrMissingEventID = errors.New("please provide an event ID using --eventId")
	ErrInvalidEventID = errors.New("event ID must be a single directory name")
	ErrIndexMissing   = errors.New("events index does not exist")
	ErrEventMissing   = errors.New("event folder does not exist")
	ErrBoothsMissing  = errors.New("event is missing required files")
	ErrInvalidJSON    = errors.New("invalid JSON")
)

// File is one artifact and the key it is published under.
type File struct {
	Path string
	Key  string
}

// Event lists the files Publish uploads, in upload order.
type Event struct {
	ID     string
	Index  File
	Booths File
}

// Files returns the artifacts in upload order: the global index first.
func (e Event) Files() []File { return []File{e.Index, e.Booths} }

// Check verifies, in order, that the global index exists, the event folder
// exists, the event's booths.json exists, and that both files are valid
// JSON.  The first failure is returned.
func Check(l layout.Layout, eventID string) (Event, error) {
	if eventID == "" {
		return Event{}, ErrMissingEventID
	}
	if !layout.ValidEventID(eventID) {
		return Event{}, fmt.Errorf("event ID %q: %w", eventID, ErrInvalidEventID)
	}
	ev := Event{
		ID:     eventID,
		Index:  File{Path: l.IndexPath(), Key: layout.RemoteIndexKey},
		Booths: File{Path: l.BoothsPath(eventID), Key: layout.RemoteBoothsKey(eventID)},
	}

	if !exists(ev.Index.Path) {
		return Event{}, fmt.Errorf("%s: %w", ev.Index.Path, ErrIndexMissing)
	}
	if !exists(l.EventDir(eventID)) {
		return Event{}, fmt.Errorf("event ID %s: %w", eventID, ErrEventMissing)
	}
	if !exists(ev.Booths.Path) {
		return Event{}, fmt.Errorf("event ID %s: %w", eventID, ErrBoothsMissing)
	}

	for _, f := range ev.Files() {
		if err := validJSON(f.Path); err != nil {
			return Event{}, err
		}
	}
	return ev, nil
}

func validJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !json.Valid(data) {
		// Unmarshal again for a message that points at the offending byte.
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%s: %w: %v", path, ErrInvalidJSON, err)
		}
		return fmt.Errorf("%s: %w", path, ErrInvalidJSON)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
