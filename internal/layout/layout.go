// Package layout knows where event files live on disk and under which keys
// they are stored remotely.  Both tools and the preview server resolve paths
// through it so the local tree and the bucket stay in the same shape.
package layout

import (
	"path/filepath"
	"strings"
)

const (
	attendanceFile = "attendance.tsv"
	linksFile      = "links.tsv"
	tagsFile       = "tags.tsv"
	boothsFile     = "booths.json"
	indexFile      = "index.json"

	// RemoteIndexKey is the object key of the global events index.
	RemoteIndexKey = "events/index.json"
)

// Layout roots the event tree at DataDir (normally "data").
type Layout struct {
	DataDir string
}

// New returns a Layout rooted at dataDir.  An empty dataDir means "data".
func New(dataDir string) Layout {
	if dataDir == "" {
		dataDir = "data"
	}
	return Layout{DataDir: dataDir}
}

// EventsDir is data/events.
func (l Layout) EventsDir() string { return filepath.Join(l.DataDir, "events") }

// IndexPath is data/events/index.json.
func (l Layout) IndexPath() string { return filepath.Join(l.EventsDir(), indexFile) }

// EventDir is data/events/{eventID}.
func (l Layout) EventDir(eventID string) string { return filepath.Join(l.EventsDir(), eventID) }

// AttendancePath is data/events/{eventID}/attendance.tsv.
func (l Layout) AttendancePath(eventID string) string {
	return filepath.Join(l.EventDir(eventID), attendanceFile)
}

// LinksPath is data/events/{eventID}/links.tsv.
func (l Layout) LinksPath(eventID string) string {
	return filepath.Join(l.EventDir(eventID), linksFile)
}

// TagsPath is data/events/{eventID}/tags.tsv.
func (l Layout) TagsPath(eventID string) string {
	return filepath.Join(l.EventDir(eventID), tagsFile)
}

// BoothsPath is data/events/{eventID}/booths.json.
func (l Layout) BoothsPath(eventID string) string {
	return filepath.Join(l.EventDir(eventID), boothsFile)
}

// RemoteBoothsKey is the object key of an event's booths artifact.
func RemoteBoothsKey(eventID string) string {
	return "events/" + eventID + "/" + boothsFile
}

// ValidEventID reports whether id is a single directory name under the
// events directory.  Run, Check and the preview server all require it.
func ValidEventID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
