package layout

import (
	"path/filepath"
	"testing"
)

func TestLayout_Paths(t *testing.T) {
	l := New("")
	if l.DataDir != "data" {
		t.Fatalf("expected default data dir, got %q", l.DataDir)
	}
	if got, want := l.IndexPath(), filepath.Join("data", "events", "index.json"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got, want := l.AttendancePath("c104"), filepath.Join("data", "events", "c104", "attendance.tsv"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got, want := l.BoothsPath("c104"), filepath.Join("data", "events", "c104", "booths.json"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRemoteKeys(t *testing.T) {
	if RemoteIndexKey != "events/index.json" {
		t.Fatalf("unexpected index key %q", RemoteIndexKey)
	}
	if got := RemoteBoothsKey("c104"); got != "events/c104/booths.json" {
		t.Fatalf("unexpected booths key %q", got)
	}
	// The key is built verbatim; callers reject such ids before getting here.
	if got := RemoteBoothsKey("a/../b"); got != "events/a/../b/booths.json" {
		t.Fatalf("expected an uncleaned key, got %q", got)
	}
}

func TestValidEventID(t *testing.T) {
	for _, id := range []string{"c104", "spring-2025", "ff_42"} {
		if !ValidEventID(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}
	for _, id := range []string{"", ".", "..", "a/b", `a\b`, "../x"} {
		if ValidEventID(id) {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}
