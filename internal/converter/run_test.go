package converter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iliyamo/booth-data/internal/layout"
)

func writeEvent(t *testing.T, l layout.Layout, eventID string, files map[string]string) {
	t.Helper()
	dir := l.EventDir(eventID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestRun_WritesBoothsJSON(t *testing.T) {
	l := layout.New(t.TempDir())
	writeEvent(t, l, "summer", map[string]string{
		"attendance.tsv": attendanceHeader + "1\tAcme Circle\tJane\tcover.png\tHallA\tFALSE\t\t\t",
		"links.tsv":      linksHeader + "Acme Circle\tTwitter\tsocial\thttp://x.example",
		"tags.tsv":       tagsHeader + "Acme Circle\tfanart",
	})
	if err := os.WriteFile(l.BoothsPath("summer"), []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, out, err := quiet().Run(l, "summer")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if out != l.BoothsPath("summer") {
		t.Fatalf("expected output at %s, got %s", l.BoothsPath("summer"), out)
	}
	if len(res.Booths) != 1 {
		t.Fatalf("expected 1 booth, got %d", len(res.Booths))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want, _ := Encode(res.Booths)
	if !bytes.Equal(data, want) {
		t.Fatalf("file does not match encoded result\n got: %s\nwant: %s", data, want)
	}

	booths, err := ReadBooths(out)
	if err != nil {
		t.Fatalf("read booths: %v", err)
	}
	if booths[0].Circle != "Acme Circle" || booths[0].Tags[0] != "fanart" {
		t.Fatalf("unexpected booths %+v", booths)
	}
}

func TestRun_Preconditions(t *testing.T) {
	l := layout.New(t.TempDir())

	if _, _, err := quiet().Run(l, ""); !errors.Is(err, ErrMissingEventID) {
		t.Fatalf("expected ErrMissingEventID, got %v", err)
	}
	for _, id := range []string{"..", "a/../b", `a\b`} {
		if _, _, err := quiet().Run(l, id); !errors.Is(err, ErrInvalidEventID) {
			t.Fatalf("expected ErrInvalidEventID for %q, got %v", id, err)
		}
	}
	if _, _, err := quiet().Run(l, "nope"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	writeEvent(t, l, "partial", map[string]string{
		"attendance.tsv": attendanceHeader,
		"links.tsv":      linksHeader,
	})
	_, _, err := quiet().Run(l, "partial")
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("expected ErrInputMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "tags TSV") {
		t.Fatalf("expected error to name the tags file, got %v", err)
	}
	if _, statErr := os.Stat(l.BoothsPath("partial")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output to be written, got %v", statErr)
	}
}

func TestWriteSummary(t *testing.T) {
	res := quiet().Convert(
		[]byte(attendanceHeader+"1\tAcme\t\tc.png\tA1\tTRUE\tB2\tFALSE"),
		[]byte(linksHeader+"Ghost\tSite\tweb\thttp://g.example"),
		[]byte(tagsHeader+"Acme\tfanart"),
	)

	var buf bytes.Buffer
	WriteSummary(&buf, res)

	out := buf.String()
	for _, want := range []string{"Acme", "1:A1* 2:B2", "fanart", "1 booths", "1 warnings"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected summary to contain %q, got:\n%s", want, out)
		}
	}
}
