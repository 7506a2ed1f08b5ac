package tsv

import (
	"reflect"
	"testing"
)

func TestLines_DropsHeaderAndCarriageReturns(t *testing.T) {
	rows := Lines([]byte("a\tb\r\n1\t2\r\n\r\n3\t\t4"))

	want := []Row{{"1", "2"}, {""}, {"3", "", "4"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("expected %q, got %q", want, rows)
	}
}

func TestLines_HeaderOnly(t *testing.T) {
	if rows := Lines([]byte("only a header")); rows != nil {
		t.Fatalf("expected no rows, got %q", rows)
	}
	if rows := Lines(nil); rows != nil {
		t.Fatalf("expected no rows, got %q", rows)
	}
}

func TestLines_StrayCarriageReturnInsideCell(t *testing.T) {
	rows := Lines([]byte("h\nab\rc\td"))
	if got := rows[0].Col(0); got != "abc" {
		t.Fatalf("expected carriage return removed, got %q", got)
	}
}

func TestRow_Accessors(t *testing.T) {
	r := Row{" x ", "y"}
	if r.Col(5) != "" || r.Col(-1) != "" {
		t.Fatal("expected out-of-range columns to read as empty")
	}
	if r.Trimmed(0) != "x" {
		t.Fatalf("expected trimmed x, got %q", r.Trimmed(0))
	}
	if r.From(2) != nil {
		t.Fatalf("expected nil tail, got %q", r.From(2))
	}
	if got := r.From(1); !reflect.DeepEqual(got, []string{"y"}) {
		t.Fatalf("expected [y], got %q", got)
	}
}

func TestTrim_ByteOrderMark(t *testing.T) {
	if got := Trim("\uFEFF Acme \t"); got != "Acme" {
		t.Fatalf("expected Acme, got %q", got)
	}
}
