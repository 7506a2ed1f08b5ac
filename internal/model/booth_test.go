package model

import (
	"encoding/json"
	"testing"
)

func TestNewBooth_EncodesEmptyCollections(t *testing.T) {
	data, err := json.Marshal(NewBooth(1, "C", "c.png"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"circle":"C","attendance":[],"coverImageName":"c.png","links":[],"tags":[]}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestBooth_AttendsDayAndHasTag(t *testing.T) {
	b := NewBooth(1, "C", "")
	b.Attendance = append(b.Attendance, Attendance{Day: 2, Location: "A1"})
	b.Tags = append(b.Tags, "fanart")

	if !b.AttendsDay(2) || b.AttendsDay(1) {
		t.Fatalf("unexpected AttendsDay result for %+v", b.Attendance)
	}
	if !b.HasTag("fanart") || b.HasTag("Fanart") {
		t.Fatalf("unexpected HasTag result for %v", b.Tags)
	}
}
