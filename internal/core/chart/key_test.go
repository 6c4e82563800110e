package chart

import (
	"testing"
	"time"

	"bazi/internal/core/sexagenary"
)

func TestKey(t *testing.T) {
	a := berlin()
	b := berlin()
	b.BirthLocal = " 2024-02-10T14:30:00 "
	b.Longitude = 13.4050000001
	if Key(a) != Key(b) {
		t.Fatalf("key not stable under normalization and rounding")
	}
	b.Longitude = 13.5
	if Key(a) == Key(b) {
		t.Fatalf("key ignores longitude")
	}
	anchor := sexagenary.Anchor{Year: 1949, Month: time.October, Day: 1, Index: 1}
	c := berlin()
	c.Anchor = &anchor
	if Key(a) == Key(c) {
		t.Fatalf("key ignores anchor")
	}
	d := berlin()
	d.Backend = "VSOP87 "
	e := berlin()
	e.Backend = "vsop87"
	if Key(d) != Key(e) {
		t.Fatalf("backend name case changes key")
	}
}
