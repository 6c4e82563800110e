package testkit

import (
	"sync"
	"testing"
	"time"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()

	MustNotPanic(t, func() {
		// no panic
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	haystack := "alpha beta gamma"
	MustContain(t, haystack, "beta")
}

func TestMustWithin(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 2, 4, 8, 26, 53, 0, time.UTC)
	MustWithin(t, at.Add(90*time.Second), at, 2*time.Minute)
	MustWithin(t, at.Add(-90*time.Second), at, 2*time.Minute)
}

var defaultBackend = "vsop87"

func TestSwapRestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &defaultBackend, "meeus")
		if defaultBackend != "meeus" {
			t.Fatalf("swap did not take effect: %q", defaultBackend)
		}
	})
	if defaultBackend != "vsop87" {
		t.Fatalf("swap not restored: %q", defaultBackend)
	}
}

func TestSerialDoesNotInterleave(t *testing.T) {
	var mu sync.Mutex
	var seq []string
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"chart", "terms"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "+")
				time.Sleep(20 * time.Millisecond)
				record(name + "-")
			})
		}
	})

	if len(seq) != 4 {
		t.Fatalf("seq = %v", seq)
	}
	if seq[0][:len(seq[0])-1] != seq[1][:len(seq[1])-1] || seq[2][:len(seq[2])-1] != seq[3][:len(seq[3])-1] {
		t.Fatalf("interleaved: %v", seq)
	}
}
