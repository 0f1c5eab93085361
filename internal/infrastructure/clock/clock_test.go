package clock

import (
	"testing"
	"time"
)

func TestSystemNowIsUTC(t *testing.T) {
	before := time.Now()
	now := System{}.Now()

	if now.Location() != time.UTC {
		t.Fatalf("expected UTC, got %s", now.Location())
	}
	if now.Before(before.Add(-time.Second)) {
		t.Fatalf("clock is behind the wall clock: %s", now)
	}
}
