package guard

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestCheckWithoutRecord(t *testing.T) {
	g := New(t.TempDir(), time.Minute)

	if err := g.Check("tileset-delete"); err != nil {
		t.Errorf("Check with no prior record: %v", err)
	}
}

func TestCheckAfterRecord(t *testing.T) {
	g := New(t.TempDir(), time.Minute)

	if err := g.Record("tileset-delete"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	err := g.Check("tileset-delete")
	var restricted *RestrictedError
	if !errors.As(err, &restricted) {
		t.Fatalf("Check = %v, want *RestrictedError", err)
	}
	if restricted.Wait <= 0 || restricted.Wait > time.Minute {
		t.Errorf("wait = %v, want within (0, 1m]", restricted.Wait)
	}
}

func TestCheckAfterIntervalElapsed(t *testing.T) {
	g := New(t.TempDir(), time.Nanosecond)

	if err := g.Record("source-delete"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	time.Sleep(time.Millisecond)

	if err := g.Check("source-delete"); err != nil {
		t.Errorf("Check after interval elapsed: %v", err)
	}
}

func TestOperationsThrottledIndependently(t *testing.T) {
	g := New(t.TempDir(), time.Minute)

	if err := g.Record("tileset-delete"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := g.Check("style-delete"); err != nil {
		t.Errorf("style-delete throttled by a tileset deletion: %v", err)
	}
}

func TestRecordOverwrites(t *testing.T) {
	g := New(t.TempDir(), time.Minute)

	if err := g.Record("style-delete"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := g.Record("style-delete"); err != nil {
		t.Fatalf("second Record: %v", err)
	}

	var restricted *RestrictedError
	if err := g.Check("style-delete"); !errors.As(err, &restricted) {
		t.Errorf("Check = %v, want *RestrictedError", err)
	}
}

func TestCorruptRecordFailsOpen(t *testing.T) {
	g := New(t.TempDir(), time.Minute)

	if err := g.Record("tileset-delete"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(g.path("tileset-delete"), []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := g.Check("tileset-delete"); err != nil {
		t.Errorf("Check with corrupt record: %v", err)
	}
}
