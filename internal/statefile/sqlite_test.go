//go:build sqlite

package statefile

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStoreLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")

	src := &probe{state: probeState{Position: -0.5, Velocity: 0.025}}
	if err := Store(path, src); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	dst := &probe{}
	if err := Load(path, dst); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if dst.state != src.state {
		t.Fatalf("loaded %+v, want %+v", dst.state, src.state)
	}
}

func TestSQLiteStoreUpserts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.sqlite")

	if err := Store(path, &probe{state: probeState{Position: 1}}); err != nil {
		t.Fatalf("first Store failed: %v", err)
	}
	if err := Store(path, &probe{state: probeState{Position: 2}}); err != nil {
		t.Fatalf("second Store failed: %v", err)
	}
	dst := &probe{}
	if err := Load(path, dst); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if dst.state.Position != 2 {
		t.Fatalf("loaded position %v, want 2", dst.state.Position)
	}
}

func TestSQLiteLoadMissingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	if err := Load(path, &probe{}); err == nil {
		t.Fatal("expected error for missing snapshot row")
	}
}
