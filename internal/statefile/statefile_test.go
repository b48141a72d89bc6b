package statefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type probeState struct {
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
}

type probe struct {
	state      probeState
	restoreErr error
}

func (p *probe) Name() string { return "Probe" }

func (p *probe) SnapshotState() any {
	s := p.state
	return &s
}

func (p *probe) RestoreState(state any) error {
	if p.restoreErr != nil {
		return p.restoreErr
	}
	s, ok := state.(*probeState)
	if !ok {
		return fmt.Errorf("unexpected state type %T", state)
	}
	p.state = *s
	return nil
}

func TestStoreLoadRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".ron", ".bin"} {
		path := filepath.Join(t.TempDir(), "probe"+ext)
		src := &probe{state: probeState{Position: -0.5, Velocity: 0.025}}
		if err := Store(path, src); err != nil {
			t.Fatalf("%s: Store failed: %v", ext, err)
		}
		dst := &probe{}
		if err := Load(path, dst); err != nil {
			t.Fatalf("%s: Load failed: %v", ext, err)
		}
		if dst.state != src.state {
			t.Errorf("%s: loaded %+v, want %+v", ext, dst.state, src.state)
		}
	}
}

func TestStoreLoadStoreIsByteIdentical(t *testing.T) {
	for _, ext := range []string{".json", ".ron", ".bin"} {
		dir := t.TempDir()
		first := filepath.Join(dir, "first"+ext)
		second := filepath.Join(dir, "second"+ext)

		if err := Store(first, &probe{state: probeState{Position: -0.5, Velocity: 0.025}}); err != nil {
			t.Fatalf("%s: Store failed: %v", ext, err)
		}
		carrier := &probe{}
		if err := Load(first, carrier); err != nil {
			t.Fatalf("%s: Load failed: %v", ext, err)
		}
		if err := Store(second, carrier); err != nil {
			t.Fatalf("%s: second Store failed: %v", ext, err)
		}

		a, err := os.ReadFile(first)
		if err != nil {
			t.Fatalf("%s: read first: %v", ext, err)
		}
		b, err := os.ReadFile(second)
		if err != nil {
			t.Fatalf("%s: read second: %v", ext, err)
		}
		if string(a) != string(b) {
			t.Errorf("%s: store-load-store changed the bytes:\n%q\n%q", ext, a, b)
		}
	}
}

func TestStoreOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.json")
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

func TestSuffixCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.JSON")
	src := &probe{state: probeState{Position: 0.25}}
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

func TestUnknownSuffix(t *testing.T) {
	for _, path := range []string{
		filepath.Join(t.TempDir(), "probe.txt"),
		filepath.Join(t.TempDir(), "probe"),
	} {
		err := Store(path, &probe{})
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Store(%s) error = %v, want ErrUnknownFormat", path, err)
		}
		if err == nil || !strings.Contains(err.Error(), path) {
			t.Errorf("Store(%s) error %q does not name the path", path, err)
		}
		err = Load(path, &probe{})
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Load(%s) error = %v, want ErrUnknownFormat", path, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "absent.json"), &probe{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	err := Load(path, &probe{})
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "json") {
		t.Fatalf("error %q does not name the codec", err)
	}
}

func TestLoadPropagatesRestoreError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.ron")
	if err := Store(path, &probe{state: probeState{Position: 0.5}}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	restoreErr := errors.New("state out of range")
	err := Load(path, &probe{restoreErr: restoreErr})
	if !errors.Is(err, restoreErr) {
		t.Fatalf("error = %v, want restore error", err)
	}
}
