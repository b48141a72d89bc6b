// Package statefile loads and stores component state snapshots, picking
// the format from the file ending: .json, .ron, .bin (gob) and, in builds
// with the sqlite tag, .db/.sqlite.
package statefile

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gymnarium/internal/ron"
)

// Persistable is implemented by components whose runtime state survives a
// process boundary. SnapshotState returns a pointer to a copy of the
// state; the same value doubles as the decode target for RestoreState.
type Persistable interface {
	Name() string
	SnapshotState() any
	RestoreState(state any) error
}

var ErrUnknownFormat = errors.New("unknown file ending")

type codec struct {
	name   string
	encode func(w io.Writer, state any) error
	decode func(r io.Reader, state any) error
}

var codecs = map[string]codec{
	".json": {name: "json", encode: encodeJSON, decode: decodeJSON},
	".ron":  {name: "ron", encode: encodeRON, decode: decodeRON},
	".bin":  {name: "gob", encode: encodeGob, decode: decodeGob},
}

// Store writes a snapshot of source to path in the format named by the
// file ending.
func Store(path string, source Persistable) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".db" || ext == ".sqlite" {
		return storeSQLite(path, source)
	}
	c, ok := codecs[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store %s state: %w", source.Name(), err)
	}
	if err := c.encode(f, source.SnapshotState()); err != nil {
		_ = f.Close()
		return fmt.Errorf("store %s state as %s: %w", source.Name(), c.name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("store %s state: %w", source.Name(), err)
	}
	return nil
}

// Load reads a snapshot from path and hands it to target.RestoreState.
func Load(path string, target Persistable) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".db" || ext == ".sqlite" {
		return loadSQLite(path, target)
	}
	c, ok := codecs[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s state: %w", target.Name(), err)
	}
	defer f.Close()

	state := target.SnapshotState()
	if err := c.decode(f, state); err != nil {
		return fmt.Errorf("load %s state as %s: %w", target.Name(), c.name, err)
	}
	return target.RestoreState(state)
}

func encodeJSON(w io.Writer, state any) error {
	return json.NewEncoder(w).Encode(state)
}

func decodeJSON(r io.Reader, state any) error {
	return json.NewDecoder(r).Decode(state)
}

func encodeRON(w io.Writer, state any) error {
	data, err := ron.Marshal(state)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func decodeRON(r io.Reader, state any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return ron.Unmarshal(data, state)
}

func encodeGob(w io.Writer, state any) error {
	return gob.NewEncoder(w).Encode(state)
}

func decodeGob(r io.Reader, state any) error {
	return gob.NewDecoder(r).Decode(state)
}
