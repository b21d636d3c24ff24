package baseline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// Store persists snapshots as pretty-printed JSON at a fixed path. It operates over an afero
// filesystem so tests can run against an in-memory filesystem.
type Store struct {
	fsys afero.Fs
	path string
}

func NewStore(fsys afero.Fs, path string) *Store {
	return &Store{fsys: fsys, path: path}
}

// Path returns the location of the baseline file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the snapshot persisted at the store path. A missing file yields an empty snapshot
// and no error. A file that exists but cannot be read or parsed also yields an empty snapshot,
// together with an error describing the problem: callers surface the message and continue, so a
// corrupt baseline file degrades to "no baseline" instead of taking the tool down.
func (s *Store) Load() (Snapshot, error) {
	data, err := afero.ReadFile(s.fsys, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("unable to load baseline %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unable to parse baseline %s: %w", s.path, err)
	}
	if snap.Files == nil {
		snap.Files = make(map[string]FileRecord)
	}
	return snap, nil
}

// Save serializes the snapshot as pretty-printed JSON, unconditionally overwriting any existing
// baseline file. The triggering operation has already completed its in-memory work by the time
// Save runs, so callers report a failed write without rolling anything back.
func (s *Store) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("unable to serialize baseline: %w", err)
	}
	if err := afero.WriteFile(s.fsys, s.path, data, 0644); err != nil {
		return fmt.Errorf("unable to save baseline %s: %w", s.path, err)
	}
	return nil
}
