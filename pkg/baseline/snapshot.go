// Package baseline defines the persisted snapshot of a directory tree's per-file digests and the
// store used to load and save it.
package baseline

import "time"

// Snapshot records the state of a directory tree at a point in time. It is a value object: created
// wholesale by `fsentry create`, timestamp-updated by `fsentry verify`, and never partially merged.
type Snapshot struct {
	// Directory is the root path the snapshot was taken against.
	Directory string `json:"directory"`
	// Timestamp is when the snapshot was created.
	Timestamp time.Time `json:"timestamp"`
	// Files maps slash-separated paths relative to Directory to their recorded state. Every key
	// existed on disk when the snapshot was created.
	Files map[string]FileRecord `json:"files"`
	// LastChecked is when the snapshot was last verified. Omitted until the first verify.
	LastChecked *time.Time `json:"last_checked,omitempty"`
}

// FileRecord is the recorded state of a single file.
type FileRecord struct {
	// Hash is the lowercase hex SHA-256 digest of the file contents when it was recorded.
	Hash string `json:"hash"`
	// LastChecked is when the digest was recorded. Verify intentionally leaves this untouched and
	// only updates the snapshot-level LastChecked.
	LastChecked time.Time `json:"last_checked"`
}

// New returns a fresh snapshot for the provided directory with no recorded files.
func New(directory string, now time.Time) Snapshot {
	return Snapshot{
		Directory: directory,
		Timestamp: now,
		Files:     make(map[string]FileRecord),
	}
}

// IsZero reports whether the snapshot carries no usable state, i.e. nothing was ever recorded or
// loading fell back to an empty snapshot.
func (s *Snapshot) IsZero() bool {
	return s.Directory == "" && len(s.Files) == 0
}
