package check

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsentry/fsentry/pkg/baseline"
	"github.com/fsentry/fsentry/pkg/config"
	"github.com/fsentry/fsentry/pkg/filesystem"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type VerifyCfg struct {
	BaselinePath string
	Scan         ScanOptions
}

// Report classifies the current tree state against the baseline. Every baseline entry lands in
// exactly one of {unchanged, changed, missing} and every on-disk file in exactly one of
// {unchanged, changed, new}; unchanged files are not listed.
type Report struct {
	// Directory is the root recorded in the baseline that was verified.
	Directory string
	// Changed lists baseline entries whose current digest differs from the recorded one. Files
	// that still exist but could not be read are included here: a file that cannot be read cannot
	// be shown to match its recorded digest.
	Changed []string
	// New lists on-disk files with no baseline entry.
	New []string
	// Missing lists baseline entries with no corresponding file on disk.
	Missing []string
	// Unreadable flags the subset of Changed that could not be read, so output can annotate them.
	Unreadable map[string]bool
	// PersistErr reports a failed write of the timestamp-updated baseline.
	PersistErr error
}

// Clean reports whether no drift of any kind was detected.
func (r *Report) Clean() bool {
	return len(r.Changed) == 0 && len(r.New) == 0 && len(r.Missing) == 0
}

// Verify loads the baseline at cfg.BaselinePath and compares the tree at its recorded root
// against it. On success the baseline is re-persisted with an updated snapshot-level last_checked
// timestamp; the per-entry timestamps keep their values from create.
func Verify(ctx context.Context, fsys afero.Fs, cfg VerifyCfg) (*Report, error) {
	log, _ := config.GetLogger()

	store := baseline.NewStore(fsys, cfg.BaselinePath)
	snap, loadErr := store.Load()
	if snap.IsZero() {
		// A baseline file that exists but cannot be parsed degrades to the same outcome as a
		// missing one, with the parse failure carried along for context.
		if loadErr != nil {
			return nil, fmt.Errorf("%w (%s)", ErrNoBaseline, loadErr)
		}
		return nil, ErrNoBaseline
	}

	if info, err := fsys.Stat(snap.Directory); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("baseline directory %s is %w", snap.Directory, ErrInvalidDirectory)
	}

	report := &Report{
		Directory:  snap.Directory,
		Unreadable: make(map[string]bool),
	}

	for rel, record := range snap.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		full := filepath.Join(snap.Directory, filepath.FromSlash(rel))

		// Any stat failure classifies as missing: a file whose existence cannot be established is
		// indistinguishable from one that is gone.
		if _, err := fsys.Stat(full); err != nil {
			report.Missing = append(report.Missing, rel)
			continue
		}

		digest, _, err := baseline.HashFile(fsys, full)
		if err != nil {
			log.Warn("unable to read file during verification", zap.String("path", rel), zap.Error(err))
			report.Changed = append(report.Changed, rel)
			report.Unreadable[rel] = true
			continue
		}
		if digest != record.Hash {
			report.Changed = append(report.Changed, rel)
		}
	}

	walkCfg, err := cfg.Scan.walkConfig()
	if err != nil {
		return nil, err
	}
	current, err := filesystem.WalkFiles(fsys, snap.Directory, walkCfg)
	if err != nil {
		return nil, err
	}
	for _, rel := range current {
		if _, ok := snap.Files[rel]; !ok {
			report.New = append(report.New, rel)
		}
	}

	// Baseline entries were visited in map order; the walk already yields sorted paths.
	sort.Strings(report.Changed)
	sort.Strings(report.Missing)

	now := time.Now()
	snap.LastChecked = &now
	report.PersistErr = store.Save(snap)
	return report, nil
}
