// Package check implements the fsentry backends: building a fresh baseline snapshot for a
// directory tree and verifying the current tree against a stored baseline.
package check

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsentry/fsentry/pkg/baseline"
	"github.com/fsentry/fsentry/pkg/config"
	"github.com/fsentry/fsentry/pkg/filesystem"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	ErrInvalidDirectory = errors.New("not a valid directory")
	ErrNoBaseline       = errors.New("no baseline data available, create a baseline first")
)

// ScanOptions narrow which on-disk files a scan considers. They apply to what create captures and
// to what verify reports as new; files already recorded in a baseline are always checked.
type ScanOptions struct {
	Exclude    []string
	FilterExpr string
}

func (o ScanOptions) walkConfig() (filesystem.WalkConfig, error) {
	cfg := filesystem.WalkConfig{Exclude: o.Exclude}
	if o.FilterExpr != "" {
		filter, err := filesystem.CompileFilter(o.FilterExpr)
		if err != nil {
			return cfg, err
		}
		cfg.Filter = filter
	}
	return cfg, nil
}

type CreateCfg struct {
	Directory    string
	BaselinePath string
	Scan         ScanOptions
}

type CreateResult struct {
	Snapshot baseline.Snapshot
	// BytesHashed is the total content size that went into the recorded digests.
	BytesHashed int64
	// Skipped lists files that could not be read while hashing. They are excluded from the
	// snapshot since they could never be verified later.
	Skipped []string
	// PersistErr reports a failed baseline write. The snapshot itself is still fully populated,
	// so callers surface the failure without discarding the result.
	PersistErr error
}

// Create walks the directory, hashes every regular file sequentially, and persists a fresh
// snapshot that replaces any existing baseline at cfg.BaselinePath.
func Create(ctx context.Context, fsys afero.Fs, cfg CreateCfg) (*CreateResult, error) {
	log, _ := config.GetLogger()

	if info, err := fsys.Stat(cfg.Directory); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s is %w", cfg.Directory, ErrInvalidDirectory)
	}

	walkCfg, err := cfg.Scan.walkConfig()
	if err != nil {
		return nil, err
	}
	paths, err := filesystem.WalkFiles(fsys, cfg.Directory, walkCfg)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	snap := baseline.New(cfg.Directory, now)
	result := &CreateResult{}
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		digest, n, err := baseline.HashFile(fsys, filepath.Join(cfg.Directory, filepath.FromSlash(rel)))
		if err != nil {
			log.Warn("excluding unreadable file from baseline", zap.String("path", rel), zap.Error(err))
			result.Skipped = append(result.Skipped, rel)
			continue
		}
		snap.Files[rel] = baseline.FileRecord{Hash: digest, LastChecked: now}
		result.BytesHashed += n
	}

	result.Snapshot = snap
	result.PersistErr = baseline.NewStore(fsys, cfg.BaselinePath).Save(snap)
	return result, nil
}
