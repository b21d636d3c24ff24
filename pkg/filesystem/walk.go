// Package filesystem enumerates the regular files of a directory tree in a deterministic order and
// optionally narrows the result using glob excludes or a filter expression.
package filesystem

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// WalkConfig narrows which files a walk yields. The zero value yields every regular file.
type WalkConfig struct {
	// Exclude holds doublestar glob patterns matched against the slash-relative path. A matching
	// directory is skipped entirely, a matching file is dropped from the result.
	Exclude []string
	// Filter, when set, must return true for a file to be included.
	Filter FileInfoFilter
}

// WalkFiles enumerates all regular files under root and returns their slash-separated paths
// relative to root. Directory entries are sorted per directory with a trailing slash appended to
// directory names, so the returned paths are in lexicographically increasing order overall.
// Symlinks and other non-regular files are never yielded. Subdirectories that cannot be read are
// skipped, mirroring how unreadable files are skipped during hashing: their contents simply cannot
// be examined.
func WalkFiles(fsys afero.Fs, root string, cfg WalkConfig) ([]string, error) {
	files := []string{}

	var walkDir func(rel string) error
	walkDir = func(rel string) error {
		entries, err := readDirSorted(fsys, filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			if rel == "" {
				return fmt.Errorf("unable to read directory %s: %w", root, err)
			}
			return nil
		}

		for _, entry := range entries {
			relPath := path.Join(rel, entry.Name())
			excluded, err := matchesAny(cfg.Exclude, relPath)
			if err != nil {
				return err
			}

			if entry.IsDir() {
				if excluded {
					continue
				}
				if err := walkDir(relPath); err != nil {
					return err
				}
				continue
			}
			if !entry.Mode().IsRegular() || excluded {
				continue
			}

			if cfg.Filter != nil {
				keep, err := cfg.Filter(FileInfo{
					Path:  relPath,
					Name:  entry.Name(),
					Size:  entry.Size(),
					Perm:  uint32(entry.Mode().Perm()),
					Mtime: entry.ModTime(),
				})
				if err != nil {
					return err
				}
				if !keep {
					continue
				}
			}
			files = append(files, relPath)
		}
		return nil
	}

	if err := walkDir(""); err != nil {
		return nil, err
	}
	return files, nil
}

func matchesAny(patterns []string, relPath string) (bool, error) {
	for _, pattern := range patterns {
		match, err := doublestar.Match(pattern, relPath)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// readDirSorted lists a directory sorted with a trailing '/' appended to directory names so they
// sort distinctly from files sharing the same prefix. Without the '/', a directory may sort
// incorrectly relative to files prefixed with the same name (e.g. "sub.txt" vs "sub/a.txt").
func readDirSorted(fsys afero.Fs, directory string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(fsys, directory)
	if err != nil {
		return nil, err
	}

	sortName := func(entry os.FileInfo) string {
		if entry.IsDir() {
			return entry.Name() + "/"
		}
		return entry.Name()
	}
	sort.Slice(entries, func(i, j int) bool {
		return sortName(entries[i]) < sortName(entries[j])
	})
	return entries, nil
}
