package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestWalkFilesOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"zeta.txt":              "z",
		"arm/rockchip.yaml":     "x",
		"arm/rockchip/pmu.yaml": "y",
		"arm/rtsm-dcscb.txt":    "w",
		"a.txt":                 "a",
	})

	files, err := WalkFiles(afero.NewOsFs(), root, WalkConfig{})
	require.NoError(t, err)

	// Directories sort with a trailing slash, so rockchip.yaml comes before rockchip/pmu.yaml and
	// the full result is in lexicographically increasing path order.
	assert.Equal(t, []string{
		"a.txt",
		"arm/rockchip.yaml",
		"arm/rockchip/pmu.yaml",
		"arm/rtsm-dcscb.txt",
		"zeta.txt",
	}, files)
}

func TestWalkFilesSkipsNonRegular(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real.txt": "content"})
	require.NoError(t, os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")))

	files, err := WalkFiles(afero.NewOsFs(), root, WalkConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"real.txt"}, files)
}

func TestWalkFilesExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.txt":       "k",
		"skip.log":       "s",
		"cache/data.bin": "d",
		"sub/nested.log": "n",
		"sub/nested.txt": "n",
	})

	files, err := WalkFiles(afero.NewOsFs(), root, WalkConfig{
		Exclude: []string{"**/*.log", "*.log", "cache"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt", "sub/nested.txt"}, files)
}

func TestWalkFilesBadExcludePattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a"})

	_, err := WalkFiles(afero.NewOsFs(), root, WalkConfig{Exclude: []string{"[unterminated"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude pattern")
}

func TestWalkFilesFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"small.txt": "s",
		"big.txt":   "this one is noticeably bigger",
	})

	filter, err := CompileFilter("size > 10B")
	require.NoError(t, err)

	files, err := WalkFiles(afero.NewOsFs(), root, WalkConfig{Filter: filter})
	require.NoError(t, err)
	assert.Equal(t, []string{"big.txt"}, files)
}

func TestWalkFilesMissingRoot(t *testing.T) {
	_, err := WalkFiles(afero.NewOsFs(), filepath.Join(t.TempDir(), "gone"), WalkConfig{})
	require.Error(t, err)
}
