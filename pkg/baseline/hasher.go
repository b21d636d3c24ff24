package baseline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Files are streamed through the digest in fixed-size chunks so arbitrarily large files hash in
// constant memory. The chunk size has no effect on the resulting digest.
const hashChunkSize = 4096

// HashFile returns the lowercase hex SHA-256 digest of the file at path along with the number of
// bytes read. Only the file contents factor into the digest, never metadata, so the same bytes
// always produce the same digest across runs and platforms. Any open or read failure is returned
// wrapped with the offending path; callers are expected to skip the file rather than abort.
func HashFile(fsys afero.Fs, path string) (string, int64, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("unable to read file %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.CopyBuffer(h, f, make([]byte, hashChunkSize))
	if err != nil {
		return "", n, fmt.Errorf("unable to read file %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
