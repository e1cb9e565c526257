// Package fs provides filesystem-backed adapters.
package fs

import (
	"crypto/md5" //nolint:gosec // change detection, not cryptography
	"io"
	"os"

	"go.trai.ch/monrun/internal/core/domain"
	"go.trai.ch/monrun/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes 128-bit md5 content checksums for watched files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Checksum streams the file at path through md5 and returns its digest.
func (h *Hasher) Checksum(path string) (domain.Checksum, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return domain.Checksum{}, domain.AccessError(err, path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := md5.New() //nolint:gosec // change detection, not cryptography
	if _, err := io.Copy(digest, f); err != nil {
		return domain.Checksum{}, domain.AccessError(err, path)
	}

	var sum domain.Checksum
	copy(sum[:], digest.Sum(nil))
	return sum, nil
}
