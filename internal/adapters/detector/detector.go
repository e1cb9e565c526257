// Package detector implements change detection for watched files.
package detector

import (
	"os"

	"go.trai.ch/monrun/internal/core/domain"
	"go.trai.ch/monrun/internal/core/ports"
)

var _ ports.Detector = (*Detector)(nil)

// Detector decides whether a file changed using a three-tier comparison:
// modification time, then size, then content checksum. Each tier only runs
// when the previous one was inconclusive, so an untouched file costs a
// single stat per poll.
type Detector struct {
	hasher   ports.Hasher
	onlyTime bool
}

// New creates a Detector. With onlyTime set, any modification time change is
// treated as a content change and no checksums are ever computed.
func New(hasher ports.Hasher, onlyTime bool) *Detector {
	return &Detector{
		hasher:   hasher,
		onlyTime: onlyTime,
	}
}

// Snapshot takes the initial observation of path. The baseline snapshot is
// complete (mtime, size and, unless in only-time mode, checksum) so the
// first real poll can short-circuit on any tier.
func (d *Detector) Snapshot(path string) (domain.FileSnapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileSnapshot{}, domain.AccessError(err, path)
	}

	snap := domain.FileSnapshot{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}

	if !d.onlyTime {
		sum, err := d.hasher.Checksum(path)
		if err != nil {
			return domain.FileSnapshot{}, err
		}
		snap.Checksum = sum
	}

	return snap, nil
}

// Detect compares the current state of path against prev. On error the
// previous snapshot is returned unchanged so the caller can retry next
// cycle.
func (d *Detector) Detect(path string, prev domain.FileSnapshot) (bool, domain.FileSnapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, prev, domain.AccessError(err, path)
	}

	// Tier 1: an untouched mtime is conclusive and skips all content work.
	if info.ModTime().Equal(prev.ModTime) {
		return false, prev, nil
	}

	next := domain.FileSnapshot{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}

	if d.onlyTime {
		return true, next, nil
	}

	// Tier 2: a size difference cannot be a false positive.
	if info.Size() != prev.Size {
		sum, err := d.hasher.Checksum(path)
		if err != nil {
			return false, prev, err
		}
		next.Checksum = sum
		return true, next, nil
	}

	// Tier 3: touched mtime, same size. Only the content decides.
	sum, err := d.hasher.Checksum(path)
	if err != nil {
		return false, prev, err
	}
	next.Checksum = sum

	if sum.Equal(prev.Checksum) {
		// A metadata-only touch. Adopt the new mtime anyway so the next
		// poll takes the cheap tier instead of re-hashing every cycle.
		return false, next, nil
	}

	return true, next, nil
}
