// Package domain holds the core types for file watching.
package domain

import (
	"encoding/hex"
	"time"
)

// Checksum is the 128-bit content digest recorded in a snapshot.
type Checksum [16]byte

// Equal reports whether two checksums are identical.
func (c Checksum) Equal(other Checksum) bool {
	return c == other
}

// IsZero reports whether the checksum has never been computed.
func (c Checksum) IsZero() bool {
	return c == Checksum{}
}

// String returns the hex encoding of the checksum.
func (c Checksum) String() string {
	return hex.EncodeToString(c[:])
}

// FileSnapshot records the observed state of a single watched file at one
// point in time. All fields are captured together by the detector; a
// snapshot is replaced wholesale, never patched field by field.
type FileSnapshot struct {
	Path     string
	ModTime  time.Time
	Size     int64
	Checksum Checksum
}

// WatchEntry pairs a watched path with its most recent snapshot.
type WatchEntry struct {
	Path     string
	Snapshot FileSnapshot
}

// WatchSet is the ordered collection of watched files. Order follows the
// command line, so the first file that changes wins any reporting
// tie-break. The set lives for the process lifetime and is only ever
// touched by the poll loop.
type WatchSet struct {
	entries []WatchEntry
}

// NewWatchSet creates a WatchSet for the given paths in order.
func NewWatchSet(paths []string) (*WatchSet, error) {
	if len(paths) == 0 {
		return nil, ErrNoFilesSpecified
	}

	entries := make([]WatchEntry, len(paths))
	for i, path := range paths {
		entries[i] = WatchEntry{Path: path}
	}
	return &WatchSet{entries: entries}, nil
}

// Len returns the number of watched files.
func (w *WatchSet) Len() int {
	return len(w.entries)
}

// At returns the entry at position i.
func (w *WatchSet) At(i int) WatchEntry {
	return w.entries[i]
}

// Update replaces the snapshot for the entry at position i.
func (w *WatchSet) Update(i int, snap FileSnapshot) {
	w.entries[i].Snapshot = snap
}

// Paths returns the watched paths in order.
func (w *WatchSet) Paths() []string {
	paths := make([]string, len(w.entries))
	for i, e := range w.entries {
		paths[i] = e.Path
	}
	return paths
}
