package detector_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/monrun/internal/adapters/detector"
	"go.trai.ch/monrun/internal/adapters/fs"
	"go.trai.ch/monrun/internal/core/domain"
	"go.trai.ch/monrun/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// setupFile creates a file with the given content and pins its mtime so the
// tests control the modification time tier explicitly.
func setupFile(t *testing.T, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

var baseTime = time.Now().Add(-time.Hour).Truncate(time.Second)

func TestDetector_Snapshot(t *testing.T) {
	t.Run("captures mtime size and checksum together", func(t *testing.T) {
		path := setupFile(t, "hello", baseTime)
		d := detector.New(fs.NewHasher(), false)

		snap, err := d.Snapshot(path)
		require.NoError(t, err)

		assert.Equal(t, path, snap.Path)
		assert.True(t, snap.ModTime.Equal(baseTime))
		assert.Equal(t, int64(5), snap.Size)
		assert.False(t, snap.Checksum.IsZero())
	})

	t.Run("only-time mode skips the checksum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// No Checksum expectation: any call fails the test.
		hasher := mocks.NewMockHasher(ctrl)

		path := setupFile(t, "hello", baseTime)
		d := detector.New(hasher, true)

		snap, err := d.Snapshot(path)
		require.NoError(t, err)
		assert.True(t, snap.Checksum.IsZero())
	})

	t.Run("missing file maps to ErrFileNotFound", func(t *testing.T) {
		d := detector.New(fs.NewHasher(), false)
		_, err := d.Snapshot(filepath.Join(t.TempDir(), "missing.txt"))
		require.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}

func TestDetector_Detect(t *testing.T) {
	t.Run("unchanged mtime never recomputes the checksum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		path := setupFile(t, "hello", baseTime)

		hasher := mocks.NewMockHasher(ctrl)
		hasher.EXPECT().Checksum(path).Return(domain.Checksum{1}, nil).Times(1)

		d := detector.New(hasher, false)
		snap, err := d.Snapshot(path)
		require.NoError(t, err)

		// Repeated polls over an untouched file: the single Checksum
		// expectation above proves no content reads happen here.
		for range 3 {
			changed, next, err := d.Detect(path, snap)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, snap, next)
		}
	})

	t.Run("size change alone is conclusive", func(t *testing.T) {
		path := setupFile(t, "hello", baseTime)
		d := detector.New(fs.NewHasher(), false)

		snap, err := d.Snapshot(path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("hello there"), 0o644))
		touched := baseTime.Add(time.Second)
		require.NoError(t, os.Chtimes(path, touched, touched))

		changed, next, err := d.Detect(path, snap)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, int64(11), next.Size)
		assert.True(t, next.ModTime.Equal(touched))
		assert.False(t, next.Checksum.Equal(snap.Checksum))
	})

	t.Run("same-size rewrite is caught by the checksum tier", func(t *testing.T) {
		path := setupFile(t, "x", baseTime)
		d := detector.New(fs.NewHasher(), false)

		snap, err := d.Snapshot(path)
		require.NoError(t, err)

		// Same byte length, different content, new mtime.
		require.NoError(t, os.WriteFile(path, []byte("y"), 0o644))
		touched := baseTime.Add(time.Second)
		require.NoError(t, os.Chtimes(path, touched, touched))

		changed, next, err := d.Detect(path, snap)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, snap.Size, next.Size)
		assert.False(t, next.Checksum.Equal(snap.Checksum))
	})

	t.Run("metadata-only touch does not count as a change", func(t *testing.T) {
		path := setupFile(t, "hello", baseTime)
		d := detector.New(fs.NewHasher(), false)

		snap, err := d.Snapshot(path)
		require.NoError(t, err)

		touched := baseTime.Add(time.Second)
		require.NoError(t, os.Chtimes(path, touched, touched))

		changed, next, err := d.Detect(path, snap)
		require.NoError(t, err)
		assert.False(t, changed)

		// The stored mtime is refreshed so the next poll takes the cheap
		// tier instead of hashing again.
		assert.True(t, next.ModTime.Equal(touched))
		assert.True(t, next.Checksum.Equal(snap.Checksum))

		changed, again, err := d.Detect(path, next)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, next, again)
	})

	t.Run("only-time mode fires on any touch without hashing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		hasher := mocks.NewMockHasher(ctrl)

		path := setupFile(t, "hello", baseTime)
		d := detector.New(hasher, true)

		snap, err := d.Snapshot(path)
		require.NoError(t, err)

		touched := baseTime.Add(time.Second)
		require.NoError(t, os.Chtimes(path, touched, touched))

		changed, next, err := d.Detect(path, snap)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, next.ModTime.Equal(touched))
	})

	t.Run("deleted file returns ErrFileNotFound and keeps the old snapshot", func(t *testing.T) {
		path := setupFile(t, "hello", baseTime)
		d := detector.New(fs.NewHasher(), false)

		snap, err := d.Snapshot(path)
		require.NoError(t, err)

		require.NoError(t, os.Remove(path))

		changed, next, err := d.Detect(path, snap)
		require.ErrorIs(t, err, domain.ErrFileNotFound)
		assert.False(t, changed)
		assert.Equal(t, snap, next)
	})
}
