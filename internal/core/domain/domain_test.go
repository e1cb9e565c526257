package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/monrun/internal/core/domain"
)

func TestChecksum(t *testing.T) {
	t.Run("equal compares full digests", func(t *testing.T) {
		a := domain.Checksum{1, 2, 3}
		b := domain.Checksum{1, 2, 3}
		c := domain.Checksum{1, 2, 4}

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})

	t.Run("zero value is zero", func(t *testing.T) {
		var c domain.Checksum
		assert.True(t, c.IsZero())

		c[15] = 1
		assert.False(t, c.IsZero())
	})

	t.Run("string is hex", func(t *testing.T) {
		var c domain.Checksum
		c[0] = 0xab

		s := c.String()
		assert.Len(t, s, 32)
		assert.True(t, strings.HasPrefix(s, "ab"))
	})
}

func TestWatchSet(t *testing.T) {
	t.Run("rejects empty file list", func(t *testing.T) {
		_, err := domain.NewWatchSet(nil)
		require.ErrorIs(t, err, domain.ErrNoFilesSpecified)
	})

	t.Run("preserves argument order", func(t *testing.T) {
		ws, err := domain.NewWatchSet([]string{"b.txt", "a.txt", "c.txt"})
		require.NoError(t, err)

		require.Equal(t, 3, ws.Len())
		assert.Equal(t, []string{"b.txt", "a.txt", "c.txt"}, ws.Paths())
		assert.Equal(t, "a.txt", ws.At(1).Path)
	})

	t.Run("update replaces the snapshot in place", func(t *testing.T) {
		ws, err := domain.NewWatchSet([]string{"a.txt"})
		require.NoError(t, err)

		snap := domain.FileSnapshot{
			Path:    "a.txt",
			ModTime: time.Unix(100, 0),
			Size:    42,
		}
		ws.Update(0, snap)

		assert.Equal(t, snap, ws.At(0).Snapshot)
	})
}

func TestCommand_WithFileVar(t *testing.T) {
	t.Run("substitutes every file reference", func(t *testing.T) {
		cmd := domain.Command{Raw: "cp ${file} ${file}.bak"}

		got := cmd.WithFileVar("/tmp/a.txt")
		assert.Equal(t, "cp /tmp/a.txt /tmp/a.txt.bak", got.Raw)
	})

	t.Run("leaves unknown references untouched", func(t *testing.T) {
		cmd := domain.Command{Raw: "echo ${file} ${other} $HOME"}

		got := cmd.WithFileVar("a.txt")
		assert.Equal(t, "echo a.txt ${other} $HOME", got.Raw)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		cmd := domain.Command{Raw: "echo ${file}"}
		_ = cmd.WithFileVar("a.txt")
		assert.Equal(t, "echo ${file}", cmd.Raw)
	})
}
