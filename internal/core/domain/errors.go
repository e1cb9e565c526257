package domain

import (
	"errors"
	"io/fs"

	"go.trai.ch/zerr"
)

var (
	// ErrNoFilesSpecified is returned when no files are given to watch.
	ErrNoFilesSpecified = zerr.New("no files to watch")

	// ErrNoCommandSpecified is returned when no command is passed via -c.
	ErrNoCommandSpecified = zerr.New("no command passed, use the -c switch")

	// ErrNotAFile is returned when a watch argument is not a regular file.
	ErrNotAFile = zerr.New("argument is not a regular file")

	// ErrFileNotFound is returned when a watched file does not exist at poll time.
	ErrFileNotFound = zerr.New("file not found")

	// ErrPermissionDenied is returned when a watched file cannot be read.
	ErrPermissionDenied = zerr.New("permission denied")

	// ErrFileAccess is returned on any other stat or read failure.
	ErrFileAccess = zerr.New("failed to access file")

	// ErrCommandStartFailed is returned when the watch command cannot be started at all.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrWatchFailed is returned when the watch loop cannot be brought up.
	ErrWatchFailed = zerr.New("watch failed")
)

// AccessError classifies a stat or read failure into the file-access
// taxonomy and attaches the offending path. The returned error matches the
// corresponding sentinel via errors.Is.
func AccessError(err error, path string) error {
	sentinel := ErrFileAccess
	switch {
	case errors.Is(err, fs.ErrNotExist):
		sentinel = ErrFileNotFound
	case errors.Is(err, fs.ErrPermission):
		sentinel = ErrPermissionDenied
	}
	return errors.Join(sentinel, zerr.With(zerr.Wrap(err, "file access failed"), "path", path))
}
