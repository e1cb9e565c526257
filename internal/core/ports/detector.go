// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/monrun/internal/core/domain"

// Detector decides whether a watched file has meaningfully changed.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type Detector interface {
	// Snapshot takes the initial observation of path. Establishing the
	// baseline never counts as a change.
	Snapshot(path string) (domain.FileSnapshot, error)

	// Detect compares the file's current state against prev and returns
	// whether it changed together with the snapshot to store for the next
	// poll. When changed is true the returned snapshot reflects the file as
	// read during this call.
	Detect(path string, prev domain.FileSnapshot) (changed bool, next domain.FileSnapshot, err error)
}
