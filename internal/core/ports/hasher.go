package ports

import "go.trai.ch/monrun/internal/core/domain"

// Hasher computes content checksums for watched files.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Checksum streams the file at path and returns its content digest.
	Checksum(path string) (domain.Checksum, error)
}
