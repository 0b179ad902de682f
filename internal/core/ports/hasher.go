package ports

import "go.trai.ch/mk/internal/core/domain"

// Hasher fingerprints target definitions and their output files for the
// up-to-date check on non-phony targets.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashCommands returns a stable fingerprint of the target's command
	// lines and environment overrides.
	HashCommands(target *domain.Target) string
	// HashOutputs returns a combined fingerprint of the target's declared
	// output files. A missing file is an error; the caller treats it as
	// stale.
	HashOutputs(target *domain.Target) (string, error)
}
