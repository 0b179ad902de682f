package ports

import "go.trai.ch/mk/internal/core/domain"

// RunStore persists per-target run records between invocations.
//
//go:generate mockgen -source=run_store.go -destination=mocks/mock_run_store.go -package=mocks
type RunStore interface {
	// Get returns the stored run info for a target, or nil if none exists.
	Get(target string) (*domain.RunInfo, error)
	// Put stores the run info for a target, replacing any previous record.
	Put(info domain.RunInfo) error
}
