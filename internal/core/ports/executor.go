// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/mk/internal/core/domain"
)

// Executor runs a target's command lines strictly in declared order.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs each command line of the target in its own shell, in
	// sequence, and returns on the first non-zero exit status with a
	// domain.CommandError in the chain. Remaining lines are not run.
	Execute(ctx context.Context, target *domain.Target) error
}
