// Package app implements the application layer for mk.
package app

import (
	"context"

	"go.trai.ch/mk/internal/adapters/telemetry" //nolint:depguard // noop fallback wired in app layer
	"go.trai.ch/mk/internal/core/domain"
	"go.trai.ch/mk/internal/core/ports"
	"go.trai.ch/mk/internal/engine/runner"
	"go.trai.ch/zerr"
)

// RunOptions configures a single invocation.
type RunOptions struct {
	// Force runs non-phony targets even when they are up to date.
	Force bool
	// Quiet disables the progress recorder and discards command output.
	Quiet bool
}

// App wires the taskfile loader and the runner together.
type App struct {
	configLoader ports.ConfigLoader
	runner       *runner.Runner
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, r *runner.Runner, tel ports.Telemetry) *App {
	return &App{
		configLoader: loader,
		runner:       r,
		telemetry:    tel,
	}
}

// Run loads the registry and executes the requested targets in order.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	reg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load taskfile")
	}

	tel := a.telemetry
	if opts.Quiet {
		tel = telemetry.NewNoOp()
	}
	defer func() {
		_ = tel.Close()
	}()

	return a.runner.Run(ctx, reg, targetNames, tel, runner.Options{Force: opts.Force})
}

// List returns the registered targets in lexical name order.
func (a *App) List(_ context.Context) ([]domain.Target, error) {
	reg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load taskfile")
	}

	targets := make([]domain.Target, 0, reg.Len())
	for _, name := range reg.Names() {
		t, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}
