// Package runner implements the sequential target execution engine.
package runner

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/mk/internal/core/domain"
	"go.trai.ch/mk/internal/core/ports"
	"go.trai.ch/zerr"
)

// Status represents the lifecycle state of a target within one run.
type Status string

const (
	// StatusPending indicates the target has not started yet.
	StatusPending Status = "Pending"
	// StatusRunning indicates the target is currently executing.
	StatusRunning Status = "Running"
	// StatusCompleted indicates the target finished successfully.
	StatusCompleted Status = "Completed"
	// StatusFailed indicates a command of the target exited non-zero.
	StatusFailed Status = "Failed"
	// StatusUpToDate indicates a non-phony target was skipped because its
	// recorded outputs are unchanged.
	StatusUpToDate Status = "UpToDate"
)

// Options configures a single run.
type Options struct {
	// Force runs non-phony targets even when they are up to date.
	Force bool
}

// Runner executes targets strictly in sequence: one target at a time, one
// command at a time, stopping at the first failure. It never retries and
// never rolls back effects of commands that already ran.
type Runner struct {
	executor ports.Executor
	hasher   ports.Hasher
	store    ports.RunStore
	logger   ports.Logger

	mu     sync.RWMutex
	status map[domain.InternedString]Status
}

// NewRunner creates a Runner with the given collaborators.
func NewRunner(
	executor ports.Executor,
	hasher ports.Hasher,
	store ports.RunStore,
	logger ports.Logger,
) *Runner {
	return &Runner{
		executor: executor,
		hasher:   hasher,
		store:    store,
		logger:   logger,
		status:   make(map[domain.InternedString]Status),
	}
}

// Status returns the recorded state of a target, defaulting to Pending.
func (r *Runner) Status(name domain.InternedString) Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.status[name]; ok {
		return s
	}
	return StatusPending
}

func (r *Runner) setStatus(name domain.InternedString, s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[name] = s
}

// Run resolves the requested names against the registry and executes the
// resulting targets in order. An unknown name fails before anything runs.
// The first failing command aborts the rest of the run and its error,
// carrying the command's exit status, is returned.
func (r *Runner) Run(
	ctx context.Context,
	reg *domain.Registry,
	names []string,
	telemetry ports.Telemetry,
	opts Options,
) error {
	targets, err := reg.Resolve(names)
	if err != nil {
		return err
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "run interrupted")
		}
		if err := r.runTarget(ctx, &target, telemetry, opts); err != nil {
			return zerr.With(zerr.Wrap(err, "target failed"), "target", target.Name.String())
		}
	}
	return nil
}

func (r *Runner) runTarget(
	ctx context.Context,
	target *domain.Target,
	telemetry ports.Telemetry,
	opts Options,
) error {
	vctx, vertex := telemetry.Record(ctx, target.Name.String())

	if r.upToDate(target, opts) {
		vertex.Cached()
		r.setStatus(target.Name, StatusUpToDate)
		r.logger.Info(target.Name.String() + " is up to date")
		return nil
	}

	r.setStatus(target.Name, StatusRunning)
	err := r.executor.Execute(vctx, target)
	vertex.Complete(err)
	if err != nil {
		r.setStatus(target.Name, StatusFailed)
		return err
	}
	r.setStatus(target.Name, StatusCompleted)

	if !target.Phony {
		return r.recordRun(target)
	}
	return nil
}

// upToDate reports whether a non-phony target can be skipped: its command
// fingerprint matches the last recorded run and its declared outputs all
// exist with unchanged content. Phony targets always run.
func (r *Runner) upToDate(target *domain.Target, opts Options) bool {
	if target.Phony || opts.Force {
		return false
	}

	info, err := r.store.Get(target.Name.String())
	if err != nil {
		r.logger.Warn("could not read last run record for " + target.Name.String())
		return false
	}
	if info == nil {
		return false
	}
	if info.CommandHash != r.hasher.HashCommands(target) {
		return false
	}

	outputHash, err := r.hasher.HashOutputs(target)
	if err != nil {
		// Missing or unreadable outputs mean the target must run again.
		return false
	}
	return info.OutputHash == outputHash
}

func (r *Runner) recordRun(target *domain.Target) error {
	outputHash, err := r.hasher.HashOutputs(target)
	if err != nil {
		return zerr.Wrap(err, "failed to hash target outputs")
	}

	info := domain.RunInfo{
		Target:      target.Name.String(),
		CommandHash: r.hasher.HashCommands(target),
		OutputHash:  outputHash,
		Timestamp:   time.Now(),
	}
	if err := r.store.Put(info); err != nil {
		return zerr.Wrap(err, "failed to record run")
	}
	return nil
}
