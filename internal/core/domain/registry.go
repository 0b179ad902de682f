// Package domain contains the core domain model for the task runner: the
// target registry and the rules for resolving target names to runnable
// command sequences.
package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Registry maps target names to their definitions. It is built once by the
// config loader, validated, and read-only from then on; nothing mutates it
// during a run.
type Registry struct {
	targets map[InternedString]Target
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[InternedString]Target),
	}
}

// Add inserts a target definition. Defining the same name twice is a
// configuration error.
func (r *Registry) Add(t *Target) error {
	if _, exists := r.targets[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateTarget, "failed to register target"), "target", t.Name.String())
	}
	r.targets[t.Name] = *t
	return nil
}

// Lookup returns the target registered under name.
func (r *Registry) Lookup(name string) (Target, error) {
	t, ok := r.targets[NewInternedString(name)]
	if !ok {
		return Target{}, zerr.With(zerr.Wrap(ErrTargetNotFound, "failed to resolve target"), "target", name)
	}
	return t, nil
}

// Names returns all registered target names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.targets)
}

// Validate checks that every declared prerequisite exists and that the
// prerequisite relation is acyclic. It must pass before Resolve is used.
func (r *Registry) Validate() error {
	visited := make(map[InternedString]int, len(r.targets)) // 0 unvisited, 1 on path, 2 done
	var path []InternedString

	var visit func(name InternedString) error
	visit = func(name InternedString) error {
		visited[name] = 1
		path = append(path, name)

		t, exists := r.targets[name]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingPrerequisite, "failed to validate prerequisites"), "prerequisite", name.String())
		}

		for _, pre := range t.Prerequisites {
			switch visited[pre] {
			case 1:
				return cycleError(path, pre)
			case 0:
				if err := visit(pre); err != nil {
					return err
				}
			}
		}

		visited[name] = 2
		path = path[:len(path)-1]
		return nil
	}

	for name := range r.targets {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Resolve expands the requested names into the ordered list of targets to
// execute: each target's prerequisites first, depth-first, then the target
// itself, with no target appearing twice across the whole request.
// Requested names must exist; prerequisites are assumed validated.
func (r *Registry) Resolve(names []string) ([]Target, error) {
	seen := make(map[InternedString]bool, len(r.targets))
	var order []Target

	var visit func(name InternedString) error
	visit = func(name InternedString) error {
		if seen[name] {
			return nil
		}
		seen[name] = true

		t, ok := r.targets[name]
		if !ok {
			return zerr.With(zerr.Wrap(ErrTargetNotFound, "failed to resolve target"), "target", name.String())
		}
		for _, pre := range t.Prerequisites {
			if err := visit(pre); err != nil {
				return err
			}
		}
		order = append(order, t)
		return nil
	}

	for _, name := range names {
		// Lookup first so an unknown requested name reports ErrTargetNotFound
		// even when it collides with an already-visited prerequisite.
		if _, err := r.Lookup(name); err != nil {
			return nil, err
		}
		if err := visit(NewInternedString(name)); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func cycleError(path []InternedString, repeat InternedString) error {
	start := slices.Index(path, repeat)
	if start < 0 {
		start = 0
	}
	parts := make([]string, 0, len(path)-start+1)
	for _, name := range path[start:] {
		parts = append(parts, name.String())
	}
	parts = append(parts, repeat.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "failed to validate prerequisites"), "cycle", strings.Join(parts, " -> "))
}
