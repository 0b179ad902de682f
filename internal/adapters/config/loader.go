// Package config provides the taskfile loader for mk.
package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/mk/internal/core/domain"
	"go.trai.ch/mk/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the taskfile name looked up in the working directory.
const DefaultFilename = "mk.yaml"

// defaultTaskfile defines the stock targets used when no mk.yaml exists.
//
//go:embed default.yaml
var defaultTaskfile []byte

// reservedNames are target names shadowed by CLI subcommands.
var reservedNames = map[string]bool{
	"run":        true,
	"list":       true,
	"version":    true,
	"help":       true,
	"completion": true,
}

// Loader implements ports.ConfigLoader using a YAML taskfile.
type Loader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a Loader reading DefaultFilename.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Filename: DefaultFilename,
		logger:   logger,
	}
}

// Load reads the taskfile from the given working directory and returns the
// validated registry. When no taskfile exists, the embedded stock targets
// are used instead.
func (l *Loader) Load(cwd string) (*domain.Registry, error) {
	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, "failed to read taskfile"), "path", path)
		}
		l.logger.Info("no " + l.Filename + " found, using built-in targets")
		data = defaultTaskfile
	}
	return Parse(data)
}

// Parse builds a validated registry from taskfile bytes.
func Parse(data []byte) (*domain.Registry, error) {
	var taskfile Taskfile
	if err := yaml.Unmarshal(data, &taskfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse taskfile")
	}

	reg := domain.NewRegistry()
	for name, dto := range taskfile.Targets {
		if reservedNames[name] {
			return nil, zerr.With(zerr.New("target name is reserved"), "target", name)
		}
		if err := reg.Add(toTarget(name, dto)); err != nil {
			return nil, err
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, zerr.Wrap(err, "invalid taskfile")
	}
	return reg, nil
}

func toTarget(name string, dto TargetDTO) *domain.Target {
	outputs := canonicalize(dto.Outputs)

	// A target with no declared outputs has nothing to check for
	// freshness, so it defaults to phony.
	phony := len(outputs) == 0
	if dto.Phony != nil {
		phony = *dto.Phony
	}

	return &domain.Target{
		Name:          domain.NewInternedString(name),
		Commands:      slices.Clone(dto.Run),
		Prerequisites: intern(dto.Needs),
		Outputs:       outputs,
		Environment:   dto.Env,
		WorkingDir:    domain.NewInternedString(dto.Dir),
		Phony:         phony,
	}
}

func intern(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

func canonicalize(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return intern(slices.Compact(sorted))
}
