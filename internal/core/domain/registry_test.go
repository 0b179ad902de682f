package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mk/internal/core/domain"
)

func target(name string, prereqs ...string) *domain.Target {
	t := &domain.Target{
		Name:  domain.NewInternedString(name),
		Phony: true,
	}
	for _, p := range prereqs {
		t.Prerequisites = append(t.Prerequisites, domain.NewInternedString(p))
	}
	return t
}

func TestRegistry_Add_Duplicate(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("test")))

	err := reg.Add(target("test"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateTarget)
}

func TestRegistry_Lookup(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("docs")))

	got, err := reg.Lookup("docs")
	require.NoError(t, err)
	assert.Equal(t, "docs", got.Name.String())

	_, err = reg.Lookup("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestRegistry_Lookup_ErrorChain(t *testing.T) {
	reg := domain.NewRegistry()

	// The sentinel must stay reachable through the metadata wrapper so
	// callers can branch on it, and the message must keep the make-style
	// "no rule" wording.
	_, err := reg.Lookup("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
	assert.Contains(t, err.Error(), "no rule for target")
}

func TestRegistry_Names_Sorted(t *testing.T) {
	reg := domain.NewRegistry()
	for _, name := range []string{"push_release", "build", "clean"} {
		require.NoError(t, reg.Add(target(name)))
	}

	assert.Equal(t, []string{"build", "clean", "push_release"}, reg.Names())
}

func TestRegistry_Validate_MissingPrerequisite(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("build", "lint")))

	err := reg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingPrerequisite)
}

func TestRegistry_Validate_Cycle(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("a", "b")))
	require.NoError(t, reg.Add(target("b", "c")))
	require.NoError(t, reg.Add(target("c", "a")))

	err := reg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestRegistry_Validate_SelfCycle(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("a", "a")))

	err := reg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestRegistry_Resolve_PrerequisitesFirst(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("release", "build", "test")))
	require.NoError(t, reg.Add(target("build")))
	require.NoError(t, reg.Add(target("test")))
	require.NoError(t, reg.Validate())

	order, err := reg.Resolve([]string{"release"})
	require.NoError(t, err)

	names := make([]string, len(order))
	for i, tg := range order {
		names[i] = tg.Name.String()
	}
	assert.Equal(t, []string{"build", "test", "release"}, names)
}

func TestRegistry_Resolve_NoDuplicates(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("a", "c")))
	require.NoError(t, reg.Add(target("b", "c")))
	require.NoError(t, reg.Add(target("c")))
	require.NoError(t, reg.Validate())

	order, err := reg.Resolve([]string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, order, 3)
	assert.Equal(t, "c", order[0].Name.String())
}

func TestRegistry_Resolve_UnknownTarget(t *testing.T) {
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("test")))

	_, err := reg.Resolve([]string{"bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestRegistry_Resolve_IndependentTargets(t *testing.T) {
	// Stock targets declare no prerequisites: each resolves to itself only.
	reg := domain.NewRegistry()
	require.NoError(t, reg.Add(target("test")))
	require.NoError(t, reg.Add(target("build")))
	require.NoError(t, reg.Validate())

	order, err := reg.Resolve([]string{"build"})
	require.NoError(t, err)
	require.Len(t, order, 1)
	assert.Equal(t, "build", order[0].Name.String())
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, 0, domain.ExitStatus(nil))
	assert.Equal(t, 2, domain.ExitStatus(domain.ErrTargetNotFound))

	cmdErr := &domain.CommandError{Command: "flake8 dynast", ExitCode: 3}
	assert.Equal(t, 3, domain.ExitStatus(cmdErr))

	// Signal termination has no exit code; report a generic failure.
	killed := &domain.CommandError{Command: "pytest", ExitCode: -1}
	assert.Equal(t, 2, domain.ExitStatus(killed))
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	cmdErr := &domain.CommandError{Command: "git push", ExitCode: 1, Err: cause}

	assert.ErrorIs(t, cmdErr, cause)
	assert.Contains(t, cmdErr.Error(), "git push")
}
