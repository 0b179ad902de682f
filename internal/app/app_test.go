package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mk/internal/app"
	"go.trai.ch/mk/internal/core/domain"
	"go.trai.ch/mk/internal/core/ports"
	"go.trai.ch/mk/internal/core/ports/mocks"
	"go.trai.ch/mk/internal/engine/runner"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	ctrl      *gomock.Controller
	loader    *mocks.MockConfigLoader
	executor  *mocks.MockExecutor
	telemetry *mocks.MockTelemetry
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		ctrl:      ctrl,
		loader:    mocks.NewMockConfigLoader(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
	}
	r := runner.NewRunner(
		f.executor,
		mocks.NewMockHasher(ctrl),
		mocks.NewMockRunStore(ctrl),
		mocks.NewMockLogger(ctrl),
	)
	f.app = app.New(f.loader, r, f.telemetry)
	return f
}

func registryWith(t *testing.T, names ...string) *domain.Registry {
	t.Helper()
	reg := domain.NewRegistry()
	for _, name := range names {
		require.NoError(t, reg.Add(&domain.Target{
			Name:     domain.NewInternedString(name),
			Commands: []string{"echo " + name},
			Phony:    true,
		}))
	}
	return reg
}

func (f *fixture) expectVertex(name string) {
	vertex := mocks.NewMockVertex(f.ctrl)
	vertex.EXPECT().Complete(gomock.Any())
	f.telemetry.EXPECT().Record(gomock.Any(), name).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
}

func TestApp_Run_NoTargets(t *testing.T) {
	f := newFixture(t)

	err := f.app.Run(context.Background(), nil, app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_Run_LoadFailure(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(nil, zerr.New("broken taskfile"))

	err := f.app.Run(context.Background(), []string{"test"}, app.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load taskfile")
}

func TestApp_Run_ExecutesTargets(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(registryWith(t, "test"), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil)
	f.expectVertex("test")
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Run(context.Background(), []string{"test"}, app.RunOptions{})
	require.NoError(t, err)
}

func TestApp_Run_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(registryWith(t, "test"), nil)
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Run(context.Background(), []string{"bogus"}, app.RunOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestApp_Run_QuietSilencesTelemetry(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(registryWith(t, "test"), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil)
	// The injected telemetry must stay untouched in quiet mode.

	err := f.app.Run(context.Background(), []string{"test"}, app.RunOptions{Quiet: true})
	require.NoError(t, err)
}

func TestApp_List(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(registryWith(t, "docs", "build"), nil)

	targets, err := f.app.List(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "build", targets[0].Name.String())
	assert.Equal(t, "docs", targets[1].Name.String())
}

func TestApp_List_LoadFailure(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(nil, zerr.New("broken taskfile"))

	_, err := f.app.List(context.Background())
	require.Error(t, err)
}
