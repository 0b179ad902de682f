package state_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mk/internal/adapters/state"
	"go.trai.ch/mk/internal/core/domain"
)

func tempStatePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), state.DefaultPath)
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	store, err := state.NewStore(tempStatePath(t))
	require.NoError(t, err)

	info, err := store.Get("build")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	path := tempStatePath(t)
	store, err := state.NewStore(path)
	require.NoError(t, err)

	want := domain.RunInfo{
		Target:      "compile",
		CommandHash: "cafebabe",
		OutputHash:  "deadbeef",
		Timestamp:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(want))

	got, err := store.Get("compile")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	// The record survives a reload from disk.
	reloaded, err := state.NewStore(path)
	require.NoError(t, err)
	got, err = reloaded.Get("compile")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_PutReplaces(t *testing.T) {
	store, err := state.NewStore(tempStatePath(t))
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.RunInfo{Target: "compile", CommandHash: "old"}))
	require.NoError(t, store.Put(domain.RunInfo{Target: "compile", CommandHash: "new"}))

	got, err := store.Get("compile")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.CommandHash)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := state.NewStore(path)
	require.Error(t, err)
}

func TestStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := state.NewStore(path)
	require.NoError(t, err)

	info, err := store.Get("anything")
	require.NoError(t, err)
	assert.Nil(t, info)
}
