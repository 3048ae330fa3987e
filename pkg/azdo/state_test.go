package azdo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

func TestNewStateStore(t *testing.T) {
	t.Parallel()
	t.Run("missing file starts empty", func(t *testing.T) {
		t.Parallel()

		store, err := azdo.NewStateStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, err)

		assert.Empty(t, store.IDs(azdo.KindRepo))
	})

	t.Run("empty path keeps state in memory", func(t *testing.T) {
		t.Parallel()

		store, err := azdo.NewStateStore("")
		require.NoError(t, err)

		require.NoError(t, store.Upsert(azdo.KindRepo, "r-1", map[string]interface{}{"repo_id": "r-1"}))

		_, ok := store.Get(azdo.KindRepo, "r-1")
		assert.True(t, ok)
	})

	t.Run("corrupt file fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := azdo.NewStateStore(path)
		require.Error(t, err)
	})
}

func TestStateStore_WriteThrough(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	store, err := azdo.NewStateStore(path)
	require.NoError(t, err)

	doc := map[string]interface{}{
		"repo_id":        "r-1",
		"name":           "infra",
		"default_branch": "main",
		"is_disabled":    "false",
	}
	require.NoError(t, store.Upsert(azdo.KindRepo, "r-1", doc))

	// A fresh store must see the flushed entry.
	reloaded, err := azdo.NewStateStore(path)
	require.NoError(t, err)

	got, ok := reloaded.Get(azdo.KindRepo, "r-1")
	require.True(t, ok)
	assert.Equal(t, "infra", got["name"])

	resource, err := reloaded.Resource(azdo.KindRepo, "r-1")
	require.NoError(t, err)
	assert.Equal(t, &azdo.Repo{RepoID: "r-1", Name: "infra", DefaultBranch: "main"}, resource)
}

func TestStateStore_Remove(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	store, err := azdo.NewStateStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Upsert(azdo.KindRepo, "r-1", map[string]interface{}{"repo_id": "r-1"}))
	require.NoError(t, store.Remove(azdo.KindRepo, "r-1"))

	_, ok := store.Get(azdo.KindRepo, "r-1")
	assert.False(t, ok)

	reloaded, err := azdo.NewStateStore(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.IDs(azdo.KindRepo))

	t.Run("absent entry is a no-op", func(t *testing.T) {
		require.NoError(t, store.Remove(azdo.KindRepo, "never-tracked"))
		require.NoError(t, store.Remove(azdo.KindTeam, "never-tracked"))
	})
}

func TestStateStore_Resource_NotTracked(t *testing.T) {
	t.Parallel()

	store, err := azdo.NewStateStore("")
	require.NoError(t, err)

	_, err = store.Resource(azdo.KindRepo, "ghost")
	assert.True(t, azdo.IsNotFound(err))
}
