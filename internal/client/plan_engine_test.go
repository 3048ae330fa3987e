package client

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

func newTestPlanEngine(t *testing.T, session *stubSession) *planEngine {
	t.Helper()

	return &planEngine{live: newTestEngine(t, session)}
}

func TestPlanEngine_Create(t *testing.T) {
	t.Parallel()
	t.Run("stages the change and returns a placeholder", func(t *testing.T) {
		t.Parallel()

		session := &stubSession{}
		eng := newTestPlanEngine(t, session)

		payload := map[string]interface{}{"name": "new-repo"}

		resource, err := eng.create(context.Background(), repoDescriptor(t), "/url", payload, nil)
		require.NoError(t, err)

		repo := resource.(*azdo.Repo)
		assert.True(t, strings.HasPrefix(repo.RepoID, "plan-"), "placeholder ids are synthetic")
		assert.Equal(t, "new-repo", repo.Name)

		assert.Empty(t, session.calls, "dry-run creates must not reach the network")
		assert.Empty(t, eng.live.state.IDs(azdo.KindRepo), "dry-run creates must not touch state")

		require.Len(t, eng.changes, 1)
		assert.Equal(t, azdo.PlanCreate, eng.changes[0].Operation)
		assert.Equal(t, azdo.KindRepo, eng.changes[0].Kind)
		assert.Equal(t, payload, eng.changes[0].Payload)
		assert.Nil(t, eng.changes[0].Before)
	})

	t.Run("fails for types without a placeholder", func(t *testing.T) {
		t.Parallel()

		session := &stubSession{}
		eng := newTestPlanEngine(t, session)

		desc, ok := azdo.DescriptorFor(azdo.KindProject)
		require.True(t, ok)

		_, err := eng.create(context.Background(), desc, "/url", nil, nil)
		require.ErrorIs(t, err, azdo.ErrNoPlaceholder)
		assert.Empty(t, eng.changes)
	})
}

func TestPlanEngine_Update(t *testing.T) {
	t.Parallel()
	t.Run("stages the change with the state before it", func(t *testing.T) {
		t.Parallel()

		session := &stubSession{}
		eng := newTestPlanEngine(t, session)

		repo := &azdo.Repo{RepoID: "r-1", Name: "infra", DefaultBranch: "main"}

		resource, err := eng.update(context.Background(), repoDescriptor(t), repo, http.MethodPatch, "/url", "name", "platform", nil)
		require.NoError(t, err)

		assert.Equal(t, "platform", resource.(*azdo.Repo).Name)
		assert.Equal(t, "infra", repo.Name)
		assert.Empty(t, session.calls)

		require.Len(t, eng.changes, 1)
		change := eng.changes[0]
		assert.Equal(t, azdo.PlanUpdate, change.Operation)
		assert.Equal(t, "infra", change.Before["name"])
		assert.Equal(t, map[string]interface{}{"name": "platform"}, change.Payload)
	})

	t.Run("still validates editable fields", func(t *testing.T) {
		t.Parallel()

		session := &stubSession{}
		eng := newTestPlanEngine(t, session)

		repo := &azdo.Repo{RepoID: "r-1", Name: "infra"}

		_, err := eng.update(context.Background(), repoDescriptor(t), repo, http.MethodPatch, "/url", "repo_id", "other", nil)
		assert.True(t, azdo.IsInvalidAttribute(err))
		assert.Empty(t, eng.changes)
	})
}

func TestPlanEngine_Remove_PassesThrough(t *testing.T) {
	t.Parallel()

	session := &stubSession{responses: []*azdo.HTTPResponse{response(http.StatusNoContent, "")}}
	eng := newTestPlanEngine(t, session)

	require.NoError(t, eng.remove(context.Background(), repoDescriptor(t), "/url", "r-1"))
	require.Len(t, session.calls, 1)
	assert.Equal(t, http.MethodDelete, session.calls[0].method)
}
