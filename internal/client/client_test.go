package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azdokit/azdo-client/internal/client"
	internalhttp "github.com/azdokit/azdo-client/internal/http"
	"github.com/azdokit/azdo-client/pkg/azdo"
)

// newTestClient builds a client whose session points at a test server. The
// server sees the same paths Azure DevOps would, prefixed with the
// organization name.
func newTestClient(t *testing.T, handler http.Handler, mutate ...func(*azdo.Config)) azdo.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := &azdo.Config{
		Organization: "myorg",
		Project:      "proj",
		BaseURL:      server.URL,
	}

	for _, m := range mutate {
		m(config)
	}

	session := internalhttp.NewClient(server.URL+"/myorg", "user", "pat")

	apiClient, err := client.NewWithSession(config, session)
	require.NoError(t, err)

	return apiClient
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		config  *azdo.Config
		wantErr error
	}{
		{name: "nil config", config: nil, wantErr: azdo.ErrConfigRequired},
		{name: "missing organization", config: &azdo.Config{Project: "proj"}, wantErr: azdo.ErrOrganizationRequired},
		{name: "missing project", config: &azdo.Config{Organization: "myorg"}, wantErr: azdo.ErrProjectRequired},
		{
			name:    "missing token",
			config:  &azdo.Config{Organization: "myorg", Project: "proj"},
			wantErr: azdo.ErrCredentialsRequired,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := client.New(testCase.config)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestNewWithSession_LoadsState(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	seed, err := azdo.NewStateStore(path)
	require.NoError(t, err)
	require.NoError(t, seed.Upsert(azdo.KindTeam, "t-1", map[string]interface{}{"team_id": "t-1", "name": "platform"}))

	apiClient := newTestClient(t, http.NotFoundHandler(), func(config *azdo.Config) {
		config.StateFile = path
	})

	doc, ok := apiClient.State().Get(azdo.KindTeam, "t-1")
	require.True(t, ok)
	assert.Equal(t, "platform", doc["name"])
}

func TestClient_DryRun(t *testing.T) {
	t.Parallel()

	// Any network call fails the test: dry-run mutations must never leave
	// the process.
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		writer.WriteHeader(http.StatusInternalServerError)
	})

	apiClient := newTestClient(t, handler, func(config *azdo.Config) {
		config.DryRun = true
	})

	require.True(t, apiClient.DryRun())
	assert.Empty(t, apiClient.PlannedChanges())

	ctx := context.Background()

	repo, err := apiClient.Repos().Create(ctx, "new-repo", false)
	require.NoError(t, err)
	assert.Equal(t, "new-repo", repo.Name)

	_, err = apiClient.Teams().Create(ctx, "platform", "Platform engineering")
	require.NoError(t, err)

	updated, err := apiClient.Repos().Update(ctx, repo, "default_branch", "develop")
	require.NoError(t, err)
	assert.Equal(t, "develop", updated.DefaultBranch)

	changes := apiClient.PlannedChanges()
	require.Len(t, changes, 3)
	assert.Equal(t, azdo.PlanCreate, changes[0].Operation)
	assert.Equal(t, azdo.KindRepo, changes[0].Kind)
	assert.Equal(t, azdo.KindTeam, changes[1].Kind)
	assert.Equal(t, azdo.PlanUpdate, changes[2].Operation)

	assert.Empty(t, apiClient.State().IDs(azdo.KindRepo), "dry-run must not touch state")
}

func TestClient_DryRun_False(t *testing.T) {
	t.Parallel()

	apiClient := newTestClient(t, http.NotFoundHandler())

	assert.False(t, apiClient.DryRun())
	assert.Nil(t, apiClient.PlannedChanges())
}
