package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body interface{}) {
	t.Helper()

	writer.WriteHeader(status)
	require.NoError(t, json.NewEncoder(writer).Encode(body))
}

func TestRepos_List(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/myorg/proj/_apis/git/repositories", request.URL.Path)
		assert.Equal(t, "7.1", request.URL.Query().Get("api-version"))

		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"count": 2,
			"value": []map[string]interface{}{
				{"id": "r-1", "name": "infra", "defaultBranch": "refs/heads/main"},
				{"id": "r-2", "name": "docs", "isDisabled": true},
			},
		})
	})

	apiClient := newTestClient(t, handler)

	repos, err := apiClient.Repos().List(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "infra", repos[0].Name)
	assert.True(t, repos[1].IsDisabled)
}

func TestRepos_GetByName(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"value": []map[string]interface{}{
				{"id": "r-1", "name": "infra"},
				{"id": "r-2", "name": "docs"},
			},
		})
	})

	apiClient := newTestClient(t, handler)

	repo, ok, err := apiClient.Repos().GetByName(context.Background(), "docs")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r-2", repo.RepoID)

	_, ok, err = apiClient.Repos().GetByName(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepos_Create_TracksState(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, http.MethodPost, request.Method)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, "new-repo", payload["name"])

		writeJSON(t, writer, http.StatusCreated, map[string]interface{}{"id": "r-9", "name": "new-repo"})
	})

	apiClient := newTestClient(t, handler)

	repo, err := apiClient.Repos().Create(context.Background(), "new-repo", false)
	require.NoError(t, err)
	assert.Equal(t, "r-9", repo.RepoID)
	assert.Equal(t, "main", repo.DefaultBranch)

	doc, ok := apiClient.State().Get(azdo.KindRepo, "r-9")
	require.True(t, ok)
	assert.Equal(t, "new-repo", doc["name"])
}

func TestRepos_Create_WithReadme(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /myorg/proj/_apis/git/repositories", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusCreated, map[string]interface{}{"id": "r-9", "name": "new-repo"})
	})
	mux.HandleFunc("GET /myorg/proj/_apis/git/repositories/r-9/refs", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusOK, map[string]interface{}{"value": []interface{}{}})
	})

	var push map[string]interface{}

	mux.HandleFunc("POST /myorg/proj/_apis/git/repositories/r-9/pushes", func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, json.NewDecoder(request.Body).Decode(&push))

		writeJSON(t, writer, http.StatusCreated, map[string]interface{}{
			"commits": []map[string]interface{}{
				{"commitId": "abc123", "comment": "Add README.md"},
			},
		})
	})

	apiClient := newTestClient(t, mux)

	_, err := apiClient.Repos().Create(context.Background(), "new-repo", true)
	require.NoError(t, err)

	require.NotNil(t, push, "creating with a readme must push an initial commit")

	refUpdates, ok := push["refUpdates"].([]interface{})
	require.True(t, ok)
	require.Len(t, refUpdates, 1)

	refUpdate, ok := refUpdates[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "refs/heads/main", refUpdate["name"])
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestRepos_Delete(t *testing.T) {
	t.Parallel()

	t.Run("re-enables a disabled repo and evicts its pull requests", func(t *testing.T) {
		t.Parallel()

		var patched map[string]interface{}

		mux := http.NewServeMux()
		mux.HandleFunc("GET /myorg/proj/_apis/git/repositories/r-1", func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{"id": "r-1", "name": "infra", "isDisabled": true})
		})
		mux.HandleFunc("PATCH /myorg/proj/_apis/git/repositories/r-1", func(writer http.ResponseWriter, request *http.Request) {
			require.NoError(t, json.NewDecoder(request.Body).Decode(&patched))
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{})
		})
		mux.HandleFunc("DELETE /myorg/proj/_apis/git/repositories/r-1", func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNoContent)
		})

		apiClient := newTestClient(t, mux)

		// A pull request belonging to the doomed repo, and one that is not.
		pr := &azdo.PullRequest{PullRequestID: "12", RepoID: "r-1", Title: "stale"}
		other := &azdo.PullRequest{PullRequestID: "13", RepoID: "r-2", Title: "keep"}

		for _, pullRequest := range []*azdo.PullRequest{pr, other} {
			encoded, err := azdo.EncodeState(pullRequest)
			require.NoError(t, err)
			require.NoError(t, apiClient.State().Upsert(azdo.KindPullRequest, pullRequest.PullRequestID, encoded))
		}

		require.NoError(t, apiClient.Repos().Delete(context.Background(), "r-1"))

		assert.Equal(t, false, patched["isDisabled"], "disabled repos must be re-enabled before deletion")

		_, ok := apiClient.State().Get(azdo.KindPullRequest, "12")
		assert.False(t, ok, "pull requests of a deleted repo must leave state")

		_, ok = apiClient.State().Get(azdo.KindPullRequest, "13")
		assert.True(t, ok, "other repos' pull requests must stay")
	})

	t.Run("missing repo deletes are idempotent", func(t *testing.T) {
		t.Parallel()

		apiClient := newTestClient(t, http.NotFoundHandler())

		require.NoError(t, apiClient.Repos().Delete(context.Background(), "ghost"))
	})
}

func TestRepos_GetFile(t *testing.T) {
	t.Parallel()
	t.Run("returns raw contents", func(t *testing.T) {
		t.Parallel()

		handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "config.yaml", request.URL.Query().Get("path"))
			assert.Equal(t, "main", request.URL.Query().Get("version"))

			_, _ = writer.Write([]byte("retries: 3\nregion: eu\n"))
		})

		apiClient := newTestClient(t, handler)

		contents, err := apiClient.Repos().GetFile(context.Background(), "r-1", "config.yaml", "main")
		require.NoError(t, err)
		assert.Contains(t, contents, "retries")
	})

	t.Run("404 means not found", func(t *testing.T) {
		t.Parallel()

		apiClient := newTestClient(t, http.NotFoundHandler())

		_, err := apiClient.Repos().GetFile(context.Background(), "r-1", "missing.txt", "main")
		assert.True(t, azdo.IsNotFound(err))
	})
}

func TestRepos_GetAndDecodeFile(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"config.yaml": "retries: 3\nregion: eu\n",
		"config.json": `{"retries": 3, "region": "eu"}`,
		"config.bak":  "whatever",
	}

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		contents, ok := files[request.URL.Query().Get("path")]
		if !ok {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = writer.Write([]byte(contents))
	})

	apiClient := newTestClient(t, handler)

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		decoded, err := apiClient.Repos().GetAndDecodeFile(context.Background(), "r-1", "config.yaml", "main")
		require.NoError(t, err)
		assert.Equal(t, "eu", decoded["region"])
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		decoded, err := apiClient.Repos().GetAndDecodeFile(context.Background(), "r-1", "config.json", "main")
		require.NoError(t, err)
		assert.Equal(t, "eu", decoded["region"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		_, err := apiClient.Repos().GetAndDecodeFile(context.Background(), "r-1", "config.bak", "main")
		require.ErrorContains(t, err, "unsupported file extension")
	})
}
