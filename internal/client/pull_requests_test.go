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

func TestPullRequests_Create(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/myorg/proj/_apis/git/repositories/r-1/pullrequests", request.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		assert.Equal(t, "refs/heads/feature/ci", payload["sourceRefName"])
		assert.Equal(t, "refs/heads/main", payload["targetRefName"])

		writeJSON(t, writer, http.StatusCreated, map[string]interface{}{
			"pullRequestId": 12,
			"repository":    map[string]interface{}{"id": "r-1"},
			"title":         "Add build pipeline",
			"sourceRefName": "refs/heads/feature/ci",
			"targetRefName": "refs/heads/main",
			"status":        "active",
			"createdBy":     map[string]interface{}{"id": "m-1", "displayName": "Alex Doe", "uniqueName": "alex@example.com"},
			"creationDate":  "2024-05-02T09:00:00Z",
		})
	})

	apiClient := newTestClient(t, handler)

	pullRequest, err := apiClient.PullRequests().Create(context.Background(), "r-1", "feature/ci", "Add build pipeline", "")
	require.NoError(t, err)

	// Numeric ids travel as strings everywhere in this library.
	assert.Equal(t, "12", pullRequest.PullRequestID)
	assert.Equal(t, "r-1", pullRequest.RepoID)
	assert.Equal(t, "feature/ci", pullRequest.SourceBranch)
	require.NotNil(t, pullRequest.Author)
	assert.Equal(t, "Alex Doe", pullRequest.Author.Name)

	doc, ok := apiClient.State().Get(azdo.KindPullRequest, "12")
	require.True(t, ok)
	assert.Equal(t, "Add build pipeline", doc["title"])
}

func TestPullRequests_ListByRepo(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "active", request.URL.Query().Get("searchCriteria.status"))

		writeJSON(t, writer, http.StatusOK, map[string]interface{}{
			"value": []map[string]interface{}{
				{"pullRequestId": 12, "title": "one"},
				{"pullRequestId": 13, "title": "two"},
			},
		})
	})

	apiClient := newTestClient(t, handler)

	pullRequests, err := apiClient.PullRequests().ListByRepo(context.Background(), "r-1", "active")
	require.NoError(t, err)
	require.Len(t, pullRequests, 2)
	assert.Equal(t, "13", pullRequests[1].PullRequestID)
}

func TestPullRequests_CloseAndDraft(t *testing.T) {
	t.Parallel()

	newHandler := func(patched *map[string]interface{}) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			require.Equal(t, http.MethodPatch, request.Method)
			assert.Equal(t, "/myorg/proj/_apis/git/repositories/r-1/pullrequests/12", request.URL.Path)
			require.NoError(t, json.NewDecoder(request.Body).Decode(patched))
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{})
		})
	}

	t.Run("close abandons", func(t *testing.T) {
		t.Parallel()

		var patched map[string]interface{}
		apiClient := newTestClient(t, newHandler(&patched))

		pullRequest := &azdo.PullRequest{PullRequestID: "12", RepoID: "r-1", Status: "active"}

		closed, err := apiClient.PullRequests().Close(context.Background(), pullRequest)
		require.NoError(t, err)

		assert.Equal(t, "abandoned", closed.Status)
		assert.Equal(t, "active", pullRequest.Status)
		assert.Equal(t, map[string]interface{}{"status": "abandoned"}, patched)
	})

	t.Run("mark as draft", func(t *testing.T) {
		t.Parallel()

		var patched map[string]interface{}
		apiClient := newTestClient(t, newHandler(&patched))

		pullRequest := &azdo.PullRequest{PullRequestID: "12", RepoID: "r-1"}

		draft, err := apiClient.PullRequests().MarkAsDraft(context.Background(), pullRequest)
		require.NoError(t, err)

		assert.True(t, draft.IsDraft)
		assert.Equal(t, map[string]interface{}{"isDraft": true}, patched)
	})
}

func TestPullRequests_Update_InvalidField(t *testing.T) {
	t.Parallel()

	apiClient := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("validation failures must not reach the network")
	}))

	pullRequest := &azdo.PullRequest{PullRequestID: "12", RepoID: "r-1"}

	_, err := apiClient.PullRequests().Update(context.Background(), pullRequest, "source_branch", "other")
	assert.True(t, azdo.IsInvalidAttribute(err))
}
