package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// zeroObjectID is the ref update base for a branch that does not exist yet,
// such as the first push into an empty repository.
const zeroObjectID = "0000000000000000000000000000000000000000"

// CommitsClient implements azdo.CommitsClient. Commits are immutable, so the
// client only reads them and creates new ones via pushes; nothing here
// touches local state.
type CommitsClient struct {
	client *Client
}

// Get fetches a single commit by its sha.
func (c *CommitsClient) Get(ctx context.Context, repoID string, commitID string) (*azdo.Commit, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/commits/%s?api-version=%s", c.client.project, repoID, commitID, apiVersion)

	resource, err := c.client.eng.fetchOne(ctx, descriptor(azdo.KindCommit), rawURL)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Commit), nil
}

// List fetches the commits of a repository.
func (c *CommitsClient) List(ctx context.Context, repoID string) ([]*azdo.Commit, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/commits?api-version=%s", c.client.project, repoID, apiVersion)

	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindCommit), rawURL)
	if err != nil {
		return nil, err
	}

	commits := make([]*azdo.Commit, 0, len(resources))
	for _, resource := range resources {
		commits = append(commits, resource.(*azdo.Commit))
	}

	return commits, nil
}

// Create pushes a commit containing the given files onto branchName, branched
// from the tip of baseBranch. When baseBranch has no tip yet the push starts
// the branch from scratch, which is how an empty repository gets its first
// commit.
func (c *CommitsClient) Create(ctx context.Context, repoID string, baseBranch string, branchName string, files map[string]string, message string) (*azdo.Commit, error) {
	oldObjectID, err := c.branchTip(ctx, repoID, baseBranch)
	if err != nil {
		return nil, err
	}

	changes := make([]map[string]interface{}, 0, len(files))
	for filePath, contents := range files {
		changes = append(changes, map[string]interface{}{
			"changeType": "add",
			"item":       map[string]interface{}{"path": "/" + filePath},
			"newContent": map[string]interface{}{"content": contents, "contentType": "rawtext"},
		})
	}

	payload := map[string]interface{}{
		"refUpdates": []map[string]interface{}{
			{"name": "refs/heads/" + branchName, "oldObjectId": oldObjectID},
		},
		"commits": []map[string]interface{}{
			{"comment": message, "changes": changes},
		},
	}

	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/pushes?api-version=%s", c.client.project, repoID, apiVersion)

	resp, err := c.client.session.Post(ctx, rawURL, payload)
	if err != nil {
		return nil, fmt.Errorf("pushing commit: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &azdo.RequestError{Kind: azdo.KindCommit, Operation: "create", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var push struct {
		Commits []json.RawMessage `json:"commits"`
	}

	err = json.Unmarshal(resp.Body, &push)
	if err != nil {
		return nil, fmt.Errorf("parsing push response: %w", err)
	}

	if len(push.Commits) == 0 {
		return nil, fmt.Errorf("push response contained no commits")
	}

	resource, err := descriptor(azdo.KindCommit).FromPayload(push.Commits[0])
	if err != nil {
		return nil, fmt.Errorf("parsing pushed commit: %w", err)
	}

	return resource.(*azdo.Commit), nil
}

// AddInitialReadme pushes a minimal README.md onto main, giving a fresh
// repository its first commit and default branch.
func (c *CommitsClient) AddInitialReadme(ctx context.Context, repoID string) (*azdo.Commit, error) {
	files := map[string]string{"README.md": "# README\n"}

	return c.Create(ctx, repoID, "main", "main", files, "Add README.md")
}

// branchTip returns the object id at the head of the named branch, or
// zeroObjectID when the branch does not exist.
func (c *CommitsClient) branchTip(ctx context.Context, repoID string, branch string) (string, error) {
	branches, err := c.client.branches.list(ctx, repoID, branch)
	if err != nil {
		return "", fmt.Errorf("resolving tip of %s: %w", branch, err)
	}

	branchRef, ok := first(branches, func(b *azdo.Branch) bool { return b.Name == branch })
	if !ok {
		return zeroObjectID, nil
	}

	return branchRef.BranchID, nil
}
