package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// PullRequestsClient implements azdo.PullRequestsClient.
type PullRequestsClient struct {
	client *Client
}

func (c *PullRequestsClient) pullRequestURL(repoID string, pullRequestID string) string {
	return fmt.Sprintf("/%s/_apis/git/repositories/%s/pullrequests/%s?api-version=%s",
		c.client.project, repoID, pullRequestID, apiVersion)
}

// Create opens a pull request from sourceBranch into main.
func (c *PullRequestsClient) Create(ctx context.Context, repoID string, sourceBranch string, title string, description string) (*azdo.PullRequest, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/pullrequests?api-version=%s", c.client.project, repoID, apiVersion)

	payload := map[string]interface{}{
		"sourceRefName": "refs/heads/" + sourceBranch,
		"targetRefName": "refs/heads/main",
		"title":         title,
		"description":   description,
	}

	resource, err := c.client.eng.create(ctx, descriptor(azdo.KindPullRequest), rawURL, payload, nil)
	if err != nil {
		return nil, err
	}

	pullRequest := resource.(*azdo.PullRequest)

	// Dry-run placeholders are built from the request payload, which does
	// not name the repository; the URL did.
	if pullRequest.RepoID == "" {
		pullRequest.RepoID = repoID
	}

	return pullRequest, nil
}

// Get fetches a single pull request by id.
func (c *PullRequestsClient) Get(ctx context.Context, repoID string, pullRequestID string) (*azdo.PullRequest, error) {
	resource, err := c.client.eng.fetchOne(ctx, descriptor(azdo.KindPullRequest), c.pullRequestURL(repoID, pullRequestID))
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.PullRequest), nil
}

// ListByRepo fetches the pull requests of a repository, filtered by status.
// Status accepts the remote API values such as "active", "completed",
// "abandoned" or "all".
func (c *PullRequestsClient) ListByRepo(ctx context.Context, repoID string, status string) ([]*azdo.PullRequest, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/pullrequests?searchCriteria.status=%s&api-version=%s",
		c.client.project, repoID, status, apiVersion)

	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindPullRequest), rawURL)
	if err != nil {
		return nil, err
	}

	pullRequests := make([]*azdo.PullRequest, 0, len(resources))
	for _, resource := range resources {
		pullRequests = append(pullRequests, resource.(*azdo.PullRequest))
	}

	return pullRequests, nil
}

// Update changes one editable attribute of a pull request and returns the
// updated value.
func (c *PullRequestsClient) Update(ctx context.Context, pullRequest *azdo.PullRequest, field string, value interface{}) (*azdo.PullRequest, error) {
	rawURL := c.pullRequestURL(pullRequest.RepoID, pullRequest.PullRequestID)

	resource, err := c.client.eng.update(ctx, descriptor(azdo.KindPullRequest), pullRequest, http.MethodPatch, rawURL, field, value, nil)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.PullRequest), nil
}

// MarkAsDraft converts the pull request to a draft.
func (c *PullRequestsClient) MarkAsDraft(ctx context.Context, pullRequest *azdo.PullRequest) (*azdo.PullRequest, error) {
	return c.Update(ctx, pullRequest, "is_draft", true)
}

// Close abandons the pull request.
func (c *PullRequestsClient) Close(ctx context.Context, pullRequest *azdo.PullRequest) (*azdo.PullRequest, error) {
	return c.Update(ctx, pullRequest, "status", "abandoned")
}
