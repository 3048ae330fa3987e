package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// BranchesClient implements azdo.BranchesClient. Branches are read through
// the refs endpoints of their repository and are never tracked in local
// state, since they are owned by pushes rather than by this client.
type BranchesClient struct {
	client *Client
}

func (c *BranchesClient) refsURL(repoID string, filter string) string {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/refs?filter=heads", c.client.project, repoID)
	if filter != "" {
		rawURL += "/" + filter
	}

	return rawURL + "&api-version=" + apiVersion
}

// List fetches every branch of a repository.
func (c *BranchesClient) List(ctx context.Context, repoID string) ([]*azdo.Branch, error) {
	return c.list(ctx, repoID, "")
}

func (c *BranchesClient) list(ctx context.Context, repoID string, filter string) ([]*azdo.Branch, error) {
	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindBranch), c.refsURL(repoID, filter))
	if err != nil {
		return nil, err
	}

	branches := make([]*azdo.Branch, 0, len(resources))
	for _, resource := range resources {
		branches = append(branches, resource.(*azdo.Branch))
	}

	return branches, nil
}

// Get finds a branch by its object id. The second return is false when no
// branch matches.
func (c *BranchesClient) Get(ctx context.Context, repoID string, branchID string) (*azdo.Branch, bool, error) {
	branches, err := c.List(ctx, repoID)
	if err != nil {
		return nil, false, err
	}

	branch, ok := first(branches, func(b *azdo.Branch) bool { return b.BranchID == branchID })

	return branch, ok, nil
}

// GetByName finds a branch by name. The second return is false when no
// branch matches.
func (c *BranchesClient) GetByName(ctx context.Context, repoID string, name string) (*azdo.Branch, bool, error) {
	branches, err := c.List(ctx, repoID)
	if err != nil {
		return nil, false, err
	}

	branch, ok := first(branches, func(b *azdo.Branch) bool { return b.Name == name })

	return branch, ok, nil
}

// GetMain returns the repository's main branch. The second return is false
// when the repository has none, such as right after creation.
func (c *BranchesClient) GetMain(ctx context.Context, repoID string) (*azdo.Branch, bool, error) {
	branches, err := c.List(ctx, repoID)
	if err != nil {
		return nil, false, err
	}

	branch, ok := first(branches, func(b *azdo.Branch) bool { return b.IsMain })

	return branch, ok, nil
}

// ListProtected returns the repository's protected branches.
func (c *BranchesClient) ListProtected(ctx context.Context, repoID string) ([]*azdo.Branch, error) {
	branches, err := c.List(ctx, repoID)
	if err != nil {
		return nil, err
	}

	return filter(branches, func(b *azdo.Branch) bool { return b.IsProtected }), nil
}

// ListActive returns the repository's branches that have not been deleted.
func (c *BranchesClient) ListActive(ctx context.Context, repoID string) ([]*azdo.Branch, error) {
	branches, err := c.List(ctx, repoID)
	if err != nil {
		return nil, err
	}

	return filter(branches, func(b *azdo.Branch) bool { return !b.IsDeleted }), nil
}

// Create creates a new branch from an existing source branch.
func (c *BranchesClient) Create(ctx context.Context, repoID string, name string, sourceBranch string) (*azdo.Branch, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/refs?api-version=%s", c.client.project, repoID, apiVersion)

	payload := map[string]interface{}{
		"name": name,
		"ref":  "refs/heads/" + sourceBranch,
	}

	resp, err := c.client.session.Post(ctx, rawURL, payload)
	if err != nil {
		return nil, fmt.Errorf("creating branch: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &azdo.RequestError{Kind: azdo.KindBranch, Operation: "create", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	resource, err := descriptor(azdo.KindBranch).FromPayload(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing created branch: %w", err)
	}

	return resource.(*azdo.Branch), nil
}

// Delete deletes a branch by its object id.
func (c *BranchesClient) Delete(ctx context.Context, repoID string, branchID string) error {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/refs/%s?api-version=%s", c.client.project, repoID, branchID, apiVersion)

	resp, err := c.client.session.Delete(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("deleting branch: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return &azdo.RequestError{Kind: azdo.KindBranch, Operation: "delete", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	kept := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}

	return kept
}
