package client

import (
	"context"
	"fmt"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// ProjectsClient implements azdo.ProjectsClient. Projects are read-only:
// creating and deleting them is a queued asynchronous operation on the remote
// side with its own approval semantics, and is out of reach for this client.
type ProjectsClient struct {
	client *Client
}

// Get fetches a single project by id.
func (c *ProjectsClient) Get(ctx context.Context, projectID string) (*azdo.Project, error) {
	rawURL := fmt.Sprintf("/_apis/projects/%s?api-version=%s", projectID, apiVersion)

	resource, err := c.client.eng.fetchOne(ctx, descriptor(azdo.KindProject), rawURL)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Project), nil
}

// GetByName finds a project by name. The second return is false when no
// project matches.
func (c *ProjectsClient) GetByName(ctx context.Context, name string) (*azdo.Project, bool, error) {
	projects, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}

	project, ok := first(projects, func(p *azdo.Project) bool { return p.Name == name })

	return project, ok, nil
}

// List fetches every project in the organization.
func (c *ProjectsClient) List(ctx context.Context) ([]*azdo.Project, error) {
	rawURL := "/_apis/projects?api-version=" + apiVersion

	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindProject), rawURL)
	if err != nil {
		return nil, err
	}

	projects := make([]*azdo.Project, 0, len(resources))
	for _, resource := range resources {
		projects = append(projects, resource.(*azdo.Project))
	}

	return projects, nil
}

// Create is not supported.
func (c *ProjectsClient) Create(ctx context.Context, name string, description string) (*azdo.Project, error) {
	return nil, fmt.Errorf("creating projects: %w", azdo.ErrNotImplemented)
}

// Delete is not supported.
func (c *ProjectsClient) Delete(ctx context.Context, projectID string) error {
	return fmt.Errorf("deleting projects: %w", azdo.ErrNotImplemented)
}
