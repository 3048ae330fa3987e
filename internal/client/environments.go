package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// environmentsAPIVersion is separate because the environments endpoints are
// still in preview.
const environmentsAPIVersion = "7.1-preview.1"

// EnvironmentsClient implements azdo.EnvironmentsClient.
type EnvironmentsClient struct {
	client *Client
}

func (c *EnvironmentsClient) environmentURL(environmentID string) string {
	return fmt.Sprintf("/%s/_apis/distributedtask/environments/%s?api-version=%s",
		c.client.project, environmentID, environmentsAPIVersion)
}

// Create creates a new pipeline environment.
func (c *EnvironmentsClient) Create(ctx context.Context, name string, description string) (*azdo.Environment, error) {
	rawURL := fmt.Sprintf("/%s/_apis/distributedtask/environments?api-version=%s", c.client.project, environmentsAPIVersion)

	payload := map[string]interface{}{
		"name":        name,
		"description": description,
	}

	resource, err := c.client.eng.create(ctx, descriptor(azdo.KindEnvironment), rawURL, payload, nil)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Environment), nil
}

// Get fetches a single environment by id.
func (c *EnvironmentsClient) Get(ctx context.Context, environmentID string) (*azdo.Environment, error) {
	resource, err := c.client.eng.fetchOne(ctx, descriptor(azdo.KindEnvironment), c.environmentURL(environmentID))
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Environment), nil
}

// GetByName finds an environment by name. The second return is false when no
// environment matches.
func (c *EnvironmentsClient) GetByName(ctx context.Context, name string) (*azdo.Environment, bool, error) {
	environments, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}

	environment, ok := first(environments, func(e *azdo.Environment) bool { return e.Name == name })

	return environment, ok, nil
}

// List fetches every environment in the project.
func (c *EnvironmentsClient) List(ctx context.Context) ([]*azdo.Environment, error) {
	rawURL := fmt.Sprintf("/%s/_apis/distributedtask/environments?$top=10000&api-version=%s",
		c.client.project, environmentsAPIVersion)

	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindEnvironment), rawURL)
	if err != nil {
		return nil, err
	}

	environments := make([]*azdo.Environment, 0, len(resources))
	for _, resource := range resources {
		environments = append(environments, resource.(*azdo.Environment))
	}

	return environments, nil
}

// Update changes one editable attribute of an environment and returns the
// updated value. The remote API requires both name and description in the
// body, so the current values are sent alongside the changed field.
func (c *EnvironmentsClient) Update(ctx context.Context, environment *azdo.Environment, field string, value interface{}) (*azdo.Environment, error) {
	params := map[string]interface{}{
		"name":        environment.Name,
		"description": environment.Description,
	}

	resource, err := c.client.eng.update(ctx, descriptor(azdo.KindEnvironment), environment, http.MethodPatch,
		c.environmentURL(environment.EnvironmentID), field, value, params)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Environment), nil
}

// Delete deletes an environment.
func (c *EnvironmentsClient) Delete(ctx context.Context, environmentID string) error {
	return c.client.eng.remove(ctx, descriptor(azdo.KindEnvironment), c.environmentURL(environmentID), environmentID)
}
