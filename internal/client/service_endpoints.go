package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// serviceEndpointsAPIVersion is separate because the service endpoint
// endpoints are still in preview.
const serviceEndpointsAPIVersion = "7.1-preview.4"

// ServiceEndpointsClient implements azdo.ServiceEndpointsClient.
type ServiceEndpointsClient struct {
	client *Client
}

func (c *ServiceEndpointsClient) endpointURL(endpointID string) string {
	return fmt.Sprintf("/%s/_apis/serviceendpoint/endpoints/%s?api-version=%s",
		c.client.project, endpointID, serviceEndpointsAPIVersion)
}

// Create creates a new service connection in the project.
func (c *ServiceEndpointsClient) Create(ctx context.Context, name string, endpointType string, endpointURL string, description string) (*azdo.ServiceEndpoint, error) {
	rawURL := fmt.Sprintf("/%s/_apis/serviceendpoint/endpoints?api-version=%s", c.client.project, serviceEndpointsAPIVersion)

	payload := map[string]interface{}{
		"name":        name,
		"type":        endpointType,
		"url":         endpointURL,
		"description": description,
	}

	resource, err := c.client.eng.create(ctx, descriptor(azdo.KindServiceEndpoint), rawURL, payload, nil)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.ServiceEndpoint), nil
}

// Get fetches a single service connection by id.
func (c *ServiceEndpointsClient) Get(ctx context.Context, endpointID string) (*azdo.ServiceEndpoint, error) {
	resource, err := c.client.eng.fetchOne(ctx, descriptor(azdo.KindServiceEndpoint), c.endpointURL(endpointID))
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.ServiceEndpoint), nil
}

// GetByName finds a service connection by name. The second return is false
// when no service connection matches.
func (c *ServiceEndpointsClient) GetByName(ctx context.Context, name string) (*azdo.ServiceEndpoint, bool, error) {
	endpoints, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}

	endpoint, ok := first(endpoints, func(e *azdo.ServiceEndpoint) bool { return e.Name == name })

	return endpoint, ok, nil
}

// List fetches every service connection in the project.
func (c *ServiceEndpointsClient) List(ctx context.Context) ([]*azdo.ServiceEndpoint, error) {
	rawURL := fmt.Sprintf("/%s/_apis/serviceendpoint/endpoints?api-version=%s", c.client.project, serviceEndpointsAPIVersion)

	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindServiceEndpoint), rawURL)
	if err != nil {
		return nil, err
	}

	endpoints := make([]*azdo.ServiceEndpoint, 0, len(resources))
	for _, resource := range resources {
		endpoints = append(endpoints, resource.(*azdo.ServiceEndpoint))
	}

	return endpoints, nil
}

// Update changes one editable attribute of a service connection and returns
// the updated value. The remote API replaces the whole document on PUT, so
// the current values are sent alongside the changed field.
func (c *ServiceEndpointsClient) Update(ctx context.Context, endpoint *azdo.ServiceEndpoint, field string, value interface{}) (*azdo.ServiceEndpoint, error) {
	params := map[string]interface{}{
		"name":        endpoint.Name,
		"type":        endpoint.Type,
		"url":         endpoint.URL,
		"description": endpoint.Description,
	}

	resource, err := c.client.eng.update(ctx, descriptor(azdo.KindServiceEndpoint), endpoint, http.MethodPut,
		c.endpointURL(endpoint.ServiceEndpointID), field, value, params)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.ServiceEndpoint), nil
}

// Delete deletes a service connection.
func (c *ServiceEndpointsClient) Delete(ctx context.Context, endpointID string) error {
	return c.client.eng.remove(ctx, descriptor(azdo.KindServiceEndpoint), c.endpointURL(endpointID), endpointID)
}
