package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// TeamsClient implements azdo.TeamsClient.
type TeamsClient struct {
	client *Client
}

func (c *TeamsClient) teamURL(teamID string) string {
	return fmt.Sprintf("/_apis/projects/%s/teams/%s?api-version=%s", c.client.project, teamID, apiVersion)
}

// Create creates a new team in the project.
func (c *TeamsClient) Create(ctx context.Context, name string, description string) (*azdo.Team, error) {
	rawURL := fmt.Sprintf("/_apis/projects/%s/teams?api-version=%s", c.client.project, apiVersion)

	payload := map[string]interface{}{
		"name":        name,
		"description": description,
	}

	resource, err := c.client.eng.create(ctx, descriptor(azdo.KindTeam), rawURL, payload, nil)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Team), nil
}

// Get fetches a single team by id.
func (c *TeamsClient) Get(ctx context.Context, teamID string) (*azdo.Team, error) {
	resource, err := c.client.eng.fetchOne(ctx, descriptor(azdo.KindTeam), c.teamURL(teamID))
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Team), nil
}

// GetByName finds a team by name. The second return is false when no team
// matches.
func (c *TeamsClient) GetByName(ctx context.Context, name string) (*azdo.Team, bool, error) {
	teams, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}

	team, ok := first(teams, func(t *azdo.Team) bool { return t.Name == name })

	return team, ok, nil
}

// List fetches every team in the project.
func (c *TeamsClient) List(ctx context.Context) ([]*azdo.Team, error) {
	rawURL := fmt.Sprintf("/_apis/projects/%s/teams?api-version=%s", c.client.project, apiVersion)

	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindTeam), rawURL)
	if err != nil {
		return nil, err
	}

	teams := make([]*azdo.Team, 0, len(resources))
	for _, resource := range resources {
		teams = append(teams, resource.(*azdo.Team))
	}

	return teams, nil
}

// Update changes one editable attribute of a team and returns the updated
// value.
func (c *TeamsClient) Update(ctx context.Context, team *azdo.Team, field string, value interface{}) (*azdo.Team, error) {
	resource, err := c.client.eng.update(ctx, descriptor(azdo.KindTeam), team, http.MethodPatch, c.teamURL(team.TeamID), field, value, nil)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Team), nil
}

// Delete deletes a team.
func (c *TeamsClient) Delete(ctx context.Context, teamID string) error {
	return c.client.eng.remove(ctx, descriptor(azdo.KindTeam), c.teamURL(teamID), teamID)
}
