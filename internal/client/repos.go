package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// ReposClient implements azdo.ReposClient.
type ReposClient struct {
	client *Client
}

func (c *ReposClient) repoURL(repoID string) string {
	return fmt.Sprintf("/%s/_apis/git/repositories/%s?api-version=%s", c.client.project, repoID, apiVersion)
}

// Create creates a new git repository in the project. With includeReadme set
// the repository also receives an initial commit on main so it has a default
// branch to work against.
func (c *ReposClient) Create(ctx context.Context, name string, includeReadme bool) (*azdo.Repo, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories?api-version=%s", c.client.project, apiVersion)

	resource, err := c.client.eng.create(ctx, descriptor(azdo.KindRepo), rawURL, map[string]interface{}{"name": name}, nil)
	if err != nil {
		return nil, err
	}

	repo := resource.(*azdo.Repo)

	if includeReadme && !c.client.DryRun() {
		_, err = c.client.commits.AddInitialReadme(ctx, repo.RepoID)
		if err != nil {
			return nil, fmt.Errorf("adding initial README: %w", err)
		}
	}

	return repo, nil
}

// Get fetches a single repository by id.
func (c *ReposClient) Get(ctx context.Context, repoID string) (*azdo.Repo, error) {
	resource, err := c.client.eng.fetchOne(ctx, descriptor(azdo.KindRepo), c.repoURL(repoID))
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Repo), nil
}

// GetByName finds a repository by its name. The second return is false when
// no repository matches.
func (c *ReposClient) GetByName(ctx context.Context, name string) (*azdo.Repo, bool, error) {
	repos, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}

	repo, ok := first(repos, func(r *azdo.Repo) bool { return r.Name == name })

	return repo, ok, nil
}

// List fetches every repository in the project.
func (c *ReposClient) List(ctx context.Context) ([]*azdo.Repo, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories?api-version=%s", c.client.project, apiVersion)

	resources, err := c.client.eng.fetchAll(ctx, descriptor(azdo.KindRepo), rawURL)
	if err != nil {
		return nil, err
	}

	repos := make([]*azdo.Repo, 0, len(resources))
	for _, resource := range resources {
		repos = append(repos, resource.(*azdo.Repo))
	}

	return repos, nil
}

// Update changes one editable attribute of a repository and returns the
// updated value.
func (c *ReposClient) Update(ctx context.Context, repo *azdo.Repo, field string, value interface{}) (*azdo.Repo, error) {
	resource, err := c.client.eng.update(ctx, descriptor(azdo.KindRepo), repo, http.MethodPatch, c.repoURL(repo.RepoID), field, value, nil)
	if err != nil {
		return nil, err
	}

	return resource.(*azdo.Repo), nil
}

// Delete deletes a repository. A disabled repository cannot be deleted
// directly, so it is re-enabled first. Pull requests belonging to the
// repository are evicted from local state since they disappear with it.
func (c *ReposClient) Delete(ctx context.Context, repoID string) error {
	repo, err := c.Get(ctx, repoID)
	if err != nil && !azdo.IsNotFound(err) {
		return err
	}

	if err == nil && repo.IsDisabled {
		_, err = c.Update(ctx, repo, "is_disabled", false)
		if err != nil {
			return fmt.Errorf("re-enabling repo before delete: %w", err)
		}
	}

	for _, id := range c.client.state.IDs(azdo.KindPullRequest) {
		resource, err := c.client.state.Resource(azdo.KindPullRequest, id)
		if err != nil {
			continue
		}

		if pr := resource.(*azdo.PullRequest); pr.RepoID == repoID {
			err = c.client.state.Remove(azdo.KindPullRequest, id)
			if err != nil {
				return fmt.Errorf("evicting pull request %s from state: %w", id, err)
			}
		}
	}

	return c.client.eng.remove(ctx, descriptor(azdo.KindRepo), c.repoURL(repoID), repoID)
}

// GetFile fetches the raw contents of a file from a branch of the
// repository.
func (c *ReposClient) GetFile(ctx context.Context, repoID string, filePath string, branch string) (string, error) {
	rawURL := fmt.Sprintf("/%s/_apis/git/repositories/%s/items?path=%s&versionType=Branch&version=%s&api-version=%s",
		c.client.project, repoID, filePath, branch, apiVersion)

	resp, err := c.client.session.Get(ctx, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetching file: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", &azdo.NotFoundError{
			Kind:   azdo.KindRepo,
			Detail: fmt.Sprintf("file %q not found in repo %s on branch %s", filePath, repoID, branch),
		}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", &azdo.RequestError{
			Kind:       azdo.KindRepo,
			Operation:  "get file",
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}

	return string(resp.Body), nil
}

// GetAndDecodeFile fetches a JSON or YAML file and decodes it into a generic
// mapping. The format is chosen from the file extension.
func (c *ReposClient) GetAndDecodeFile(ctx context.Context, repoID string, filePath string, branch string) (map[string]interface{}, error) {
	contents, err := c.GetFile(ctx, repoID, filePath, branch)
	if err != nil {
		return nil, err
	}

	decoded := map[string]interface{}{}

	switch strings.ToLower(path.Ext(filePath)) {
	case ".json":
		err = json.Unmarshal([]byte(contents), &decoded)
	case ".yaml", ".yml":
		err = yaml.Unmarshal([]byte(contents), &decoded)
	default:
		return nil, fmt.Errorf("unsupported file extension %q, expected .json, .yaml or .yml", path.Ext(filePath))
	}

	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}

	return decoded, nil
}
