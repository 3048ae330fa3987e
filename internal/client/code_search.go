package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

const codeSearchAPIVersion = "7.1-preview.1"

// CodeSearchClient implements azdo.CodeSearchClient. Code search lives on a
// dedicated service with its own hostname and is read-only.
type CodeSearchClient struct {
	client *Client
}

// Search runs a code search across the project. sortDirection is "ASC" or
// "DESC" and orders results by path.
func (c *CodeSearchClient) Search(ctx context.Context, text string, resultCount int, sortDirection string) ([]*azdo.CodeSearchResult, error) {
	rawURL := fmt.Sprintf("%s/%s/_apis/search/codesearchresults?api-version=%s",
		c.client.searchPrefix, c.client.project, codeSearchAPIVersion)

	payload := map[string]interface{}{
		"searchText": text,
		"$top":       resultCount,
		"$orderBy": []map[string]interface{}{
			{"field": "path", "sortOrder": sortDirection},
		},
	}

	resp, err := c.client.session.Post(ctx, rawURL, payload)
	if err != nil {
		return nil, fmt.Errorf("searching code: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &azdo.PermissionError{Kind: "CodeSearchResult", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &azdo.RequestError{Kind: "CodeSearchResult", Operation: "search", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var envelope struct {
		Results []struct {
			FileName   string `json:"fileName"`
			Path       string `json:"path"`
			Repository struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"repository"`
			Project struct {
				Name string `json:"name"`
			} `json:"project"`
			Versions []struct {
				BranchName string `json:"branchName"`
			} `json:"versions"`
			Matches struct {
				Content []azdo.CodeSearchHit `json:"content"`
			} `json:"matches"`
		} `json:"results"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing code search response: %w", err)
	}

	results := make([]*azdo.CodeSearchResult, 0, len(envelope.Results))

	for _, hit := range envelope.Results {
		result := &azdo.CodeSearchResult{
			RepositoryName: hit.Repository.Name,
			RepositoryID:   hit.Repository.ID,
			ProjectName:    hit.Project.Name,
			Path:           hit.Path,
			FileName:       hit.FileName,
			Matches:        hit.Matches.Content,
		}

		if len(hit.Versions) > 0 {
			result.BranchName = hit.Versions[0].BranchName
		}

		results = append(results, result)
	}

	return results, nil
}
