// Package azdoclient provides the main entry point for creating Azure DevOps API clients
package azdoclient

import (
	"fmt"
	"strings"

	"github.com/azdokit/azdo-client/internal/client"
	"github.com/azdokit/azdo-client/pkg/azdo"
)

// New creates a new Azure DevOps API client that authenticates with the
// personal access token from the config.
func New(config *azdo.Config) (azdo.Client, error) {
	if config == nil {
		return nil, azdo.ErrConfigRequired
	}

	normalizeBaseURL(config)

	// Use the internal client implementation
	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithSession creates a client around a caller-supplied session. The
// session is used as-is for every request, so it carries whatever
// authentication and transport behavior the caller set up.
func NewWithSession(config *azdo.Config, session azdo.Session) (azdo.Client, error) {
	if config == nil {
		return nil, azdo.ErrConfigRequired
	}

	normalizeBaseURL(config)

	apiClient, err := client.NewWithSession(config, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a client for the given organization and project,
// authenticating with a personal access token.
func NewWithToken(organization, project, username, token string) (azdo.Client, error) {
	return New(&azdo.Config{
		Organization:        organization,
		Project:             project,
		Username:            username,
		PersonalAccessToken: token,
	})
}

// normalizeBaseURL trims trailing slashes and defaults the scheme to https.
func normalizeBaseURL(config *azdo.Config) {
	if config.BaseURL == "" {
		return
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL
}
