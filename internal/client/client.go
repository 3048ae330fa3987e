// Package client implements the azdo.Client interface: the generic resource
// lifecycle engine plus the per-resource clients built on top of it.
package client

import (
	"fmt"

	internalhttp "github.com/azdokit/azdo-client/internal/http"
	"github.com/azdokit/azdo-client/pkg/azdo"
)

const apiVersion = "7.1"

// defaultAuditHost and defaultSearchHost are sibling services with their own
// hostnames; requests to them use fully-qualified URLs unless the base URL
// was overridden (tests, proxies), in which case everything goes through the
// one base.
const (
	defaultAuditHost  = "https://auditservice.dev.azure.com"
	defaultSearchHost = "https://almsearch.dev.azure.com"
)

// Client implements the azdo.Client interface.
type Client struct {
	session      azdo.Session
	state        *azdo.StateStore
	logger       azdo.Logger
	eng          engine
	plan         *planEngine
	organization string
	project      string
	auditPrefix  string
	searchPrefix string

	repos            *ReposClient
	branches         *BranchesClient
	commits          *CommitsClient
	pullRequests     *PullRequestsClient
	projects         *ProjectsClient
	teams            *TeamsClient
	environments     *EnvironmentsClient
	auditLogs        *AuditLogsClient
	serviceEndpoints *ServiceEndpointsClient
	codeSearch       *CodeSearchClient
}

// New creates a client with its own authenticated HTTP session.
func New(config *azdo.Config) (*Client, error) {
	err := validate(config)
	if err != nil {
		return nil, err
	}

	if config.PersonalAccessToken == "" {
		return nil, azdo.ErrCredentialsRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = internalhttp.DefaultBaseURL
	}

	opts := []internalhttp.Option{}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	session := internalhttp.NewClient(baseURL+"/"+config.Organization, config.Username, config.PersonalAccessToken, opts...)

	return NewWithSession(config, session)
}

// NewWithSession creates a client around an already-authenticated session.
// The core never constructs authentication itself; whatever session is handed
// in is trusted as-is.
func NewWithSession(config *azdo.Config, session azdo.Session) (*Client, error) {
	err := validate(config)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = azdo.NopLogger()
	}

	state, err := azdo.NewStateStore(config.StateFile)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	client := &Client{
		session:      session,
		state:        state,
		logger:       logger,
		organization: config.Organization,
		project:      config.Project,
	}

	if config.BaseURL == "" {
		client.auditPrefix = defaultAuditHost + "/" + config.Organization
		client.searchPrefix = defaultSearchHost + "/" + config.Organization
	}

	live := &liveEngine{session: session, state: state, logger: logger}
	client.eng = live

	if config.DryRun {
		client.plan = &planEngine{live: live}
		client.eng = client.plan
	}

	client.initializeResourceClients()

	return client, nil
}

func validate(config *azdo.Config) error {
	if config == nil {
		return azdo.ErrConfigRequired
	}

	if config.Organization == "" {
		return azdo.ErrOrganizationRequired
	}

	if config.Project == "" {
		return azdo.ErrProjectRequired
	}

	return nil
}

func (c *Client) initializeResourceClients() {
	c.repos = &ReposClient{client: c}
	c.branches = &BranchesClient{client: c}
	c.commits = &CommitsClient{client: c}
	c.pullRequests = &PullRequestsClient{client: c}
	c.projects = &ProjectsClient{client: c}
	c.teams = &TeamsClient{client: c}
	c.environments = &EnvironmentsClient{client: c}
	c.auditLogs = &AuditLogsClient{client: c}
	c.serviceEndpoints = &ServiceEndpointsClient{client: c}
	c.codeSearch = &CodeSearchClient{client: c}
}

// Repos implements azdo.Client.Repos.
func (c *Client) Repos() azdo.ReposClient { return c.repos }

// Branches implements azdo.Client.Branches.
func (c *Client) Branches() azdo.BranchesClient { return c.branches }

// Commits implements azdo.Client.Commits.
func (c *Client) Commits() azdo.CommitsClient { return c.commits }

// PullRequests implements azdo.Client.PullRequests.
func (c *Client) PullRequests() azdo.PullRequestsClient { return c.pullRequests }

// Projects implements azdo.Client.Projects.
func (c *Client) Projects() azdo.ProjectsClient { return c.projects }

// Teams implements azdo.Client.Teams.
func (c *Client) Teams() azdo.TeamsClient { return c.teams }

// Environments implements azdo.Client.Environments.
func (c *Client) Environments() azdo.EnvironmentsClient { return c.environments }

// AuditLogs implements azdo.Client.AuditLogs.
func (c *Client) AuditLogs() azdo.AuditLogsClient { return c.auditLogs }

// ServiceEndpoints implements azdo.Client.ServiceEndpoints.
func (c *Client) ServiceEndpoints() azdo.ServiceEndpointsClient { return c.serviceEndpoints }

// CodeSearch implements azdo.Client.CodeSearch.
func (c *Client) CodeSearch() azdo.CodeSearchClient { return c.codeSearch }

// State implements azdo.Client.State.
func (c *Client) State() *azdo.StateStore { return c.state }

// DryRun implements azdo.Client.DryRun.
func (c *Client) DryRun() bool { return c.plan != nil }

// PlannedChanges implements azdo.Client.PlannedChanges.
func (c *Client) PlannedChanges() []azdo.PlannedChange {
	if c.plan == nil {
		return nil
	}

	return c.plan.changes
}

// descriptor panics when a built-in kind is missing from the registry, which
// can only mean the package-level registration was edited incorrectly.
func descriptor(kind azdo.Kind) *azdo.Descriptor {
	desc, ok := azdo.DescriptorFor(kind)
	if !ok {
		panic(fmt.Sprintf("client: no descriptor registered for %q", kind))
	}

	return desc
}
