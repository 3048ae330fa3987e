package azdo

import (
	"context"
	"time"
)

// Client is the top-level interface for interacting with Azure DevOps.
type Client interface {
	Repos() ReposClient
	Branches() BranchesClient
	Commits() CommitsClient
	PullRequests() PullRequestsClient
	Projects() ProjectsClient
	Teams() TeamsClient
	Environments() EnvironmentsClient
	AuditLogs() AuditLogsClient
	ServiceEndpoints() ServiceEndpointsClient
	CodeSearch() CodeSearchClient

	// State exposes the local record of tracked resources.
	State() *StateStore

	// DryRun reports whether mutating calls are being staged instead of
	// executed, and PlannedChanges drains nothing: the list lives until the
	// client is discarded.
	DryRun() bool
	PlannedChanges() []PlannedChange
}

// ReposClient manages git repositories.
type ReposClient interface {
	Create(ctx context.Context, name string, includeReadme bool) (*Repo, error)
	Get(ctx context.Context, repoID string) (*Repo, error)
	GetByName(ctx context.Context, name string) (*Repo, bool, error)
	List(ctx context.Context) ([]*Repo, error)
	Update(ctx context.Context, repo *Repo, field string, value interface{}) (*Repo, error)
	Delete(ctx context.Context, repoID string) error

	// GetFile fetches one file's raw content from a branch.
	GetFile(ctx context.Context, repoID, filePath, branch string) (string, error)
	// GetAndDecodeFile fetches a .json, .yaml or .yml file and decodes it.
	GetAndDecodeFile(ctx context.Context, repoID, filePath, branch string) (map[string]interface{}, error)
}

// BranchesClient reads and writes git refs. Branches are never state-tracked.
type BranchesClient interface {
	List(ctx context.Context, repoID string) ([]*Branch, error)
	Get(ctx context.Context, repoID, branchID string) (*Branch, bool, error)
	GetByName(ctx context.Context, repoID, name string) (*Branch, bool, error)
	GetMain(ctx context.Context, repoID string) (*Branch, bool, error)
	ListProtected(ctx context.Context, repoID string) ([]*Branch, error)
	ListActive(ctx context.Context, repoID string) ([]*Branch, error)
	Create(ctx context.Context, repoID, name, sourceBranch string) (*Branch, error)
	Delete(ctx context.Context, repoID, branchID string) error
}

// CommitsClient reads commits and pushes new ones.
type CommitsClient interface {
	Get(ctx context.Context, repoID, commitID string) (*Commit, error)
	List(ctx context.Context, repoID string) ([]*Commit, error)
	// Create pushes the given files to a new branch off baseBranch in a single
	// commit.
	Create(ctx context.Context, repoID, baseBranch, branchName string, files map[string]string, message string) (*Commit, error)
	// AddInitialReadme seeds a fresh repository's default branch.
	AddInitialReadme(ctx context.Context, repoID string) (*Commit, error)
}

// PullRequestsClient manages pull requests.
type PullRequestsClient interface {
	Create(ctx context.Context, repoID, sourceBranch, title, description string) (*PullRequest, error)
	Get(ctx context.Context, repoID, pullRequestID string) (*PullRequest, error)
	ListByRepo(ctx context.Context, repoID, status string) ([]*PullRequest, error)
	Update(ctx context.Context, pr *PullRequest, field string, value interface{}) (*PullRequest, error)
	MarkAsDraft(ctx context.Context, pr *PullRequest) (*PullRequest, error)
	Close(ctx context.Context, pr *PullRequest) (*PullRequest, error)
}

// ProjectsClient reads projects. Azure DevOps queues project create/delete as
// long-running operations this library does not drive, so both return
// ErrNotImplemented.
type ProjectsClient interface {
	Get(ctx context.Context, projectID string) (*Project, error)
	GetByName(ctx context.Context, name string) (*Project, bool, error)
	List(ctx context.Context) ([]*Project, error)
	Create(ctx context.Context, name, description string) (*Project, error)
	Delete(ctx context.Context, projectID string) error
}

// TeamsClient manages teams.
type TeamsClient interface {
	Create(ctx context.Context, name, description string) (*Team, error)
	Get(ctx context.Context, teamID string) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, bool, error)
	List(ctx context.Context) ([]*Team, error)
	Update(ctx context.Context, team *Team, field string, value interface{}) (*Team, error)
	Delete(ctx context.Context, teamID string) error
}

// EnvironmentsClient manages pipeline environments.
type EnvironmentsClient interface {
	Create(ctx context.Context, name, description string) (*Environment, error)
	Get(ctx context.Context, environmentID string) (*Environment, error)
	GetByName(ctx context.Context, name string) (*Environment, bool, error)
	List(ctx context.Context) ([]*Environment, error)
	Update(ctx context.Context, env *Environment, field string, value interface{}) (*Environment, error)
	Delete(ctx context.Context, environmentID string) error
}

// AuditLogsClient queries the organization audit log.
type AuditLogsClient interface {
	List(ctx context.Context, start, end time.Time) ([]*AuditLog, error)
	ListByArea(ctx context.Context, area string, start, end time.Time) ([]*AuditLog, error)
	ListByCategory(ctx context.Context, category string, start, end time.Time) ([]*AuditLog, error)
	ListByScopeType(ctx context.Context, scopeType string, start, end time.Time) ([]*AuditLog, error)
}

// ServiceEndpointsClient manages service connections.
type ServiceEndpointsClient interface {
	Create(ctx context.Context, name, endpointType, endpointURL, description string) (*ServiceEndpoint, error)
	Get(ctx context.Context, endpointID string) (*ServiceEndpoint, error)
	GetByName(ctx context.Context, name string) (*ServiceEndpoint, bool, error)
	List(ctx context.Context) ([]*ServiceEndpoint, error)
	Update(ctx context.Context, endpoint *ServiceEndpoint, field string, value interface{}) (*ServiceEndpoint, error)
	Delete(ctx context.Context, endpointID string) error
}

// CodeSearchClient runs code searches across the project.
type CodeSearchClient interface {
	Search(ctx context.Context, text string, resultCount int, sortDirection string) ([]*CodeSearchResult, error)
}
