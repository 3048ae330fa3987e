package azdo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Member represents a user identity as it appears nested inside other
// resources (pull request authors, environment creators and so on).
type Member struct {
	MemberID string
	Name     string
	Email    string
}

// ResourceKind implements Resource.
func (m *Member) ResourceKind() Kind { return KindMember }

// StateFields implements Resource.
func (m *Member) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"member_id": m.MemberID,
		"name":      m.Name,
		"email":     m.Email,
	}
}

type memberWire struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
}

func (w *memberWire) toMember() *Member {
	return &Member{MemberID: w.ID, Name: w.DisplayName, Email: w.UniqueName}
}

func memberFromPayload(data []byte) (Resource, error) {
	var wire memberWire

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing member payload: %w", err)
	}

	return wire.toMember(), nil
}

func memberFromState(state map[string]interface{}) (Resource, error) {
	return &Member{
		MemberID: stateString(state, "member_id"),
		Name:     stateString(state, "name"),
		Email:    stateString(state, "email"),
	}, nil
}

// Repo represents a git repository.
type Repo struct {
	RepoID        string
	Name          string
	DefaultBranch string
	// Disabling a repo blocks deleting it; Delete re-enables first.
	IsDisabled bool
}

// ResourceKind implements Resource.
func (r *Repo) ResourceKind() Kind { return KindRepo }

// StateFields implements Resource.
func (r *Repo) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"repo_id":        r.RepoID,
		"name":           r.Name,
		"default_branch": r.DefaultBranch,
		"is_disabled":    r.IsDisabled,
	}
}

func repoFromPayload(data []byte) (Resource, error) {
	var wire struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		DefaultBranch string `json:"defaultBranch"`
		IsDisabled    bool   `json:"isDisabled"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing repo payload: %w", err)
	}

	defaultBranch := strings.TrimPrefix(wire.DefaultBranch, "refs/heads/")
	if defaultBranch == "" {
		defaultBranch = "main"
	}

	return &Repo{
		RepoID:        wire.ID,
		Name:          wire.Name,
		DefaultBranch: defaultBranch,
		IsDisabled:    wire.IsDisabled,
	}, nil
}

func repoFromState(state map[string]interface{}) (Resource, error) {
	isDisabled, err := stateBool(state, "is_disabled")
	if err != nil {
		return nil, err
	}

	return &Repo{
		RepoID:        stateString(state, "repo_id"),
		Name:          stateString(state, "name"),
		DefaultBranch: stateString(state, "default_branch"),
		IsDisabled:    isDisabled,
	}, nil
}

func repoApply(resource Resource, field string, value interface{}) (Resource, error) {
	repo := *resource.(*Repo)

	var err error

	switch field {
	case "name":
		err = applyString(&repo.Name, field, value)
	case "default_branch":
		err = applyString(&repo.DefaultBranch, field, value)
	case "is_disabled":
		err = applyBool(&repo.IsDisabled, field, value)
	default:
		return nil, fmt.Errorf("repo has no editable field %q", field)
	}

	if err != nil {
		return nil, err
	}

	return &repo, nil
}

func repoPlaceholder(id string, payload map[string]interface{}) Resource {
	return &Repo{
		RepoID:        id,
		Name:          payloadString(payload, "name"),
		DefaultBranch: "main",
	}
}

// Branch represents a git branch (a heads/* ref). Branches are read-only from
// the state store's point of view and never tracked.
type Branch struct {
	BranchID    string
	Name        string
	IsMain      bool
	IsProtected bool
	IsDeleted   bool
}

// ResourceKind implements Resource.
func (b *Branch) ResourceKind() Kind { return KindBranch }

// StateFields implements Resource.
func (b *Branch) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"branch_id":    b.BranchID,
		"name":         b.Name,
		"is_main":      b.IsMain,
		"is_protected": b.IsProtected,
		"is_deleted":   b.IsDeleted,
	}
}

func branchFromPayload(data []byte) (Resource, error) {
	var wire struct {
		ObjectID    string `json:"objectId"`
		Name        string `json:"name"`
		IsMain      bool   `json:"isMain"`
		IsProtected bool   `json:"isProtected"`
		IsDeleted   bool   `json:"isDeleted"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing branch payload: %w", err)
	}

	return &Branch{
		BranchID:    wire.ObjectID,
		Name:        strings.TrimPrefix(wire.Name, "refs/heads/"),
		IsMain:      wire.IsMain,
		IsProtected: wire.IsProtected,
		IsDeleted:   wire.IsDeleted,
	}, nil
}

func branchFromState(state map[string]interface{}) (Resource, error) {
	isMain, err := stateBool(state, "is_main")
	if err != nil {
		return nil, err
	}

	isProtected, err := stateBool(state, "is_protected")
	if err != nil {
		return nil, err
	}

	isDeleted, err := stateBool(state, "is_deleted")
	if err != nil {
		return nil, err
	}

	return &Branch{
		BranchID:    stateString(state, "branch_id"),
		Name:        stateString(state, "name"),
		IsMain:      isMain,
		IsProtected: isProtected,
		IsDeleted:   isDeleted,
	}, nil
}

// Commit represents a single git commit.
type Commit struct {
	CommitID string
	Author   *Member
	Date     time.Time
	Message  string
}

// ResourceKind implements Resource.
func (c *Commit) ResourceKind() Kind { return KindCommit }

// StateFields implements Resource.
func (c *Commit) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"commit_id": c.CommitID,
		"author":    c.Author,
		"date":      c.Date,
		"message":   c.Message,
	}
}

func commitFromPayload(data []byte) (Resource, error) {
	var wire struct {
		CommitID string `json:"commitId"`
		Author   struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
		Comment string `json:"comment"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing commit payload: %w", err)
	}

	return &Commit{
		CommitID: wire.CommitID,
		Author:   &Member{Name: wire.Author.Name, Email: wire.Author.Email},
		Date:     wire.Author.Date,
		Message:  wire.Comment,
	}, nil
}

func commitFromState(state map[string]interface{}) (Resource, error) {
	date, err := stateTime(state, "date")
	if err != nil {
		return nil, err
	}

	return &Commit{
		CommitID: stateString(state, "commit_id"),
		Author:   stateMember(state, "author"),
		Date:     date,
		Message:  stateString(state, "message"),
	}, nil
}

// PullRequest represents a pull request.
type PullRequest struct {
	PullRequestID string
	RepoID        string
	Title         string
	Description   string
	SourceBranch  string
	TargetBranch  string
	Status        string
	Author        *Member
	CreationDate  time.Time
	IsDraft       bool
}

// ResourceKind implements Resource.
func (p *PullRequest) ResourceKind() Kind { return KindPullRequest }

// StateFields implements Resource.
func (p *PullRequest) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"pull_request_id": p.PullRequestID,
		"repo_id":         p.RepoID,
		"title":           p.Title,
		"description":     p.Description,
		"source_branch":   p.SourceBranch,
		"target_branch":   p.TargetBranch,
		"status":          p.Status,
		"author":          p.Author,
		"creation_date":   p.CreationDate,
		"is_draft":        p.IsDraft,
	}
}

func pullRequestFromPayload(data []byte) (Resource, error) {
	var wire struct {
		PullRequestID json.Number `json:"pullRequestId"`
		Repository    struct {
			ID string `json:"id"`
		} `json:"repository"`
		Title         string     `json:"title"`
		Description   string     `json:"description"`
		SourceRefName string     `json:"sourceRefName"`
		TargetRefName string     `json:"targetRefName"`
		MergeStatus   string     `json:"mergeStatus"`
		Status        string     `json:"status"`
		CreatedBy     memberWire `json:"createdBy"`
		CreationDate  time.Time  `json:"creationDate"`
		IsDraft       bool       `json:"isDraft"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing pull request payload: %w", err)
	}

	return &PullRequest{
		PullRequestID: wire.PullRequestID.String(),
		RepoID:        wire.Repository.ID,
		Title:         wire.Title,
		Description:   wire.Description,
		SourceBranch:  strings.TrimPrefix(wire.SourceRefName, "refs/heads/"),
		TargetBranch:  strings.TrimPrefix(wire.TargetRefName, "refs/heads/"),
		Status:        wire.Status,
		Author:        wire.CreatedBy.toMember(),
		CreationDate:  wire.CreationDate,
		IsDraft:       wire.IsDraft,
	}, nil
}

func pullRequestFromState(state map[string]interface{}) (Resource, error) {
	creationDate, err := stateTime(state, "creation_date")
	if err != nil {
		return nil, err
	}

	isDraft, err := stateBool(state, "is_draft")
	if err != nil {
		return nil, err
	}

	return &PullRequest{
		PullRequestID: stateString(state, "pull_request_id"),
		RepoID:        stateString(state, "repo_id"),
		Title:         stateString(state, "title"),
		Description:   stateString(state, "description"),
		SourceBranch:  stateString(state, "source_branch"),
		TargetBranch:  stateString(state, "target_branch"),
		Status:        stateString(state, "status"),
		Author:        stateMember(state, "author"),
		CreationDate:  creationDate,
		IsDraft:       isDraft,
	}, nil
}

func pullRequestApply(resource Resource, field string, value interface{}) (Resource, error) {
	pullRequest := *resource.(*PullRequest)

	var err error

	switch field {
	case "title":
		err = applyString(&pullRequest.Title, field, value)
	case "description":
		err = applyString(&pullRequest.Description, field, value)
	case "status":
		err = applyString(&pullRequest.Status, field, value)
	case "is_draft":
		err = applyBool(&pullRequest.IsDraft, field, value)
	default:
		return nil, fmt.Errorf("pull request has no editable field %q", field)
	}

	if err != nil {
		return nil, err
	}

	return &pullRequest, nil
}

func pullRequestPlaceholder(id string, payload map[string]interface{}) Resource {
	return &PullRequest{
		PullRequestID: id,
		Title:         payloadString(payload, "title"),
		Description:   payloadString(payload, "description"),
		SourceBranch:  strings.TrimPrefix(payloadString(payload, "sourceRefName"), "refs/heads/"),
		TargetBranch:  strings.TrimPrefix(payloadString(payload, "targetRefName"), "refs/heads/"),
		Status:        "active",
	}
}

// Project represents a project within the organization.
type Project struct {
	ProjectID      string
	Name           string
	Description    string
	LastUpdateTime *time.Time
}

// ResourceKind implements Resource.
func (p *Project) ResourceKind() Kind { return KindProject }

// StateFields implements Resource.
func (p *Project) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"project_id":       p.ProjectID,
		"name":             p.Name,
		"description":      p.Description,
		"last_update_time": p.LastUpdateTime,
	}
}

func projectFromPayload(data []byte) (Resource, error) {
	var wire struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		Description    string     `json:"description"`
		LastUpdateTime *time.Time `json:"lastUpdateTime"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing project payload: %w", err)
	}

	return &Project{
		ProjectID:      wire.ID,
		Name:           wire.Name,
		Description:    wire.Description,
		LastUpdateTime: wire.LastUpdateTime,
	}, nil
}

func projectFromState(state map[string]interface{}) (Resource, error) {
	lastUpdate, err := stateTimePtr(state, "last_update_time")
	if err != nil {
		return nil, err
	}

	return &Project{
		ProjectID:      stateString(state, "project_id"),
		Name:           stateString(state, "name"),
		Description:    stateString(state, "description"),
		LastUpdateTime: lastUpdate,
	}, nil
}

// Team represents a team within a project.
type Team struct {
	TeamID      string
	Name        string
	Description string
}

// ResourceKind implements Resource.
func (t *Team) ResourceKind() Kind { return KindTeam }

// StateFields implements Resource.
func (t *Team) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"team_id":     t.TeamID,
		"name":        t.Name,
		"description": t.Description,
	}
}

func teamFromPayload(data []byte) (Resource, error) {
	var wire struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing team payload: %w", err)
	}

	return &Team{TeamID: wire.ID, Name: wire.Name, Description: wire.Description}, nil
}

func teamFromState(state map[string]interface{}) (Resource, error) {
	return &Team{
		TeamID:      stateString(state, "team_id"),
		Name:        stateString(state, "name"),
		Description: stateString(state, "description"),
	}, nil
}

func teamApply(resource Resource, field string, value interface{}) (Resource, error) {
	team := *resource.(*Team)

	var err error

	switch field {
	case "name":
		err = applyString(&team.Name, field, value)
	case "description":
		err = applyString(&team.Description, field, value)
	default:
		return nil, fmt.Errorf("team has no editable field %q", field)
	}

	if err != nil {
		return nil, err
	}

	return &team, nil
}

func teamPlaceholder(id string, payload map[string]interface{}) Resource {
	return &Team{
		TeamID:      id,
		Name:        payloadString(payload, "name"),
		Description: payloadString(payload, "description"),
	}
}

// Environment represents a pipeline deployment environment.
type Environment struct {
	EnvironmentID string
	Name          string
	Description   string
	CreatedBy     *Member
	CreatedOn     time.Time
	ModifiedBy    *Member
	ModifiedOn    *time.Time
}

// ResourceKind implements Resource.
func (e *Environment) ResourceKind() Kind { return KindEnvironment }

// StateFields implements Resource.
func (e *Environment) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"environment_id": e.EnvironmentID,
		"name":           e.Name,
		"description":    e.Description,
		"created_by":     e.CreatedBy,
		"created_on":     e.CreatedOn,
		"modified_by":    e.ModifiedBy,
		"modified_on":    e.ModifiedOn,
	}
}

func environmentFromPayload(data []byte) (Resource, error) {
	var wire struct {
		ID          json.Number `json:"id"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		CreatedBy   *memberWire `json:"createdBy"`
		CreatedOn   time.Time   `json:"createdOn"`
		ModifiedBy  *memberWire `json:"modifiedBy"`
		ModifiedOn  *time.Time  `json:"modifiedOn"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing environment payload: %w", err)
	}

	environment := &Environment{
		EnvironmentID: wire.ID.String(),
		Name:          wire.Name,
		Description:   wire.Description,
		CreatedOn:     wire.CreatedOn,
		ModifiedOn:    wire.ModifiedOn,
	}

	if wire.CreatedBy != nil {
		environment.CreatedBy = wire.CreatedBy.toMember()
	}

	if wire.ModifiedBy != nil {
		environment.ModifiedBy = wire.ModifiedBy.toMember()
	}

	return environment, nil
}

func environmentFromState(state map[string]interface{}) (Resource, error) {
	createdOn, err := stateTime(state, "created_on")
	if err != nil {
		return nil, err
	}

	modifiedOn, err := stateTimePtr(state, "modified_on")
	if err != nil {
		return nil, err
	}

	return &Environment{
		EnvironmentID: stateString(state, "environment_id"),
		Name:          stateString(state, "name"),
		Description:   stateString(state, "description"),
		CreatedBy:     stateMember(state, "created_by"),
		CreatedOn:     createdOn,
		ModifiedBy:    stateMember(state, "modified_by"),
		ModifiedOn:    modifiedOn,
	}, nil
}

func environmentApply(resource Resource, field string, value interface{}) (Resource, error) {
	environment := *resource.(*Environment)

	var err error

	switch field {
	case "name":
		err = applyString(&environment.Name, field, value)
	case "description":
		err = applyString(&environment.Description, field, value)
	default:
		return nil, fmt.Errorf("environment has no editable field %q", field)
	}

	if err != nil {
		return nil, err
	}

	return &environment, nil
}

func environmentPlaceholder(id string, payload map[string]interface{}) Resource {
	return &Environment{
		EnvironmentID: id,
		Name:          payloadString(payload, "name"),
		Description:   payloadString(payload, "description"),
	}
}

// ServiceEndpoint represents a service connection.
type ServiceEndpoint struct {
	ServiceEndpointID string
	Name              string
	Type              string
	URL               string
	Description       string
	Owner             string
	IsShared          bool
	Data              map[string]string
}

// ResourceKind implements Resource.
func (s *ServiceEndpoint) ResourceKind() Kind { return KindServiceEndpoint }

// StateFields implements Resource.
func (s *ServiceEndpoint) StateFields() map[string]interface{} {
	return map[string]interface{}{
		"service_endpoint_id": s.ServiceEndpointID,
		"name":                s.Name,
		"type":                s.Type,
		"url":                 s.URL,
		"description":         s.Description,
		"owner":               s.Owner,
		"is_shared":           s.IsShared,
		"data":                s.Data,
	}
}

func serviceEndpointFromPayload(data []byte) (Resource, error) {
	var wire struct {
		ID          string            `json:"id"`
		Name        string            `json:"name"`
		Type        string            `json:"type"`
		URL         string            `json:"url"`
		Description string            `json:"description"`
		Owner       string            `json:"owner"`
		IsShared    bool              `json:"isShared"`
		Data        map[string]string `json:"data"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("parsing service endpoint payload: %w", err)
	}

	return &ServiceEndpoint{
		ServiceEndpointID: wire.ID,
		Name:              wire.Name,
		Type:              wire.Type,
		URL:               wire.URL,
		Description:       wire.Description,
		Owner:             wire.Owner,
		IsShared:          wire.IsShared,
		Data:              wire.Data,
	}, nil
}

func serviceEndpointFromState(state map[string]interface{}) (Resource, error) {
	isShared, err := stateBool(state, "is_shared")
	if err != nil {
		return nil, err
	}

	return &ServiceEndpoint{
		ServiceEndpointID: stateString(state, "service_endpoint_id"),
		Name:              stateString(state, "name"),
		Type:              stateString(state, "type"),
		URL:               stateString(state, "url"),
		Description:       stateString(state, "description"),
		Owner:             stateString(state, "owner"),
		IsShared:          isShared,
		Data:              stateStringMap(state, "data"),
	}, nil
}

func serviceEndpointApply(resource Resource, field string, value interface{}) (Resource, error) {
	endpoint := *resource.(*ServiceEndpoint)

	var err error

	switch field {
	case "name":
		err = applyString(&endpoint.Name, field, value)
	case "description":
		err = applyString(&endpoint.Description, field, value)
	default:
		return nil, fmt.Errorf("service endpoint has no editable field %q", field)
	}

	if err != nil {
		return nil, err
	}

	return &endpoint, nil
}

func serviceEndpointPlaceholder(id string, payload map[string]interface{}) Resource {
	return &ServiceEndpoint{
		ServiceEndpointID: id,
		Name:              payloadString(payload, "name"),
		Type:              payloadString(payload, "type"),
		URL:               payloadString(payload, "url"),
		Description:       payloadString(payload, "description"),
		Owner:             "Library",
	}
}

// AuditLog is one entry from the organization audit log. Audit logs are
// read-only and never state-tracked, so the wire shape maps straight onto the
// struct.
type AuditLog struct {
	AuditLogID       string    `json:"id"`
	CorrelationID    string    `json:"correlationId"`
	ActorUPN         string    `json:"actorUPN"`
	ActorDisplayName string    `json:"actorDisplayName"`
	Timestamp        time.Time `json:"timestamp"`
	ScopeType        string    `json:"scopeType"`
	ScopeDisplay     string    `json:"scopeDisplayName"`
	ProjectID        string    `json:"projectId"`
	ProjectName      string    `json:"projectName"`
	IPAddress        string    `json:"ipAddress"`
	UserAgent        string    `json:"userAgent"`
	ActionID         string    `json:"actionId"`
	Details          string    `json:"details"`
	Area             string    `json:"area"`
	Category         string    `json:"category"`
}

// CodeSearchResult is one file hit returned by a code search.
type CodeSearchResult struct {
	RepositoryName string
	RepositoryID   string
	ProjectName    string
	Path           string
	FileName       string
	BranchName     string
	Matches        []CodeSearchHit
}

// CodeSearchHit is a single match inside a file.
type CodeSearchHit struct {
	CharOffset  int    `json:"charOffset"`
	Length      int    `json:"length"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	CodeSnippet string `json:"codeSnippet"`
	Type        string `json:"type"`
}

//nolint:gochecknoinits // the registry must hold every known type before any decode
func init() {
	MustRegister(&Descriptor{
		Kind: KindMember,
		Schema: Schema{
			IDField: "member_id",
			Fields: []FieldSpec{
				{Name: "member_id"},
				{Name: "name", WireName: "displayName"},
				{Name: "email", WireName: "uniqueName"},
			},
		},
		FromPayload: memberFromPayload,
		FromState:   memberFromState,
	})

	MustRegister(&Descriptor{
		Kind: KindRepo,
		Schema: Schema{
			IDField: "repo_id",
			Fields: []FieldSpec{
				{Name: "repo_id"},
				{Name: "name", Editable: true},
				{Name: "default_branch", WireName: "defaultBranch", Editable: true},
				{Name: "is_disabled", WireName: "isDisabled", Editable: true},
			},
		},
		FromPayload: repoFromPayload,
		FromState:   repoFromState,
		Apply:       repoApply,
		Placeholder: repoPlaceholder,
	})

	MustRegister(&Descriptor{
		Kind: KindBranch,
		Schema: Schema{
			IDField: "branch_id",
			Fields: []FieldSpec{
				{Name: "branch_id"},
				{Name: "name"},
				{Name: "is_main", WireName: "isMain"},
				{Name: "is_protected", WireName: "isProtected"},
				{Name: "is_deleted", WireName: "isDeleted"},
			},
		},
		FromPayload: branchFromPayload,
		FromState:   branchFromState,
	})

	MustRegister(&Descriptor{
		Kind: KindCommit,
		Schema: Schema{
			IDField: "commit_id",
			Fields: []FieldSpec{
				{Name: "commit_id"},
				{Name: "author"},
				{Name: "date"},
				{Name: "message", WireName: "comment"},
			},
		},
		FromPayload: commitFromPayload,
		FromState:   commitFromState,
	})

	MustRegister(&Descriptor{
		Kind: KindPullRequest,
		Schema: Schema{
			IDField: "pull_request_id",
			Fields: []FieldSpec{
				{Name: "pull_request_id"},
				{Name: "repo_id"},
				{Name: "title", Editable: true},
				{Name: "description", Editable: true},
				{Name: "status", Editable: true},
				{Name: "is_draft", WireName: "isDraft", Editable: true},
				{Name: "source_branch", WireName: "sourceRefName"},
				{Name: "target_branch", WireName: "targetRefName"},
				{Name: "author"},
				{Name: "creation_date"},
			},
		},
		FromPayload: pullRequestFromPayload,
		FromState:   pullRequestFromState,
		Apply:       pullRequestApply,
		Placeholder: pullRequestPlaceholder,
	})

	MustRegister(&Descriptor{
		Kind: KindProject,
		Schema: Schema{
			IDField: "project_id",
			Fields: []FieldSpec{
				{Name: "project_id"},
				{Name: "name"},
				{Name: "description"},
				{Name: "last_update_time"},
			},
		},
		FromPayload: projectFromPayload,
		FromState:   projectFromState,
	})

	MustRegister(&Descriptor{
		Kind: KindTeam,
		Schema: Schema{
			IDField: "team_id",
			Fields: []FieldSpec{
				{Name: "team_id"},
				{Name: "name", Editable: true},
				{Name: "description", Editable: true},
			},
		},
		FromPayload: teamFromPayload,
		FromState:   teamFromState,
		Apply:       teamApply,
		Placeholder: teamPlaceholder,
	})

	MustRegister(&Descriptor{
		Kind: KindEnvironment,
		Schema: Schema{
			IDField: "environment_id",
			Fields: []FieldSpec{
				{Name: "environment_id"},
				{Name: "name", Editable: true},
				{Name: "description", Editable: true},
				{Name: "created_by"},
				{Name: "created_on"},
				{Name: "modified_by"},
				{Name: "modified_on"},
			},
		},
		FromPayload: environmentFromPayload,
		FromState:   environmentFromState,
		Apply:       environmentApply,
		Placeholder: environmentPlaceholder,
	})

	MustRegister(&Descriptor{
		Kind: KindServiceEndpoint,
		Schema: Schema{
			IDField: "service_endpoint_id",
			Fields: []FieldSpec{
				{Name: "service_endpoint_id"},
				{Name: "name", Editable: true},
				{Name: "description", Editable: true},
				{Name: "type"},
				{Name: "url"},
				{Name: "owner"},
				{Name: "is_shared", WireName: "isShared"},
				{Name: "data"},
			},
		},
		FromPayload: serviceEndpointFromPayload,
		FromState:   serviceEndpointFromState,
		Apply:       serviceEndpointApply,
		Placeholder: serviceEndpointPlaceholder,
	})
}

// State-tree accessors used by the FromState constructors. The decoded tree
// holds strings for scalars, time.Time for datetime-tagged keys and Resource
// values for nested resources.

func stateString(state map[string]interface{}, key string) string {
	value, _ := state[key].(string)

	return value
}

func stateBool(state map[string]interface{}, key string) (bool, error) {
	value, ok := state[key]
	if !ok || value == nil {
		return false, nil
	}

	text, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("field %q holds %T, want a boolean string", key, value)
	}

	parsed, err := strconv.ParseBool(strings.ToLower(text))
	if err != nil {
		return false, fmt.Errorf("parsing boolean field %q: %w", key, err)
	}

	return parsed, nil
}

func stateTime(state map[string]interface{}, key string) (time.Time, error) {
	value, ok := state[key]
	if !ok || value == nil {
		return time.Time{}, nil
	}

	parsed, ok := value.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q holds %T, want a timestamp", key, value)
	}

	return parsed, nil
}

func stateTimePtr(state map[string]interface{}, key string) (*time.Time, error) {
	value, ok := state[key]
	if !ok || value == nil {
		return nil, nil
	}

	parsed, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("field %q holds %T, want a timestamp", key, value)
	}

	return &parsed, nil
}

func stateMember(state map[string]interface{}, key string) *Member {
	member, _ := state[key].(*Member)

	return member
}

func stateStringMap(state map[string]interface{}, key string) map[string]string {
	raw, ok := state[key].(map[string]interface{})
	if !ok {
		return nil
	}

	converted := make(map[string]string, len(raw))

	for mapKey, mapValue := range raw {
		text, _ := mapValue.(string)
		converted[mapKey] = text
	}

	return converted
}

func payloadString(payload map[string]interface{}, key string) string {
	value, _ := payload[key].(string)

	return value
}

// Coercions used by the Apply functions: update values arrive as interface{}
// from the caller.

func applyString(target *string, field string, value interface{}) error {
	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("field %q wants a string, got %T", field, value)
	}

	*target = text

	return nil
}

func applyBool(target *bool, field string, value interface{}) error {
	switch typed := value.(type) {
	case bool:
		*target = typed

		return nil
	case string:
		parsed, err := strconv.ParseBool(typed)
		if err != nil {
			return fmt.Errorf("field %q wants a boolean: %w", field, err)
		}

		*target = parsed

		return nil
	default:
		return fmt.Errorf("field %q wants a boolean, got %T", field, value)
	}
}
