package azdo

import (
	"context"
	"net/url"
	"time"
)

// Config holds configuration for creating a client.
type Config struct {
	// Organization is the Azure DevOps organization name.
	Organization string
	// Project is the default project operated on.
	Project string

	// Username and PersonalAccessToken authenticate requests via basic auth.
	Username            string
	PersonalAccessToken string

	// BaseURL overrides the default https://dev.azure.com endpoint.
	BaseURL string

	// StateFile is the path of the persisted state file. Empty keeps state in
	// memory only.
	StateFile string

	// DryRun diverts every create and update into the plan list instead of
	// executing it.
	DryRun bool

	// HTTPTimeout bounds each request. Zero means the transport default.
	HTTPTimeout time.Duration

	// Retry configuration for transient transport failures.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	UserAgent string
	Debug     bool
	Logger    Logger
}

// Logger interface for client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// HTTPResponse is the transport-level result handed back to the lifecycle
// engine. Non-success statuses are not errors at this layer; classifying
// them is the engine's job.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

// Session is the injected request-capable collaborator. Implementations carry
// their own authentication; the engine never constructs auth itself. Relative
// paths are resolved against the session's base URL, fully-qualified URLs pass
// through untouched.
type Session interface {
	Get(ctx context.Context, rawURL string, query url.Values) (*HTTPResponse, error)
	Post(ctx context.Context, rawURL string, body interface{}) (*HTTPResponse, error)
	Put(ctx context.Context, rawURL string, body interface{}) (*HTTPResponse, error)
	Patch(ctx context.Context, rawURL string, body interface{}) (*HTTPResponse, error)
	Delete(ctx context.Context, rawURL string) (*HTTPResponse, error)
}
