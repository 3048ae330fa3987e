package azdo

import (
	"errors"
	"fmt"
	"strings"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrOrganizationRequired = errors.New("organization is required")
	ErrProjectRequired      = errors.New("project is required")
	ErrCredentialsRequired  = errors.New("username and personal access token are required")
	ErrNotImplemented       = errors.New("not implemented by the remote API")
	ErrNoPlaceholder        = errors.New("resource type cannot be created in dry-run mode")
)

// NotFoundError is returned when a fetch targets a remote id that does not
// exist.
type NotFoundError struct {
	Kind Kind

	// Detail overrides the generic message when the missing thing is more
	// specific than a resource id, such as a file path inside a repository.
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}

	return fmt.Sprintf("no %s found with that identifier", e.Kind)
}

// RequestError is the catch-all for non-success responses that have no more
// specific classification. It always carries the response body.
type RequestError struct {
	Kind       Kind
	Operation  string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("error %s %s: %d - %s", e.Operation, e.Kind, e.StatusCode, e.Body)
}

// PermissionError is returned for 401/403 responses on mutating calls.
type PermissionError struct {
	Kind       Kind
	StatusCode int
	Body       string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("no permission to modify %s (status %d): %s", e.Kind, e.StatusCode, e.Body)
}

// AlreadyExistsError is returned for 409 responses on create.
type AlreadyExistsError struct {
	Kind Kind
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("a %s with that identifier already exists", e.Kind)
}

// UpdateFailedError is returned when an update call receives a non-success
// status that is not otherwise classified.
type UpdateFailedError struct {
	Kind  Kind
	ID    string
	Field string
	Body  string
}

func (e *UpdateFailedError) Error() string {
	return fmt.Sprintf("failed to update %s %s field %s: %s", e.Kind, e.ID, e.Field, e.Body)
}

// DeletionFailedError is returned when a delete call receives a status other
// than 204 or 404.
type DeletionFailedError struct {
	Kind Kind
	ID   string
	Body string
}

func (e *DeletionFailedError) Error() string {
	return fmt.Sprintf("failed to delete %s %s: %s", e.Kind, e.ID, e.Body)
}

// InvalidAttributeError is a local validation failure: an update was requested
// for a field that is not declared editable. It is raised before any network
// call.
type InvalidAttributeError struct {
	Kind       Kind
	Field      string
	ValidNames []string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("the attribute %q of %s is not editable, editable attributes are: %s",
		e.Field, e.Kind, strings.Join(e.ValidNames, ", "))
}

// DecodeError is returned when the state codec encounters an unknown type
// marker or a resource cannot be reconstructed from its state tree.
type DecodeError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding %s state: %s: %v", e.Kind, e.Detail, e.Err)
	}

	return fmt.Sprintf("decoding %s state: %s", e.Kind, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}

	return errors.As(err, &notFound)
}

// IsPermissionDenied checks if the error is a permission error.
func IsPermissionDenied(err error) bool {
	permission := &PermissionError{}

	return errors.As(err, &permission)
}

// IsAlreadyExists checks if the error is an already-exists error.
func IsAlreadyExists(err error) bool {
	alreadyExists := &AlreadyExistsError{}

	return errors.As(err, &alreadyExists)
}

// IsInvalidAttribute checks if the error is an invalid-attribute error.
func IsInvalidAttribute(err error) bool {
	invalid := &InvalidAttributeError{}

	return errors.As(err, &invalid)
}
