package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// refetchFunc re-reads a freshly created resource by id, for endpoints whose
// create response is known to be incomplete.
type refetchFunc func(ctx context.Context, id string) (azdo.Resource, error)

// engine is the generic resource lifecycle: every resource client is a thin
// caller into one of these with a resource-specific URL and payload shape.
// Two implementations exist, selected at client construction: liveEngine
// executes against the remote API, planEngine stages mutations for preview.
type engine interface {
	fetchOne(ctx context.Context, desc *azdo.Descriptor, rawURL string) (azdo.Resource, error)
	fetchAll(ctx context.Context, desc *azdo.Descriptor, rawURL string) ([]azdo.Resource, error)
	create(ctx context.Context, desc *azdo.Descriptor, rawURL string, payload map[string]interface{}, refetch refetchFunc) (azdo.Resource, error)
	update(ctx context.Context, desc *azdo.Descriptor, resource azdo.Resource, method, rawURL, field string, value interface{}, params map[string]interface{}) (azdo.Resource, error)
	remove(ctx context.Context, desc *azdo.Descriptor, rawURL, id string) error
}

// liveEngine executes operations against the remote API and mirrors every
// successful mutation into the state store.
type liveEngine struct {
	session azdo.Session
	state   *azdo.StateStore
	logger  azdo.Logger
}

func (e *liveEngine) fetchOne(ctx context.Context, desc *azdo.Descriptor, rawURL string) (azdo.Resource, error) {
	resp, err := e.session.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", desc.Kind, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &azdo.NotFoundError{Kind: desc.Kind}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &azdo.RequestError{Kind: desc.Kind, Operation: "getting", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	payload, err := unwrapValue(desc, resp.Body)
	if err != nil {
		return nil, err
	}

	resource, err := desc.FromPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("mapping %s payload: %w", desc.Kind, err)
	}

	return resource, nil
}

func (e *liveEngine) fetchAll(ctx context.Context, desc *azdo.Descriptor, rawURL string) ([]azdo.Resource, error) {
	resp, err := e.session.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", desc.Kind, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &azdo.RequestError{Kind: desc.Kind, Operation: "listing", StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var envelope struct {
		Value []json.RawMessage `json:"value"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", desc.Kind, err)
	}

	resources := make([]azdo.Resource, 0, len(envelope.Value))

	for _, item := range envelope.Value {
		resource, err := desc.FromPayload(item)
		if err != nil {
			return nil, fmt.Errorf("mapping %s payload: %w", desc.Kind, err)
		}

		resources = append(resources, resource)
	}

	return resources, nil
}

func (e *liveEngine) create(ctx context.Context, desc *azdo.Descriptor, rawURL string, payload map[string]interface{}, refetch refetchFunc) (azdo.Resource, error) {
	if payload == nil {
		payload = map[string]interface{}{}
	}

	resp, err := e.session.Post(ctx, rawURL, payload)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", desc.Kind, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, &azdo.PermissionError{Kind: desc.Kind, StatusCode: resp.StatusCode, Body: string(resp.Body)}
		case http.StatusConflict:
			return nil, &azdo.AlreadyExistsError{Kind: desc.Kind}
		default:
			return nil, &azdo.RequestError{Kind: desc.Kind, Operation: "creating", StatusCode: resp.StatusCode, Body: string(resp.Body)}
		}
	}

	resource, err := desc.FromPayload(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mapping %s payload: %w", desc.Kind, err)
	}

	if refetch != nil {
		resource, err = refetch(ctx, desc.ID(resource))
		if err != nil {
			return nil, fmt.Errorf("refetching created %s: %w", desc.Kind, err)
		}
	}

	err = e.track(desc, resource)
	if err != nil {
		return nil, err
	}

	return resource, nil
}

func (e *liveEngine) update(ctx context.Context, desc *azdo.Descriptor, resource azdo.Resource, method, rawURL, field string, value interface{}, params map[string]interface{}) (azdo.Resource, error) {
	body, err := wireBody(desc, field, value, params)
	if err != nil {
		return nil, err
	}

	resp, err := e.request(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", desc.Kind, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &azdo.UpdateFailedError{Kind: desc.Kind, ID: desc.ID(resource), Field: field, Body: string(resp.Body)}
	}

	applied, err := desc.Apply(resource, field, value)
	if err != nil {
		return nil, fmt.Errorf("applying %s update: %w", desc.Kind, err)
	}

	err = e.track(desc, applied)
	if err != nil {
		return nil, err
	}

	return applied, nil
}

func (e *liveEngine) remove(ctx context.Context, desc *azdo.Descriptor, rawURL, id string) error {
	resp, err := e.session.Delete(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", desc.Kind, err)
	}

	if resp.StatusCode != http.StatusNoContent {
		// 404 means the resource is already gone, so the delete is complete
		// for our purposes. Some APIs answer 404 for permission problems too;
		// that ambiguity is accepted here.
		if resp.StatusCode != http.StatusNotFound {
			return &azdo.DeletionFailedError{Kind: desc.Kind, ID: id, Body: deletionMessage(resp.Body)}
		}

		e.logger.Warn("resource not found, probably already deleted, removing from state", map[string]interface{}{
			"kind": string(desc.Kind),
			"id":   id,
		})
	}

	err = e.state.Remove(desc.Kind, id)
	if err != nil {
		return fmt.Errorf("removing %s %s from state: %w", desc.Kind, id, err)
	}

	return nil
}

func (e *liveEngine) request(ctx context.Context, method, rawURL string, body interface{}) (*azdo.HTTPResponse, error) {
	switch method {
	case http.MethodPut:
		return e.session.Put(ctx, rawURL, body)
	case http.MethodPatch:
		return e.session.Patch(ctx, rawURL, body)
	default:
		return nil, fmt.Errorf("unsupported update method %q", method)
	}
}

// track serializes a resource into the state store under its kind and id.
func (e *liveEngine) track(desc *azdo.Descriptor, resource azdo.Resource) error {
	encoded, err := azdo.EncodeState(resource)
	if err != nil {
		return fmt.Errorf("serializing %s state: %w", desc.Kind, err)
	}

	err = e.state.Upsert(desc.Kind, desc.ID(resource), encoded)
	if err != nil {
		return fmt.Errorf("recording %s state: %w", desc.Kind, err)
	}

	return nil
}

// wireBody validates that field is editable for this resource type and merges
// its wire-named value into params. Validation happens before any network
// call.
func wireBody(desc *azdo.Descriptor, field string, value interface{}, params map[string]interface{}) (map[string]interface{}, error) {
	editable := desc.Schema.EditableFields()

	wireName, ok := editable[field]
	if !ok {
		return nil, &azdo.InvalidAttributeError{Kind: desc.Kind, Field: field, ValidNames: desc.Schema.EditableNames()}
	}

	body := make(map[string]interface{}, len(params)+1)
	for key, paramValue := range params {
		body[key] = paramValue
	}

	body[wireName] = value

	return body, nil
}

// unwrapValue extracts the payload from a fetch response: a body shaped as
// {"value": [...]} yields its first element, anything else is the payload
// itself.
func unwrapValue(desc *azdo.Descriptor, body []byte) ([]byte, error) {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(body, &fields)
	if err != nil {
		return body, nil
	}

	raw, ok := fields["value"]
	if !ok {
		return body, nil
	}

	var items []json.RawMessage

	err = json.Unmarshal(raw, &items)
	if err != nil {
		return body, nil
	}

	if len(items) == 0 {
		return nil, &azdo.NotFoundError{Kind: desc.Kind}
	}

	return items[0], nil
}

// deletionMessage prefers the API's structured message over the raw body.
func deletionMessage(body []byte) string {
	var wire struct {
		Message string `json:"message"`
	}

	if json.Unmarshal(body, &wire) == nil && wire.Message != "" {
		return wire.Message
	}

	return string(body)
}

// first returns the first element matching the predicate. No match is not an
// error at this layer.
func first[T any](items []T, predicate func(T) bool) (T, bool) {
	for _, item := range items {
		if predicate(item) {
			return item, true
		}
	}

	var zero T

	return zero, false
}
