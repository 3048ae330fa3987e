package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

// planEngine is the dry-run implementation of the lifecycle engine. Reads
// pass through to the live engine; creates and updates are recorded as
// planned changes and never reach the network or the state store. Deletes are
// not intercepted, matching the behavior this library has always had.
type planEngine struct {
	live    *liveEngine
	changes []azdo.PlannedChange
}

func (e *planEngine) fetchOne(ctx context.Context, desc *azdo.Descriptor, rawURL string) (azdo.Resource, error) {
	return e.live.fetchOne(ctx, desc, rawURL)
}

func (e *planEngine) fetchAll(ctx context.Context, desc *azdo.Descriptor, rawURL string) ([]azdo.Resource, error) {
	return e.live.fetchAll(ctx, desc, rawURL)
}

func (e *planEngine) create(_ context.Context, desc *azdo.Descriptor, rawURL string, payload map[string]interface{}, _ refetchFunc) (azdo.Resource, error) {
	if desc.Placeholder == nil {
		return nil, fmt.Errorf("%s: %w", desc.Kind, azdo.ErrNoPlaceholder)
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}

	e.changes = append(e.changes, azdo.PlannedChange{
		Kind:      desc.Kind,
		Operation: azdo.PlanCreate,
		URL:       rawURL,
		Payload:   payload,
	})

	return desc.Placeholder("plan-"+uuid.NewString(), payload), nil
}

func (e *planEngine) update(_ context.Context, desc *azdo.Descriptor, resource azdo.Resource, _, rawURL, field string, value interface{}, params map[string]interface{}) (azdo.Resource, error) {
	// Editable-field validation applies in dry-run mode too.
	body, err := wireBody(desc, field, value, params)
	if err != nil {
		return nil, err
	}

	before, err := azdo.EncodeState(resource)
	if err != nil {
		return nil, fmt.Errorf("serializing %s state: %w", desc.Kind, err)
	}

	e.changes = append(e.changes, azdo.PlannedChange{
		Kind:      desc.Kind,
		Operation: azdo.PlanUpdate,
		URL:       rawURL,
		Before:    before,
		Payload:   body,
	})

	applied, err := desc.Apply(resource, field, value)
	if err != nil {
		return nil, fmt.Errorf("applying %s update: %w", desc.Kind, err)
	}

	return applied, nil
}

func (e *planEngine) remove(ctx context.Context, desc *azdo.Descriptor, rawURL, id string) error {
	return e.live.remove(ctx, desc, rawURL, id)
}
