package azdo

// PlanOperation names the mutating intent a planned change records.
type PlanOperation string

// Plan operations.
const (
	PlanCreate PlanOperation = "create"
	PlanUpdate PlanOperation = "update"
)

// PlannedChange is a staged mutation recorded instead of executed while the
// client runs in dry-run mode. It exists only for preview: planned changes are
// never applied and never reach the state store.
type PlannedChange struct {
	Kind      Kind
	Operation PlanOperation
	URL       string

	// Before is the encoded state of the resource prior to an update. Nil for
	// creates.
	Before map[string]interface{}

	// Payload is the body the live engine would have sent.
	Payload map[string]interface{}
}
