package azdo

import (
	"fmt"
	"sort"
)

// Kind identifies a resource type. Every resource the library knows about has
// exactly one Kind, and the Kind is the top-level key used for that resource in
// the state file.
type Kind string

// Known resource kinds.
const (
	KindMember          Kind = "Member"
	KindRepo            Kind = "Repo"
	KindBranch          Kind = "Branch"
	KindCommit          Kind = "Commit"
	KindPullRequest     Kind = "PullRequest"
	KindProject         Kind = "Project"
	KindTeam            Kind = "Team"
	KindEnvironment     Kind = "Environment"
	KindServiceEndpoint Kind = "ServiceEndpoint"

	// KindAuditLog identifies audit log entries in errors. Audit logs are
	// read-only and never enter the state store, so the kind has no
	// registered descriptor.
	KindAuditLog Kind = "AuditLog"
)

// Resource is implemented by every typed entity backed by a remote API
// endpoint. StateFields exposes the resource's fields by their local names so
// the state codec can walk them without reflection.
type Resource interface {
	ResourceKind() Kind
	StateFields() map[string]interface{}
}

// FieldSpec describes a single declared field of a resource.
type FieldSpec struct {
	// Name is the local field name, as used in StateFields and Apply.
	Name string
	// WireName is the name the remote API uses for this field. Empty means
	// the wire name equals Name.
	WireName string
	// Editable marks fields that may be changed through Update calls.
	Editable bool
}

// Schema is the static field-metadata table for a resource type: which field
// is the server-assigned identifier and which fields are editable under what
// wire names. It is derivable without an instance, so update requests can be
// validated before any network call.
type Schema struct {
	IDField string
	Fields  []FieldSpec
}

// EditableFields returns a mapping from editable local field names to their
// wire names.
func (s *Schema) EditableFields() map[string]string {
	editable := make(map[string]string)

	for _, field := range s.Fields {
		if !field.Editable {
			continue
		}

		wireName := field.WireName
		if wireName == "" {
			wireName = field.Name
		}

		editable[field.Name] = wireName
	}

	return editable
}

// EditableNames returns the sorted local names of all editable fields.
func (s *Schema) EditableNames() []string {
	names := make([]string, 0, len(s.Fields))

	for _, field := range s.Fields {
		if field.Editable {
			names = append(names, field.Name)
		}
	}

	sort.Strings(names)

	return names
}

// Descriptor bundles everything the generic lifecycle engine and the state
// codec need to know about one resource type.
type Descriptor struct {
	Kind   Kind
	Schema Schema

	// FromPayload constructs a resource from the remote API's JSON response
	// shape. This is a different schema from the state codec's: the wire shape
	// belongs to the remote API, the state shape to this library.
	FromPayload func(data []byte) (Resource, error)

	// FromState constructs a resource from a decoded state tree. The tree has
	// plain strings for scalars, time.Time values for datetime-tagged keys and
	// Resource values for nested resources.
	FromState func(state map[string]interface{}) (Resource, error)

	// Apply returns a copy of r with the named field set to value. It never
	// mutates r in place.
	Apply func(r Resource, field string, value interface{}) (Resource, error)

	// Placeholder builds a resource-shaped stand-in for dry-run creates. The
	// id is synthetic and carries no meaning to the remote system. Nil for
	// resource types that cannot be created.
	Placeholder func(id string, payload map[string]interface{}) Resource
}

// ID extracts the identifier of r using the schema's ID field.
func (d *Descriptor) ID(r Resource) string {
	value, ok := r.StateFields()[d.Schema.IDField]
	if !ok {
		return ""
	}

	s, _ := value.(string)

	return s
}

var registry = map[Kind]*Descriptor{}

// MustRegister adds a descriptor to the process-wide registry. It panics when
// the descriptor has no identifier field or the kind is already registered,
// since both are configuration errors rather than runtime conditions.
func MustRegister(desc *Descriptor) {
	if desc.Schema.IDField == "" {
		panic(fmt.Sprintf("azdo: descriptor for %q has no identifier field", desc.Kind))
	}

	if _, exists := registry[desc.Kind]; exists {
		panic(fmt.Sprintf("azdo: descriptor for %q registered twice", desc.Kind))
	}

	registry[desc.Kind] = desc
}

// DescriptorFor looks up the descriptor for a kind.
func DescriptorFor(kind Kind) (*Descriptor, bool) {
	desc, ok := registry[kind]

	return desc, ok
}

// Kinds returns all registered kinds in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}
