package azdo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azdokit/azdo-client/pkg/azdo"
)

func TestSchema_EditableFields(t *testing.T) {
	t.Parallel()

	schema := azdo.Schema{
		IDField: "widget_id",
		Fields: []azdo.FieldSpec{
			{Name: "widget_id"},
			{Name: "name", Editable: true},
			{Name: "is_hidden", WireName: "isHidden", Editable: true},
			{Name: "created_on"},
		},
	}

	assert.Equal(t, map[string]string{
		"name":      "name",
		"is_hidden": "isHidden",
	}, schema.EditableFields())

	assert.Equal(t, []string{"is_hidden", "name"}, schema.EditableNames())
}

func TestMustRegister(t *testing.T) {
	t.Parallel()
	t.Run("rejects descriptors without an identifier field", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			azdo.MustRegister(&azdo.Descriptor{Kind: "Widget"})
		})
	})

	t.Run("rejects duplicate kinds", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			azdo.MustRegister(&azdo.Descriptor{
				Kind:   azdo.KindRepo,
				Schema: azdo.Schema{IDField: "repo_id"},
			})
		})
	})
}

func TestDescriptorFor(t *testing.T) {
	t.Parallel()

	desc, ok := azdo.DescriptorFor(azdo.KindRepo)
	require.True(t, ok)
	assert.Equal(t, azdo.KindRepo, desc.Kind)
	assert.Equal(t, "repo_id", desc.Schema.IDField)

	_, ok = azdo.DescriptorFor("Widget")
	assert.False(t, ok)
}

func TestDescriptor_ID(t *testing.T) {
	t.Parallel()

	desc, ok := azdo.DescriptorFor(azdo.KindRepo)
	require.True(t, ok)

	assert.Equal(t, "r-1", desc.ID(&azdo.Repo{RepoID: "r-1"}))
}

func TestKinds(t *testing.T) {
	t.Parallel()

	kinds := azdo.Kinds()
	assert.Contains(t, kinds, azdo.KindRepo)
	assert.Contains(t, kinds, azdo.KindEnvironment)
	assert.IsIncreasing(t, kinds)
}

func TestDescriptor_Apply_ReturnsNewValue(t *testing.T) {
	t.Parallel()

	desc, ok := azdo.DescriptorFor(azdo.KindRepo)
	require.True(t, ok)

	original := &azdo.Repo{RepoID: "r-1", Name: "infra", DefaultBranch: "main"}

	updated, err := desc.Apply(original, "name", "platform")
	require.NoError(t, err)

	assert.Equal(t, "platform", updated.(*azdo.Repo).Name)
	assert.Equal(t, "infra", original.Name, "Apply must not mutate its input")
}
