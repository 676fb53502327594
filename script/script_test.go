package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/script"
	"github.com/macropower/vtree/value"
)

func TestLoadAndRunPipeline(t *testing.T) {
	doc, err := script.LoadDocument([]byte(`
steps:
  - op: create_seq
    as: base
    args:
      items: [1, 2, 3]
  - op: append
    in: base
    args:
      items: [4, 5]
`))
	require.NoError(t, err)
	require.Len(t, doc.Steps, 2)

	b := builder.New()
	p := script.NewPipeline()

	result, err := p.Run(b, doc, value.Invalid)
	require.NoError(t, err)

	items := b.SequenceItems(result)
	require.Len(t, items, 5)
	assert.Equal(t, int64(5), b.Int64(items[4]))
}

func TestPipelineWithRegisteredPredicate(t *testing.T) {
	doc := script.Document{
		Steps: []script.Step{
			{Op: "filter", Args: script.StepArgs{Predicate: "even"}},
		},
	}

	reg := script.NewRegistry()
	reg.RegisterPredicate("even", func(b *builder.Builder) func(value.V) bool {
		return func(v value.V) bool { return b.Int64(v)%2 == 0 }
	})

	b := builder.New()
	input := b.Sequence([]value.V{b.Int(1), b.Int(2), b.Int(3), b.Int(4)})

	p := script.NewPipeline(script.WithRegistry(reg))

	result, err := p.Run(b, doc, input)
	require.NoError(t, err)

	items := b.SequenceItems(result)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), b.Int64(items[0]))
	assert.Equal(t, int64(4), b.Int64(items[1]))
}

func TestValidateRejectsUnknownOp(t *testing.T) {
	p := script.NewPipeline()
	doc := script.Document{Steps: []script.Step{{Op: "not_a_real_op"}}}

	assert.Error(t, p.Validate(doc))
}

func TestValidateRejectsUndefinedReference(t *testing.T) {
	p := script.NewPipeline()
	doc := script.Document{Steps: []script.Step{{Op: "reverse", In: "missing"}}}

	assert.Error(t, p.Validate(doc))
}

func TestParseStepAppliesNamedSchema(t *testing.T) {
	doc := script.Document{
		Steps: []script.Step{
			// Under yaml12-core, "on" is a plain string, not bool true
			// (a YAML 1.1-ism). A json schema would also decode it as a
			// string, so this only distinguishes schema wiring from the
			// zero value if the Builder's own default isn't core already.
			{Op: "parse", Args: script.StepArgs{Str: "on", Schema: "yaml12-core"}},
		},
	}

	b := builder.New(builder.WithSchema(builder.SchemaYAML11))
	p := script.NewPipeline()

	result, err := p.Run(b, doc, value.Invalid)
	require.NoError(t, err)
	assert.True(t, result.IsString(), "yaml12-core must not fold bare \"on\" into a bool")
	assert.Equal(t, "on", b.Str(result))
}

func TestUnknownSchemaNameRejected(t *testing.T) {
	doc := script.Document{
		Steps: []script.Step{
			{Op: "parse", Args: script.StepArgs{Str: "1", Schema: "not-a-real-schema"}},
		},
	}

	b := builder.New()
	p := script.NewPipeline()

	_, err := p.Run(b, doc, value.Invalid)
	assert.Error(t, err)
}

func TestSchemaDescribesStepsArray(t *testing.T) {
	s := script.Schema()
	require.NotNil(t, s)
	assert.Contains(t, s.Properties, "steps")
}
