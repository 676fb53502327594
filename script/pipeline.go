package script

import (
	"fmt"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/ops"
	"github.com/macropower/vtree/pool"
	"github.com/macropower/vtree/value"
	"github.com/macropower/vtree/yamlio"
)

// Pipeline runs a Document's steps against a Builder, resolving each
// step's callback-by-name references through Registry and its
// parallel fan-out through Pool, the same "Generator holds its
// collaborators, Generate walks the input" shape as
// magicschema.Generator.Generate.
type Pipeline struct {
	registry *Registry
	pool     pool.Pool
	parser   yamlio.Parser
	decoder  yamlio.Decoder
	emitter  yamlio.Emitter
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegistry sets the callback registry steps reference by name. The
// default is a fresh NewRegistry.
func WithRegistry(r *Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithPool sets the worker pool PARALLEL-flagged steps fan out through.
func WithPool(pl pool.Pool) Option {
	return func(p *Pipeline) { p.pool = pl }
}

// WithYAMLIO overrides the Parser/Decoder/Emitter PARSE/EMIT steps use.
// A nil argument leaves that collaborator at its default.
func WithYAMLIO(p2 yamlio.Parser, d yamlio.Decoder, e yamlio.Emitter) Option {
	return func(p *Pipeline) {
		if p2 != nil {
			p.parser = p2
		}

		if d != nil {
			p.decoder = d
		}

		if e != nil {
			p.emitter = e
		}
	}
}

// NewPipeline creates a Pipeline with the given options.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{registry: NewRegistry()}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Validate structurally checks doc: every step's Op and Flags names are
// known, every "in"/"as" reference resolves to either "$input" or an
// earlier step's own As. It does not touch a Builder or run anything.
func (p *Pipeline) Validate(doc Document) error {
	seen := map[string]bool{}

	for i, step := range doc.Steps {
		if _, err := opFromName(step.Op); err != nil {
			return fmt.Errorf("script: step %d: %w", i, err)
		}

		if _, err := flagsFromNames(step.Flags); err != nil {
			return fmt.Errorf("script: step %d: %w", i, err)
		}

		if step.In != "" && step.In != "$input" && !seen[step.In] {
			return fmt.Errorf("script: step %d: %q references an undefined step", i, step.In)
		}

		if step.As != "" {
			seen[step.As] = true
		}
	}

	return nil
}

// Run executes doc's steps in order against input, threading each
// step's result forward as the next step's default In and recording any
// named (As) result for later reference. It returns the final step's
// result, or Invalid with an error the moment any step itself returns
// Invalid (matching ops.Dispatch's own failure convention, surfaced here
// as a real error since a malformed document is a caller mistake, not a
// runtime data condition).
func (p *Pipeline) Run(b *builder.Builder, doc Document, input value.V) (value.V, error) {
	if err := p.Validate(doc); err != nil {
		return value.Invalid, err
	}

	results := make(map[string]value.V, len(doc.Steps))
	cur := input

	for i, step := range doc.Steps {
		in := cur

		switch {
		case step.In == "$input":
			in = input
		case step.In != "":
			in = results[step.In]
		}

		op, err := opFromName(step.Op)
		if err != nil {
			return value.Invalid, err
		}

		flags, err := flagsFromNames(step.Flags)
		if err != nil {
			return value.Invalid, err
		}

		args, err := p.buildArgs(b, step.Args)
		if err != nil {
			return value.Invalid, fmt.Errorf("script: step %d: %w", i, err)
		}

		// A step-level schema runs the step on a child Builder that shares
		// b's arena, so the scalar decoder reads that schema and the
		// result stays addressable through b.
		sb := b
		if step.Args.Schema != "" && args.ParseOptions.Schema != b.Schema() {
			sb = builder.NewScoped(b, builder.WithSchema(args.ParseOptions.Schema))
		}

		result := ops.Dispatch(sb, op, flags, in, args)
		if result.IsInvalid() {
			return value.Invalid, fmt.Errorf("script: step %d (%s) produced an invalid result", i, step.Op)
		}

		if step.As != "" {
			results[step.As] = result
		}

		cur = result
	}

	return cur, nil
}

func (p *Pipeline) buildArgs(b *builder.Builder, sa StepArgs) (ops.Args, error) {
	args := ops.Args{
		Bool:     sa.Bool,
		Int:      sa.Int,
		Uint:     sa.Uint,
		Unsigned: sa.Unsigned,
		Float:    sa.Float,
		Str:      sa.Str,
		Items:    decodeLiterals(b, sa.Items),
		Index:    sa.Index,
		Count:    sa.Count,
		Key:      decodeLiteral(b, sa.Key),
		Value:    decodeLiteral(b, sa.Value),
		Path:     decodeLiterals(b, sa.Path),
		Seed:     decodeLiteral(b, sa.Seed),
		Pool:     p.pool,
		Parser:   p.parser,
		Decoder:  p.decoder,
		Emitter:  p.emitter,
	}

	if sa.Predicate != "" {
		f, ok := p.registry.Predicates[sa.Predicate]
		if !ok {
			return ops.Args{}, &unknownNameError{kind: "predicate", name: sa.Predicate}
		}

		args.Predicate = f(b)
	}

	if sa.Transform != "" {
		f, ok := p.registry.Transforms[sa.Transform]
		if !ok {
			return ops.Args{}, &unknownNameError{kind: "transform", name: sa.Transform}
		}

		args.Transform = f(b)
	}

	if sa.Reducer != "" {
		f, ok := p.registry.Reducers[sa.Reducer]
		if !ok {
			return ops.Args{}, &unknownNameError{kind: "reducer", name: sa.Reducer}
		}

		args.Reducer = f(b)
	}

	if sa.MultiDocument {
		args.ParseOptions.MultiDocument = true
	}

	if sa.EmitMode == "json" {
		args.EmitOptions.Mode = yamlio.ModeJSON
	}

	if sa.Schema != "" {
		schema, ok := schemaFromName(sa.Schema)
		if !ok {
			return ops.Args{}, fmt.Errorf("script: unknown schema %q", sa.Schema)
		}

		args.ParseOptions.Schema = schema
		args.EmitOptions.Schema = schema
	}

	return args, nil
}

// schemaFromName maps a Document's Args.schema string to the
// builder.Schema it names, for PARSE and EMIT steps. The names mirror
// builder.Schema's own constant names, lowercased and hyphenated.
func schemaFromName(name string) (builder.Schema, bool) {
	switch name {
	case "auto":
		return builder.SchemaAuto, true
	case "yaml11":
		return builder.SchemaYAML11, true
	case "yaml12-failsafe":
		return builder.SchemaYAML12Failsafe, true
	case "yaml12-core":
		return builder.SchemaYAML12Core, true
	case "yaml12-json":
		return builder.SchemaYAML12JSON, true
	case "json":
		return builder.SchemaJSON, true
	default:
		return builder.SchemaAuto, false
	}
}
