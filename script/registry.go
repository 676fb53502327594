package script

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// PredicateFactory, TransformFactory, and ReducerFactory build a callback
// bound to a specific run's Builder, the same "construct a fresh
// instance per use" shape magicschema.Config.Registry uses for its
// map[string]func() Annotator entries.
type (
	PredicateFactory func(b *builder.Builder) func(value.V) bool
	TransformFactory func(b *builder.Builder) func(value.V) value.V
	ReducerFactory   func(b *builder.Builder) func(acc, v value.V) value.V
)

// Registry names the callbacks a Document's FILTER/MAP/MAP_FILTER/REDUCE
// steps may reference by name, since a script document has no way to
// embed executable code directly.
type Registry struct {
	Predicates map[string]PredicateFactory
	Transforms map[string]TransformFactory
	Reducers   map[string]ReducerFactory
}

// NewRegistry returns a Registry seeded with the small set of callbacks
// generic enough to be useful in any pipeline without a caller having to
// register anything: the "non-null" predicate, the "identity" transform,
// and the "count" reducer.
func NewRegistry() *Registry {
	r := &Registry{
		Predicates: map[string]PredicateFactory{},
		Transforms: map[string]TransformFactory{},
		Reducers:   map[string]ReducerFactory{},
	}

	r.Predicates["non-null"] = func(b *builder.Builder) func(value.V) bool {
		return func(v value.V) bool { return b.TypeOf(v) != value.KindNull }
	}

	r.Transforms["identity"] = func(*builder.Builder) func(value.V) value.V {
		return func(v value.V) value.V { return v }
	}

	r.Reducers["count"] = func(b *builder.Builder) func(acc, v value.V) value.V {
		return func(acc, _ value.V) value.V { return b.Int(b.Int64(acc) + 1) }
	}

	return r
}

// RegisterPredicate, RegisterTransform, and RegisterReducer add or
// overwrite a named callback factory.
func (r *Registry) RegisterPredicate(name string, f PredicateFactory) { r.Predicates[name] = f }
func (r *Registry) RegisterTransform(name string, f TransformFactory) { r.Transforms[name] = f }
func (r *Registry) RegisterReducer(name string, f ReducerFactory)     { r.Reducers[name] = f }
