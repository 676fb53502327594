package ops

import (
	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// createSequence and createMapping build straight from args.Items/Pairs.
// An empty collection is not special-cased into a hand-rolled sentinel:
// the spec's SEQ_EMPTY/MAP_EMPTY sharing is a consequence of the
// builder's own content-addressed dedup arena (builder.WithDedup), which
// already returns the same Ref for any two identical zero-item stores.
// A builder constructed without dedup gets a fresh empty collection per
// call, which is still correct (Compare and Validate treat them as
// equal-shaped), just not bit-identical; see DESIGN.md.
func createSequence(b *builder.Builder, args Args) value.V {
	return b.Sequence(args.Items)
}

func createMapping(b *builder.Builder, args Args) value.V {
	return b.Mapping(args.Items)
}
