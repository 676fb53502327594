package builder

import (
	"github.com/macropower/vtree/arena"
	"github.com/macropower/vtree/value"
)

// RelocateRoot rewrites every out-of-place V reachable from root so that
// Refs minted under the arena identity `from` instead carry `to`,
// patching the arena bytes in place as it walks.
//
// This only makes sense as a pre-publication fixup: a value graph just
// reconstituted from a persisted snapshot, whose arena was given a new
// in-process ID (ID is a process-local counter, not something a snapshot
// can serialize and expect to match on reload) and has not yet been
// exposed through a Builder's normal handle-sharing API. It is not a
// mutation of an already-published value, which the rest of this package
// never permits: by the time a value graph is reachable from anywhere
// else, its Refs are expected to be stable.
//
// A Ref already carrying `to` (rather than `from`) is left untouched:
// structure sharing under a deduplicating arena means the same payload
// can be reached by more than one path, and the second visit must not
// re-patch what the first already fixed up.
func RelocateRoot(a *arena.Arena, root value.V, from, to arena.ID) value.V {
	visited := make(map[arena.Ref]bool)

	return relocateValue(a, root, from, to, visited)
}

func relocateValue(a *arena.Arena, v value.V, from, to arena.ID, visited map[arena.Ref]bool) value.V {
	if v.IsImmediate() {
		return v
	}

	ref := refOf(v)
	if ref.ID() == to || ref.ID() != from {
		return v
	}

	newRef := arena.Pack(to, ref.Offset())

	if visited[ref] {
		return withRef(v, newRef)
	}

	visited[ref] = true

	switch v.Tag() {
	case value.TagSequence, value.TagMapping:
		n := decodeU64(a.Load(ref, 8))
		if v.Tag() == value.TagMapping {
			n *= 2
		}

		for i := uint64(0); i < n; i++ {
			itemRef := shiftRef(ref, 8+int(i)*8)
			item := decodeV(a.Load(itemRef, 8))
			relocated := relocateValue(a, item, from, to, visited)
			copy(a.Load(itemRef, 8), encodeV(relocated))
		}
	case value.TagIndirect:
		flags := a.ByteAt(ref)
		off := 1

		for _, bit := range []byte{indirectHasValue, indirectHasAnchor, indirectHasTag} {
			if flags&bit == 0 {
				continue
			}

			fieldRef := shiftRef(ref, off)
			field := decodeV(a.Load(fieldRef, 8))
			relocated := relocateValue(a, field, from, to, visited)
			copy(a.Load(fieldRef, 8), encodeV(relocated))
			off += 8
		}
	}

	return withRef(v, newRef)
}
