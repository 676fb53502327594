// Package arena implements the bump-allocated storage backing out-of-line
// value payloads: out-of-line scalars, sequence and mapping headers, and
// indirect records.
//
// An [Arena] is append-only. [Arena.Store] and [Arena.StoreV] hand back a
// [Ref] — an offset into the arena's own buffer, not a raw pointer — so
// that a V's 60 payload bits can address up to 2^44 bytes of a given arena
// while still fitting a 16-bit arena identity alongside it. The identity
// lets [Arena.Contains] reject a Ref minted by a different arena even if
// the numeric offset would otherwise be in range, which a real tagged
// pointer gets for free from the address space and an offset scheme does
// not.
//
// Two flavors share this type: a linear arena never deduplicates content,
// while a deduplicating arena maintains a content-addressed index so that
// [Arena.Lookup] can return an existing Ref for identical (alignment,
// bytes) input instead of growing the buffer.
package arena
