package arena

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Errors returned by Store, StoreV, and the tag-scope operations. These are
// the arena-level half of the spec's "construction failure" error kind;
// the builder above us turns them into an Invalid value rather than
// propagating a Go error into the rest of the core.
var (
	ErrOverflow  = errors.New("arena: allocation exceeds addressable range")
	ErrAlignment = errors.New("arena: invalid alignment")
	ErrForeign   = errors.New("arena: ref belongs to a different arena")
)

const (
	idBits     = 16
	offsetBits = 60 - idBits
	maxOffset  = uint64(1)<<offsetBits - 1
	maxID      = uint64(1)<<idBits - 1
)

// ID identifies a single arena instance. Ref.Contains uses it to reject a
// Ref minted by a different arena, even one with an in-range offset.
type ID uint16

var nextID atomic.Uint64

func allocID() ID {
	n := nextID.Add(1)

	return ID(n & maxID)
}

// Ref is an offset into a specific arena's buffer, tagged with that
// arena's ID. It is the payload carried by every out-of-line V.
type Ref uint64

// Pack combines an arena ID and byte offset into a Ref. It panics if
// offset exceeds the addressable range; callers only construct a Ref from
// a length already bounds-checked by Store/StoreV.
func Pack(id ID, offset uint64) Ref {
	if offset > maxOffset {
		panic("arena: offset exceeds addressable range")
	}

	return Ref(uint64(id)<<offsetBits | offset)
}

// ID returns the arena identity encoded in r.
func (r Ref) ID() ID {
	return ID(uint64(r) >> offsetBits)
}

// Offset returns the byte offset encoded in r.
func (r Ref) Offset() uint64 {
	return uint64(r) & maxOffset
}

// Arena is an append-only bump allocator. The zero value is not usable;
// construct one with New.
type Arena struct {
	id         ID
	buf        []byte
	dedup      map[string]dedupEntry
	dedupOn    bool
	tagStack   []tagMark
}

type dedupEntry struct {
	ref Ref
}

// New creates a linear (non-deduplicating) arena.
func New() *Arena {
	return &Arena{id: allocID()}
}

// NewDedup creates a deduplicating arena: identical (align, bytes) input to
// Store or StoreV returns the same Ref instead of growing the buffer.
func NewDedup() *Arena {
	a := New()
	a.dedupOn = true
	a.dedup = make(map[string]dedupEntry)

	return a
}

// DedupEnabled reports whether a maintains a content-addressed index.
func (a *Arena) DedupEnabled() bool {
	return a.dedupOn
}

// ID returns this arena's identity.
func (a *Arena) ID() ID {
	return a.id
}

// Len returns the number of bytes currently committed to the arena.
func (a *Arena) Len() int {
	return len(a.buf)
}

func dedupKey(align int, parts [][]byte) string {
	total := 1
	for _, p := range parts {
		total += len(p)
	}

	key := make([]byte, 1, total)
	key[0] = byte(align)

	for _, p := range parts {
		key = append(key, p...)
	}

	return string(key)
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}

	rem := n % align
	if rem == 0 {
		return n
	}

	return n + (align - rem)
}

// Lookup returns the Ref of an existing payload with identical alignment
// and bytes, if dedup is enabled and such a payload has already been
// stored. It never allocates.
func (a *Arena) Lookup(bytes []byte, align int) (Ref, bool) {
	return a.LookupV([][]byte{bytes}, align)
}

// LookupV is the gathered form of Lookup.
func (a *Arena) LookupV(parts [][]byte, align int) (Ref, bool) {
	if !a.dedupOn {
		return 0, false
	}

	e, ok := a.dedup[dedupKey(align, parts)]
	if !ok {
		return 0, false
	}

	return e.ref, true
}

// Store appends bytes to the arena at the given alignment and returns its
// Ref. If dedup is enabled and identical content already exists, Store
// returns the existing Ref without growing the buffer.
func (a *Arena) Store(bytes []byte, align int) (Ref, error) {
	return a.StoreV([][]byte{bytes}, align)
}

// StoreV is the gathered form of Store: it concatenates parts into one
// contiguous allocation, as if they had been passed to Store as a single
// buffer. This is the "storev" gather-store of the spec, used to write a
// collection header immediately followed by its items in one allocation.
func (a *Arena) StoreV(parts [][]byte, align int) (Ref, error) {
	if align <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrAlignment, align)
	}

	if ref, ok := a.LookupV(parts, align); ok {
		return ref, nil
	}

	total := 0

	for _, p := range parts {
		if total > (1<<62)-len(p) {
			return 0, ErrOverflow
		}

		total += len(p)
	}

	start := alignUp(len(a.buf), align)
	if uint64(start) > maxOffset || uint64(start+total) > maxOffset+1 {
		return 0, ErrOverflow
	}

	if start > len(a.buf) {
		a.buf = append(a.buf, make([]byte, start-len(a.buf))...)
	}

	for _, p := range parts {
		a.buf = append(a.buf, p...)
	}

	ref := Pack(a.id, uint64(start))

	if a.dedupOn {
		a.dedup[dedupKey(align, parts)] = dedupEntry{ref: ref}
	}

	return ref, nil
}

// Contains reports whether ref was minted by this arena and still
// addresses live data (i.e. it has not been invalidated by Reset or a
// subsequent TagRelease).
func (a *Arena) Contains(ref Ref) bool {
	if ref.ID() != a.id {
		return false
	}

	return ref.Offset() < uint64(len(a.buf))
}

// Load returns the n bytes of live arena memory starting at ref's offset.
// The caller must have validated ref with Contains (or trust that it was
// produced by a Store/StoreV call on this same arena generation).
func (a *Arena) Load(ref Ref, n int) []byte {
	off := ref.Offset()

	return a.buf[off : off+uint64(n)]
}

// ByteAt returns the single byte at ref's offset.
func (a *Arena) ByteAt(ref Ref) byte {
	return a.buf[ref.Offset()]
}

// tagMark captures the arena's extent at the moment a scope tag was
// acquired, so TagRelease can roll back exactly the bytes allocated since.
type tagMark struct {
	offset int
}

// Tag identifies a scoped sub-region previously returned by TagAcquire.
type Tag struct {
	mark tagMark
}

// TagAcquire marks the current end of the arena as the start of a new
// scope. Pair with TagRelease to bulk-reclaim everything allocated within
// the scope without destroying the arena.
func (a *Arena) TagAcquire() Tag {
	t := Tag{mark: tagMark{offset: len(a.buf)}}
	a.tagStack = append(a.tagStack, t.mark)

	return t
}

// TagRelease truncates the arena back to the extent captured by
// TagAcquire, invalidating every Ref minted since. Dedup index entries
// pointing into the released region are dropped so they cannot resurrect
// a dangling Ref.
func (a *Arena) TagRelease(t Tag) {
	a.buf = a.buf[:t.mark.offset]

	if a.dedupOn {
		for k, e := range a.dedup {
			if e.ref.Offset() >= uint64(t.mark.offset) {
				delete(a.dedup, k)
			}
		}
	}

	for i := len(a.tagStack) - 1; i >= 0; i-- {
		if a.tagStack[i] == t.mark {
			a.tagStack = a.tagStack[:i]

			break
		}
	}
}

// Reset discards all arena contents and assigns the arena a fresh identity,
// so that any Ref minted before the reset is unconditionally rejected by
// Contains even if its numeric offset would otherwise fall within the
// shrunk buffer. This is stronger than the spec strictly requires (a
// reused address in the C original is indistinguishable from its prior
// occupant) but costs nothing in the offset-based Go encoding and closes
// off a class of use-after-reset bugs for free.
func (a *Arena) Reset() {
	a.buf = a.buf[:0]
	a.tagStack = a.tagStack[:0]
	a.id = allocID()

	if a.dedupOn {
		a.dedup = make(map[string]dedupEntry)
	}
}
