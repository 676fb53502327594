package builder

import (
	"github.com/macropower/vtree/arena"
	"github.com/macropower/vtree/value"
)

// Schema selects the scalar decoding and presentation rules a Builder's
// factories and consumers (the scalar decoder) apply. It does not change how
// value.V is encoded; it only changes how text turns into a V and back.
type Schema uint8

const (
	SchemaAuto Schema = iota
	SchemaYAML11
	SchemaYAML12Failsafe
	SchemaYAML12Core
	SchemaYAML12JSON
	SchemaJSON
)

// Builder owns an allocator and, transitively through a parent chain,
// authority over every Ref it or its ancestors have ever minted. It is the
// single type through which value.V handles are created, validated, and
// exported.
//
// The zero value is not usable; construct one with New.
type Builder struct {
	alloc         *arena.Arena
	parent        *Builder
	schema        Schema
	ownsAllocator bool
	scopeLeader   bool
	createdTag    bool
	tag           arena.Tag
}

// Option configures a Builder at construction time.
type Option func(*builderConfig)

type builderConfig struct {
	alloc       *arena.Arena
	parent      *Builder
	schema      Schema
	wantDedup   bool
	scopeLeader bool
}

// WithSchema sets the scalar schema a Builder's consumers should apply.
// SchemaAuto is the default.
func WithSchema(s Schema) Option {
	return func(c *builderConfig) { c.schema = s }
}

// WithDedup requests that New create its own deduplicating arena, instead
// of the default linear one. It has no effect if WithAllocator is also
// given, since then the Builder does not own (and so cannot choose the
// flavor of) its allocator.
func WithDedup() Option {
	return func(c *builderConfig) { c.wantDedup = true }
}

// WithAllocator shares an existing arena instead of creating one. The
// resulting Builder does not own the allocator: Destroy will not reclaim
// it.
func WithAllocator(a *arena.Arena) Option {
	return func(c *builderConfig) { c.alloc = a }
}

// WithParent chains the new Builder to parent. Values the new Builder
// cannot satisfy from its own allocator (e.g. during Contains or Compare)
// are resolved by walking up this chain, and Export copies a value out to
// the parent of the nearest scope leader in this chain (see AsScopeLeader).
func WithParent(p *Builder) Option {
	return func(c *builderConfig) {
		c.parent = p
		c.schema = p.schema
	}
}

// AsScopeLeader marks the new Builder as the root of a nested-scope usage
// pattern: a short-lived computation that will Export its result into a
// parent before being discarded. It does not change how the Builder
// allocates or what Destroy releases; it marks the Builder whose parent
// Export copies into.
func AsScopeLeader() Option {
	return func(c *builderConfig) { c.scopeLeader = true }
}

// New constructs a Builder per the given options. With no options it owns
// a fresh linear arena under SchemaAuto.
func New(opts ...Option) *Builder {
	cfg := &builderConfig{}
	for _, o := range opts {
		o(cfg)
	}

	b := &Builder{
		parent:      cfg.parent,
		schema:      cfg.schema,
		scopeLeader: cfg.scopeLeader,
	}

	if cfg.alloc != nil {
		b.alloc = cfg.alloc
		b.ownsAllocator = false
	} else {
		if cfg.wantDedup {
			b.alloc = arena.NewDedup()
		} else {
			b.alloc = arena.New()
		}

		b.ownsAllocator = true
	}

	return b
}

// NewScoped creates a child Builder that shares parent's allocator but
// acquires its own arena tag, so that Destroy can bulk-reclaim everything
// the child allocated without disturbing anything the parent (or a
// sibling scope) holds.
func NewScoped(parent *Builder, opts ...Option) *Builder {
	opts = append([]Option{WithAllocator(parent.alloc), WithParent(parent), AsScopeLeader()}, opts...)
	b := New(opts...)
	b.createdTag = true
	b.tag = parent.alloc.TagAcquire()

	return b
}

// Destroy releases resources this Builder owns: its own arena tag scope
// (if NewScoped created one) or, for a root Builder that owns its
// allocator outright, nothing further — the allocator is left for the
// garbage collector once unreferenced. It never touches a shared
// allocator it does not own.
func (b *Builder) Destroy() {
	if b.createdTag {
		b.alloc.TagRelease(b.tag)
	}
}

// Schema returns the scalar schema this Builder's consumers should apply.
func (b *Builder) Schema() Schema { return b.schema }

// OwnsAllocator reports whether this Builder created the arena it uses,
// as opposed to sharing one passed in via WithAllocator.
func (b *Builder) OwnsAllocator() bool { return b.ownsAllocator }

// ScopeLeader reports whether this Builder was constructed as the root of
// a nested usage scope.
func (b *Builder) ScopeLeader() bool { return b.scopeLeader }

// DedupChain reports whether this Builder and every ancestor in its
// parent chain share a deduplicating arena. It is informational: Compare
// and Internalize do not consult it and always walk structure.
func (b *Builder) DedupChain() bool {
	for cur := b; cur != nil; cur = cur.parent {
		if !cur.alloc.DedupEnabled() {
			return false
		}
	}

	return true
}

// resolveArena walks this Builder's parent chain looking for the arena
// that minted ref.
func (b *Builder) resolveArena(ref arena.Ref) *arena.Arena {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.alloc.Contains(ref) {
			return cur.alloc
		}
	}

	return nil
}

func refOf(v value.V) arena.Ref {
	return arena.Ref(v.Payload())
}

func withRef(v value.V, ref arena.Ref) value.V {
	return value.V(uint64(ref)<<4 | uint64(v.Tag()))
}

// Contains reports whether v is addressable by this Builder: either an
// immediate value (always contained, since it carries no reference) or an
// out-of-place value whose Ref resolves within this Builder's own
// allocator or one of its ancestors'.
func (b *Builder) Contains(v value.V) bool {
	if v.IsImmediate() {
		return true
	}

	return b.resolveArena(refOf(v)) != nil
}

// TypeOf returns v's Kind, resolving the KindAlias/KindMapping ambiguity
// that a bare TagIndirect cannot express on its own.
func (b *Builder) TypeOf(v value.V) value.Kind {
	if v.Tag() != value.TagIndirect {
		return value.KindOfTag(v.Tag())
	}

	flags, val, _, _ := b.readIndirect(v)
	if flags&indirectHasValue == 0 {
		return value.KindAlias
	}

	return b.TypeOf(val)
}

// readIndirect decodes the flags byte and present fields of an indirect
// value. Any field not present in flags is returned as value.Invalid.
func (b *Builder) readIndirect(v value.V) (flags byte, val, anchor, tag value.V) {
	a := b.resolveArena(refOf(v))
	if a == nil {
		return 0, value.Invalid, value.Invalid, value.Invalid
	}

	ref := refOf(v)
	flags = a.ByteAt(ref)

	n := 1
	val, anchor, tag = value.Invalid, value.Invalid, value.Invalid

	if flags&indirectHasValue != 0 {
		val = decodeV(a.Load(shiftRef(ref, n), 8))
		n += 8
	}

	if flags&indirectHasAnchor != 0 {
		anchor = decodeV(a.Load(shiftRef(ref, n), 8))
		n += 8
	}

	if flags&indirectHasTag != 0 {
		tag = decodeV(a.Load(shiftRef(ref, n), 8))
	}

	return flags, val, anchor, tag
}

func shiftRef(ref arena.Ref, n int) arena.Ref {
	return arena.Pack(ref.ID(), ref.Offset()+uint64(n))
}

// Internalize copies v into this Builder's allocator if it is not already
// contained by it, recursing into sequences, mappings, and indirects so
// that the entire subtree ends up owned (directly or via an ancestor)
// by this Builder. Already-contained values, and all immediates, are
// returned unchanged. Failure (e.g. v is foreign and this Builder's own
// allocator is full) returns value.Invalid.
func (b *Builder) Internalize(v value.V) value.V {
	if v.IsInvalid() {
		return value.Invalid
	}

	if b.Contains(v) {
		return v
	}

	switch v.Tag() {
	case value.TagOOLInt:
		bits, unsigned := b.readOOLInt(v)

		return b.packOOLInt(bits, unsigned)
	case value.TagOOLFloat:
		return b.packOOLFloat(b.readOOLFloat(v))
	case value.TagOOLString:
		return b.packOOLString(b.readOOLStringBytes(v))
	case value.TagSequence:
		items := b.readSequence(v)
		for i, it := range items {
			items[i] = b.Internalize(it)
			if items[i].IsInvalid() && !it.IsInvalid() {
				return value.Invalid
			}
		}

		return b.Sequence(items)
	case value.TagMapping:
		pairs := b.readMapping(v)
		for i, it := range pairs {
			pairs[i] = b.Internalize(it)
			if pairs[i].IsInvalid() && !it.IsInvalid() {
				return value.Invalid
			}
		}

		return b.Mapping(pairs)
	case value.TagIndirect:
		_, val, anchor, tag := b.readIndirect(v)

		return b.Indirect(b.Internalize(val), b.Internalize(anchor), b.Internalize(tag))
	default:
		return value.Invalid
	}
}

// Validate reports whether v is contained by this Builder and structurally
// sound: collections do not contain Invalid, and an indirect's anchor (if
// present) is a string. It returns v unchanged on success, Invalid
// otherwise.
func (b *Builder) Validate(v value.V) value.V {
	if v.IsInvalid() || !b.Contains(v) {
		return value.Invalid
	}

	switch v.Tag() {
	case value.TagSequence:
		for _, it := range b.readSequence(v) {
			if it.IsInvalid() || b.Validate(it).IsInvalid() {
				return value.Invalid
			}
		}
	case value.TagMapping:
		for _, it := range b.readMapping(v) {
			if it.IsInvalid() || b.Validate(it).IsInvalid() {
				return value.Invalid
			}
		}
	case value.TagIndirect:
		_, val, anchor, tag := b.readIndirect(v)
		if !anchor.IsInvalid() && !anchor.IsString() {
			return value.Invalid
		}

		if !val.IsInvalid() && b.Validate(val).IsInvalid() {
			return value.Invalid
		}

		if !tag.IsInvalid() && b.Validate(tag).IsInvalid() {
			return value.Invalid
		}
	}

	return v
}

// Export copies v into the parent of b's nearest scope-leader (walking up
// from b itself, which may be the scope leader). It is Internalize run
// against that specific target rather than "whichever allocator already
// holds it", for the common case of a scoped child Builder publishing its
// result into the parent it will shortly Destroy itself under.
//
// Export refuses and returns value.Invalid if no scope-leader parent is
// reachable: either b's chain has no scope leader at all, or the nearest
// scope leader has no parent to export into.
func (b *Builder) Export(v value.V) value.V {
	leader := b.scopeLeaderAncestor()
	if leader == nil || leader.parent == nil {
		return value.Invalid
	}

	return leader.parent.Internalize(v)
}

// scopeLeaderAncestor returns the nearest Builder in b's own chain (b
// itself or an ancestor) marked AsScopeLeader, or nil if none is.
func (b *Builder) scopeLeaderAncestor() *Builder {
	for cur := b; cur != nil; cur = cur.parent {
		if cur.scopeLeader {
			return cur
		}
	}

	return nil
}
