package builder

import (
	"encoding/binary"
	"math"

	"github.com/macropower/vtree/arena"
	"github.com/macropower/vtree/value"
)

// Byte layouts for out-of-line payloads. None of this is visible outside
// the package; callers only ever see a value.V handle.
//
//	OOL int:     [flag byte: 0 signed, 1 unsigned][8 bytes LE u64], align 8
//	OOL float:   [8 bytes LE float64 bits], align 8
//	OOL string:  [varint length][raw bytes][trailing 0x00], align 1
//	Sequence:    [8 bytes LE count][count * 8-byte V words], align 8
//	Mapping:     [8 bytes LE pair count][2*count * 8-byte V words], align 8
//	Indirect:    [flags byte][present V words in value,anchor,tag order], align 8

const (
	indirectHasValue  = 1 << 0
	indirectHasAnchor = 1 << 1
	indirectHasTag    = 1 << 2
)

func encodeV(v value.V) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))

	return b
}

func decodeV(b []byte) value.V {
	return value.V(binary.LittleEndian.Uint64(b))
}

func encodeU64(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)

	return b
}

func decodeU64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

func encodeOOLInt(bits uint64, unsigned bool) []byte {
	b := make([]byte, 9)
	if unsigned {
		b[0] = 1
	}

	binary.LittleEndian.PutUint64(b[1:], bits)

	return b
}

func decodeOOLInt(b []byte) (bits uint64, unsigned bool) {
	return binary.LittleEndian.Uint64(b[1:]), b[0] != 0
}

func encodeOOLFloat(f float64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(f))

	return b
}

func decodeOOLFloat(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func encodeOOLString(s []byte) []byte {
	lenBuf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lenBuf, uint64(len(s)))

	out := make([]byte, 0, n+len(s)+1)
	out = append(out, lenBuf[:n]...)
	out = append(out, s...)
	out = append(out, 0)

	return out
}

// decodeOOLString reads the varint-prefixed string payload starting at
// ref within a. It needs the arena directly because the total on-disk size
// is not known until the varint header itself has been read.
func decodeOOLString(a *arena.Arena, ref arena.Ref) []byte {
	// A varint is at most binary.MaxVarintLen64 bytes; peek that much (or
	// whatever the arena has left) to decode the length header.
	peek := a.Load(ref, minInt(binary.MaxVarintLen64, remaining(a, ref)))

	n, hdrLen := binary.Uvarint(peek)

	full := a.Load(ref, hdrLen+int(n)+1)

	return full[hdrLen : hdrLen+int(n)]
}

func remaining(a *arena.Arena, ref arena.Ref) int {
	return a.Len() - int(ref.Offset())
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
