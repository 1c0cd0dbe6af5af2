package stream

import (
	"encoding/binary"
	"math"
)

// Writer is a stateless, push-based CBOR encoder. Every method emits one
// complete, self-contained item (or, for the Begin*/EndIndefinite family,
// one header or terminator) directly to the OutputStream; the Writer
// itself holds no buffered state and can be constructed fresh for every
// call, or reused arbitrarily, since it has none.
type Writer struct {
	out OutputStream
}

// NewWriter returns a Writer that pushes encoded bytes to out.
func NewWriter(out OutputStream) *Writer { return &Writer{out: out} }

// writeHead emits the shortest well-formed header for major type mt with
// argument u: direct 0-23 encoding when it fits, otherwise the smallest
// of the 1/2/4/8-byte follow-on forms.
func (w *Writer) writeHead(mt uint8, u uint64) {
	switch {
	case u <= addlDirectMax:
		w.out.WriteByte(makeByte(mt, uint8(u)))
	case u <= math.MaxUint8:
		w.out.WriteByte(makeByte(mt, addlUint8))
		w.out.WriteByte(uint8(u))
	case u <= math.MaxUint16:
		w.out.WriteByte(makeByte(mt, addlUint16))
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(u))
		w.out.Write(buf[:])
	case u <= math.MaxUint32:
		w.out.WriteByte(makeByte(mt, addlUint32))
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(u))
		w.out.Write(buf[:])
	default:
		w.out.WriteByte(makeByte(mt, addlUint64))
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], u)
		w.out.Write(buf[:])
	}
}

// WriteUnsigned writes an unsigned integer item (major type 0).
func (w *Writer) WriteUnsigned(u uint64) { w.writeHead(majorUnsignedInt, u) }

// WriteInt writes a signed integer as whichever of major type 0
// (non-negative) or major type 1 (negative, encoded as -1-n) applies,
// using the branchless sign-extension trick from the original
// implementation instead of an `if i < 0` test: shifting i arithmetically
// right by 63 replicates its sign bit across every bit of u, which both
// selects the major type (u & 1) and, via u ^= i, turns i into n =
// -1-i for negative inputs while leaving non-negative inputs unchanged
// (Go's two's-complement ^i == -1-i identity).
func (w *Writer) WriteInt(i int64) {
	u := uint64(i >> 63)
	mt := uint8(u & 1) // majorNegativeInt when i<0, else majorUnsignedInt
	u ^= uint64(i)
	w.writeHead(mt, u)
}

// WriteTag writes a tag header (major type 6); the tagged item itself
// must be written immediately afterward by a separate call.
func (w *Writer) WriteTag(tag uint64) { w.writeHead(majorTag, tag) }

// WriteBoolean writes a boolean simple value.
func (w *Writer) WriteBoolean(v bool) {
	if v {
		w.out.WriteByte(makeByte(majorSimple, simpleTrue))
		return
	}
	w.out.WriteByte(makeByte(majorSimple, simpleFalse))
}

// WriteNull writes the null simple value.
func (w *Writer) WriteNull() { w.out.WriteByte(makeByte(majorSimple, simpleNull)) }

// WriteUndefined writes the undefined simple value.
func (w *Writer) WriteUndefined() { w.out.WriteByte(makeByte(majorSimple, simpleUndefined)) }

// WriteSimple writes an arbitrary simple value 0-255 using the direct
// form for v<24 and the one-byte form otherwise. Like the rest of
// Writer, it enforces no structural rules: passing a value in 24-31
// produces bytes that the Reader and Checker will both reject as
// BadSimpleValue on the way back in, since RFC 8949 reserves that
// one-byte encoding for values 32 and up. That validation belongs to the
// decode side; the Writer never produces errors.
func (w *Writer) WriteSimple(v uint8) {
	if v < addlUint8 {
		w.out.WriteByte(makeByte(majorSimple, v))
		return
	}
	w.out.WriteByte(makeByte(majorSimple, addlUint8))
	w.out.WriteByte(v)
}

// WriteFloat writes a single-precision (32-bit) float item.
func (w *Writer) WriteFloat(f float32) {
	w.out.WriteByte(makeByte(majorSimple, simpleFloat32))
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(f))
	w.out.Write(buf[:])
}

// WriteDouble writes a double-precision (64-bit) float item.
func (w *Writer) WriteDouble(f float64) {
	w.out.WriteByte(makeByte(majorSimple, simpleFloat64))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
	w.out.Write(buf[:])
}

// BeginBytes writes a definite-length byte string header; the caller must
// follow with exactly n bytes of raw content via the OutputStream (or
// WriteBytesChunk, a convenience for that content).
func (w *Writer) BeginBytes(n uint64) { w.writeHead(majorBytes, n) }

// WriteBytesChunk writes raw byte-string content following BeginBytes. It
// writes no header of its own, so each chunk of an indefinite byte string
// needs its own BeginBytes before it.
func (w *Writer) WriteBytesChunk(b []byte) { w.out.Write(b) }

// BeginText writes a definite-length text string header; content follows
// as raw UTF-8 bytes (this package performs no UTF-8 validation, per its
// scope).
func (w *Writer) BeginText(n uint64) { w.writeHead(majorText, n) }

// WriteTextChunk writes raw text content following BeginText. It writes
// no header of its own, so each chunk of an indefinite text string needs
// its own BeginText before it.
func (w *Writer) WriteTextChunk(s string) { w.out.Write([]byte(s)) }

// BeginArray writes a definite-length array header for n elements.
func (w *Writer) BeginArray(n uint64) { w.writeHead(majorArray, n) }

// BeginMap writes a definite-length map header for n key/value pairs.
func (w *Writer) BeginMap(n uint64) { w.writeHead(majorMap, n) }

// BeginIndefiniteBytes writes an indefinite-length byte string header
// (0x5f). It must be closed with EndIndefinite after zero or more
// definite-length chunks.
func (w *Writer) BeginIndefiniteBytes() { w.out.WriteByte(makeByte(majorBytes, addlIndefinite)) }

// BeginIndefiniteText writes an indefinite-length text string header
// (0x7f). It must be closed with EndIndefinite.
func (w *Writer) BeginIndefiniteText() { w.out.WriteByte(makeByte(majorText, addlIndefinite)) }

// BeginIndefiniteArray writes an indefinite-length array header (0x9f).
// It must be closed with EndIndefinite after its elements.
func (w *Writer) BeginIndefiniteArray() { w.out.WriteByte(makeByte(majorArray, addlIndefinite)) }

// BeginIndefiniteMap writes an indefinite-length map header (0xbf). It
// must be closed with EndIndefinite after an even number of key/value
// items.
func (w *Writer) BeginIndefiniteMap() { w.out.WriteByte(makeByte(majorMap, addlIndefinite)) }

// EndIndefinite writes the Break stop-code (0xff) that terminates any
// indefinite-length container opened with a Begin* method above.
func (w *Writer) EndIndefinite() { w.out.WriteByte(makeByte(majorSimple, simpleBreak)) }
