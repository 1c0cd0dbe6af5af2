package stream

import (
	"math"

	"github.com/x448/float16"
)

// readerState is the Reader's position within a single item header's
// incremental decode, per NextDataType's state machine.
type readerState uint8

const (
	stateStart readerState = iota
	stateAdditionalInfo
	stateWaitAvailable
	stateReadValue
	stateDetermineType
)

// Reader is a pull-based, incremental CBOR decoder. NextDataType consumes
// as much of the current item's header as the InputStream currently makes
// available and returns EndOfStream if it needs more; the caller is
// expected to call it again once more bytes may have arrived. State
// persists across such calls so a header spanning several short reads
// decodes correctly without the caller re-feeding anything.
type Reader struct {
	in InputStream

	state         readerState
	majorType     uint8
	addlInfo      uint8
	waitAvailable int
	value         uint64
	syntaxKind    SyntaxErrorKind
}

// NewReader returns a Reader pulling from in.
func NewReader(in InputStream) *Reader { return &Reader{in: in} }

// NextDataType advances the state machine and returns the logical type of
// the next item, or EndOfStream if the InputStream does not yet have
// enough bytes to complete the current header. It is safe, and required,
// to call NextDataType repeatedly on EndOfStream until it returns
// something else; no bytes are consumed more than once across such
// retries.
func (r *Reader) NextDataType() DataType {
	if r.state == stateStart {
		b, ok := r.in.Read()
		if !ok {
			return EndOfStream
		}
		r.value = 0
		r.syntaxKind = NoError
		r.majorType, r.addlInfo = splitByte(b)
		r.state = stateAdditionalInfo
	}

	if r.state == stateAdditionalInfo {
		r.waitAvailable = 0
		switch r.addlInfo {
		case addlUint8:
			r.waitAvailable = 1
			r.state = stateWaitAvailable
		case addlUint16:
			r.waitAvailable = 2
			r.state = stateWaitAvailable
		case addlUint32:
			r.waitAvailable = 4
			r.state = stateWaitAvailable
		case addlUint64:
			r.waitAvailable = 8
			r.state = stateWaitAvailable
		case 28, 29, 30:
			r.syntaxKind = UnknownAdditionalInfo
			r.state = stateStart
			return SyntaxError
		case addlIndefinite:
			switch r.majorType {
			case majorUnsignedInt, majorNegativeInt, majorTag:
				r.syntaxKind = NotAnIndefiniteType
				r.state = stateStart
				return SyntaxError
			}
			r.state = stateReadValue
		default:
			r.state = stateReadValue
		}
	}

	if r.state == stateWaitAvailable {
		if r.in.Available() < r.waitAvailable {
			return EndOfStream
		}
		r.state = stateReadValue
	}

	if r.state == stateReadValue {
		switch r.addlInfo {
		case addlUint8, addlUint16, addlUint32, addlUint64:
			// waitAvailable already confirmed this many bytes are
			// available, so these reads cannot fail.
			for i := 0; i < r.waitAvailable; i++ {
				b, _ := r.in.Read()
				r.value = r.value<<8 | uint64(b)
			}
		case 28, 29, 30:
			r.value = uint64(r.addlInfo)
		case addlIndefinite:
			r.value = 0
		default:
			r.value = uint64(r.addlInfo)
		}
		r.state = stateDetermineType
	}

	r.state = stateStart

	switch r.majorType {
	case majorUnsignedInt:
		return UnsignedInt
	case majorNegativeInt:
		return NegativeInt
	case majorBytes:
		return Bytes
	case majorText:
		return Text
	case majorArray:
		return Array
	case majorMap:
		return Map
	case majorTag:
		return Tag
	case majorSimple:
		switch r.addlInfo {
		case simpleFalse, simpleTrue:
			r.value = 0
			return Boolean
		case simpleNull:
			r.value = 0
			return Null
		case simpleUndefined:
			r.value = 0
			return Undefined
		case addlUint8:
			if r.value < 32 {
				r.syntaxKind = BadSimpleValue
				return SyntaxError
			}
			return SimpleValue
		case simpleFloat16, simpleFloat32:
			return Float
		case simpleFloat64:
			return Double
		case addlIndefinite:
			r.value = 0
			return Break
		default:
			return SimpleValue
		}
	default:
		return SyntaxError
	}
}

// LastSyntaxError describes why the previous NextDataType call returned
// SyntaxError. It is meaningless otherwise.
func (r *Reader) LastSyntaxError() SyntaxErrorKind { return r.syntaxKind }

// IsIndefiniteLength reports whether the current Bytes/Text/Array/Map
// item has indefinite length (additional-info 31). Meaningless for other
// major types.
func (r *Reader) IsIndefiniteLength() bool {
	switch r.majorType {
	case majorBytes, majorText, majorArray, majorMap:
		return r.addlInfo == addlIndefinite
	}
	return false
}

// Length returns the current Bytes/Text/Array/Map item's declared length
// (element count for Array/Map, byte count for Bytes/Text). Meaningless
// for indefinite-length items and other major types.
func (r *Reader) Length() uint64 { return r.value }

// RawValue returns the current item's raw 64-bit argument, whose meaning
// depends on major type (magnitude, one's-complement negative value,
// length, tag number, or IEEE-754 bit pattern).
func (r *Reader) RawValue() uint64 { return r.value }

// UnsignedInt returns the current item's value if it is an UnsignedInt,
// or 0 otherwise.
func (r *Reader) UnsignedInt() uint64 {
	if r.majorType != majorUnsignedInt {
		return 0
	}
	return r.value
}

// NegativeIntAsInt64 returns the current item's value as a signed int64,
// computed as -1-argument, if it is a NegativeInt, or 0 otherwise. It
// overflows (wraps) for arguments >= 2^63, matching Go's twos-complement
// int64 range; callers needing the full 64-bit magnitude should read
// RawValue directly.
func (r *Reader) NegativeIntAsInt64() int64 {
	if r.majorType != majorNegativeInt {
		return 0
	}
	return -1 - int64(r.value)
}

// Tag returns the current item's tag number if it is a Tag, or 0
// otherwise.
func (r *Reader) Tag() uint64 {
	if r.majorType != majorTag {
		return 0
	}
	return r.value
}

// SimpleValue returns the current item's enumeration selector if it is a
// SimpleValue, or 0 otherwise.
func (r *Reader) SimpleValue() uint8 {
	if r.majorType != majorSimple {
		return 0
	}
	return uint8(r.value)
}

// Boolean returns the current item's value if it is a Boolean, or false
// otherwise.
func (r *Reader) Boolean() bool {
	if r.majorType != majorSimple {
		return false
	}
	if r.addlInfo == simpleTrue {
		return true
	}
	if r.addlInfo == addlUint8 && r.value == simpleTrue {
		return true
	}
	return false
}

// Float returns the current item's value if it is a Float, widening
// half-precision (additional-info 25) via float16.Frombits and
// reinterpreting single-precision (additional-info 26) bits directly, or
// 0 otherwise.
func (r *Reader) Float() float32 {
	if r.majorType != majorSimple {
		return 0
	}
	switch r.addlInfo {
	case simpleFloat16:
		return float16.Frombits(uint16(r.value)).Float32()
	case simpleFloat32:
		return math.Float32frombits(uint32(r.value))
	}
	return 0
}

// Double returns the current item's value if it is a Double, or the
// current item's value widened to float64 if it is a Float, or 0
// otherwise.
func (r *Reader) Double() float64 {
	if r.majorType != majorSimple {
		return 0
	}
	switch r.addlInfo {
	case simpleFloat16, simpleFloat32:
		return float64(r.Float())
	case simpleFloat64:
		return math.Float64frombits(r.value)
	}
	return 0
}

// ReadBytes forwards to the underlying InputStream's bulk read, returning
// the number of bytes copied into dst. It performs no bookkeeping of how
// many content bytes remain in the current Bytes/Text item; the caller
// must track that itself using the length or, for indefinite items, its
// own chunk-counting loop. It returns InvalidPrefixError without reading
// anything if the most recently determined item is not Bytes or Text.
func (r *Reader) ReadBytes(dst []byte) (int, error) {
	if r.majorType != majorBytes && r.majorType != majorText {
		return 0, InvalidPrefixError{Want: majorBytes, Got: r.majorType}
	}
	return r.in.ReadBytes(dst), nil
}
