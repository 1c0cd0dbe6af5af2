// Package stream implements a streaming CBOR (RFC 8949) codec core for
// byte-oriented transports: a pull-based Reader, a push-based Writer, and a
// destructive recursive well-formedness Checker. None of the three hold a
// buffered representation of a decoded tree.
package stream

// CBOR major types (top 3 bits of the initial byte).
const (
	majorUnsignedInt = 0
	majorNegativeInt = 1
	majorBytes       = 2
	majorText        = 3
	majorArray       = 4
	majorMap         = 5
	majorTag         = 6
	majorSimple      = 7
)

// Additional information codes (low 5 bits of the initial byte).
const (
	addlDirectMax  = 23 // 0-23 encode the argument directly
	addlUint8      = 24
	addlUint16     = 25
	addlUint32     = 26
	addlUint64     = 27
	// 28, 29, 30 are reserved and always malformed.
	addlIndefinite = 31
)

// Major-7 (SimpleOrFloat) additional-info selectors.
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

// makeByte builds a CBOR initial byte from a major type and additional info.
func makeByte(major, addl uint8) byte { return byte(major<<5) | addl }

// splitByte decomposes a CBOR initial byte into major type and additional info.
func splitByte(b byte) (major, addl uint8) {
	return uint8(b) >> 5, uint8(b) & 0x1f
}

// DataType is the logical type of a decoded item, as reported by Reader.
type DataType uint8

const (
	// EndOfStream means the transport did not have enough bytes to
	// complete the current item header; state is preserved for retry.
	EndOfStream DataType = iota
	UnsignedInt
	NegativeInt
	Bytes
	Text
	Array
	Map
	Tag
	Boolean
	Null
	Undefined
	SimpleValue
	Float
	Double
	Break
	SyntaxError
)

func (t DataType) String() string {
	switch t {
	case EndOfStream:
		return "EndOfStream"
	case UnsignedInt:
		return "UnsignedInt"
	case NegativeInt:
		return "NegativeInt"
	case Bytes:
		return "Bytes"
	case Text:
		return "Text"
	case Array:
		return "Array"
	case Map:
		return "Map"
	case Tag:
		return "Tag"
	case Boolean:
		return "Boolean"
	case Null:
		return "Null"
	case Undefined:
		return "Undefined"
	case SimpleValue:
		return "SimpleValue"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case Break:
		return "Break"
	case SyntaxError:
		return "SyntaxError"
	default:
		return "<invalid>"
	}
}
