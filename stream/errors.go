package stream

import "strconv"

// Error is the interface satisfied by errors that originate from this
// package, mirroring the Resumable-aware error taxonomy of the CBOR
// libraries this codec descends from.
type Error interface {
	error

	// Resumable reports whether the underlying stream position is still
	// usable after this error (true), or whether the caller must abandon
	// the stream entirely (false).
	Resumable() bool
}

// SyntaxErrorKind enumerates the ways a single data item's header can be
// malformed. The Reader surfaces the kind; the Checker collapses every
// malformed determination to a single sentinel and does not differentiate
// kinds.
type SyntaxErrorKind uint8

const (
	// NoError is the steady-state placeholder kind held before any
	// syntax error has been observed.
	NoError SyntaxErrorKind = iota

	// UnknownAdditionalInfo means the initial byte's additional-info
	// field was one of the reserved codes 28, 29, or 30.
	UnknownAdditionalInfo

	// NotAnIndefiniteType means additional-info 31 was used on a major
	// type that has no indefinite-length form (UnsignedInt, NegativeInt,
	// Tag).
	NotAnIndefiniteType

	// BadSimpleValue means a simple value was encoded via the one-byte
	// form (additional-info 24) with an argument below 32, which RFC 8949
	// forbids: 0-23 have the direct encoding, and 24-31 are reserved.
	BadSimpleValue
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case UnknownAdditionalInfo:
		return "UnknownAdditionalInfo"
	case NotAnIndefiniteType:
		return "NotAnIndefiniteType"
	case BadSimpleValue:
		return "BadSimpleValue"
	default:
		return "<invalid>"
	}
}

// SyntaxErrorDetail records why the Reader returned the SyntaxError
// DataType. It implements Error; syntax errors are never resumable in
// place — the Reader has already returned to its Start state with no
// bytes put back, so recovery means resynchronizing at a known framing
// boundary, not retrying the same item.
type SyntaxErrorDetail struct {
	Kind SyntaxErrorKind
}

func (e SyntaxErrorDetail) Error() string {
	return "cbor: syntax error: " + e.Kind.String()
}

func (e SyntaxErrorDetail) Resumable() bool { return false }

// ErrMaxDepthExceeded is returned by the Checker when recursion into
// nested arrays, maps, or tags exceeds maxCheckDepth. The limit is set
// one order of magnitude below the depth limits typical CBOR decoders
// use, so pathological input fails fast rather than exhausting the call
// stack.
var ErrMaxDepthExceeded Error = errMaxDepthExceeded{}

type errMaxDepthExceeded struct{}

func (errMaxDepthExceeded) Error() string   { return "cbor: max recursion depth exceeded" }
func (errMaxDepthExceeded) Resumable() bool { return false }

// InvalidPrefixError is returned when an accessor is called against an
// item whose major type doesn't support it — e.g. ReadBytes called right
// after NextDataType determined the current item is neither Bytes nor
// Text.
type InvalidPrefixError struct {
	Want, Got uint8
}

func (e InvalidPrefixError) Error() string {
	return "cbor: expected major type " + strconv.Itoa(int(e.Want)) + " but got " + strconv.Itoa(int(e.Got))
}

func (e InvalidPrefixError) Resumable() bool { return false }
