package stream

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// diagDepthLimit bounds recursion in Diagnose the same way maxCheckDepth
// bounds Checker recursion; diagnostic rendering is a debugging aid, not
// a resource-constrained hot path, so a single shared constant would be
// overkill, but the same class of adversarial-nesting risk applies.
const diagDepthLimit = 10000

// Diagnose renders the next complete item read from r in RFC 8949 §8
// diagnostic notation (e.g. `{"a": 1}`, `[1, 2, 3]`, `h'0102'`). It is
// meant for fully-buffered inputs (SliceInput or an InputStream known to
// already hold the whole item); EndOfStream part-way through an item is
// reported as an error rather than retried, since Diagnose has no way to
// ask the caller for more bytes mid-recursion.
func Diagnose(r *Reader) (string, error) {
	var sb strings.Builder
	if err := diagOne(&sb, r, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func diagOne(sb *strings.Builder, r *Reader, depth int) error {
	if depth > diagDepthLimit {
		return ErrMaxDepthExceeded
	}

	dt := r.NextDataType()
	switch dt {
	case UnsignedInt:
		sb.WriteString(strconv.FormatUint(r.UnsignedInt(), 10))
	case NegativeInt:
		sb.WriteString(strconv.FormatInt(r.NegativeIntAsInt64(), 10))
	case Boolean:
		sb.WriteString(strconv.FormatBool(r.Boolean()))
	case Null:
		sb.WriteString("null")
	case Undefined:
		sb.WriteString("undefined")
	case SimpleValue:
		fmt.Fprintf(sb, "simple(%d)", r.SimpleValue())
	case Float:
		sb.WriteString(formatDiagFloat(float64(r.Float())))
	case Double:
		sb.WriteString(formatDiagFloat(r.Double()))
	case Tag:
		fmt.Fprintf(sb, "%d(", r.Tag())
		if err := diagOne(sb, r, depth+1); err != nil {
			return err
		}
		sb.WriteString(")")
	case Bytes:
		return diagBytes(sb, r, depth)
	case Text:
		return diagText(sb, r, depth)
	case Array:
		return diagArray(sb, r, depth)
	case Map:
		return diagMap(sb, r, depth)
	case SyntaxError:
		return SyntaxErrorDetail{Kind: r.LastSyntaxError()}
	case EndOfStream:
		return errShortForDiagnostic
	case Break:
		return errUnexpectedBreak
	}
	return nil
}

var (
	errShortForDiagnostic = fmt.Errorf("cbor: input ended before item completed")
	errUnexpectedBreak    = fmt.Errorf("cbor: unexpected top-level break")
)

func formatDiagFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func diagBytes(sb *strings.Builder, r *Reader, depth int) error {
	if r.IsIndefiniteLength() {
		sb.WriteString("(_ ")
		first := true
		for {
			dt := r.NextDataType()
			if dt == Break {
				break
			}
			if dt != Bytes {
				return errIndefiniteChunkType
			}
			if !first {
				sb.WriteString(", ")
			}
			first = false
			writeHexChunk(sb, r)
		}
		sb.WriteString(")")
		return nil
	}
	writeHexChunk(sb, r)
	return nil
}

func writeHexChunk(sb *strings.Builder, r *Reader) {
	n := r.Length()
	buf := make([]byte, n)
	r.ReadBytes(buf)
	sb.WriteString("h'")
	sb.WriteString(hex.EncodeToString(buf))
	sb.WriteString("'")
}

func diagText(sb *strings.Builder, r *Reader, depth int) error {
	if r.IsIndefiniteLength() {
		sb.WriteString("(_ ")
		first := true
		for {
			dt := r.NextDataType()
			if dt == Break {
				break
			}
			if dt != Text {
				return errIndefiniteChunkType
			}
			if !first {
				sb.WriteString(", ")
			}
			first = false
			writeTextChunk(sb, r)
		}
		sb.WriteString(")")
		return nil
	}
	writeTextChunk(sb, r)
	return nil
}

func writeTextChunk(sb *strings.Builder, r *Reader) {
	buf := make([]byte, r.Length())
	r.ReadBytes(buf)
	sb.WriteString(strconv.Quote(string(buf)))
}

var errIndefiniteChunkType = fmt.Errorf("cbor: indefinite-length chunk has the wrong major type")

func diagArray(sb *strings.Builder, r *Reader, depth int) error {
	if r.IsIndefiniteLength() {
		sb.WriteString("[_ ")
		first := true
		for {
			dt := r.NextDataType()
			if dt == Break {
				break
			}
			if !first {
				sb.WriteString(", ")
			}
			first = false
			if err := diagOneFromType(sb, r, dt, depth+1); err != nil {
				return err
			}
		}
		sb.WriteString("]")
		return nil
	}
	n := r.Length()
	sb.WriteString("[")
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := diagOne(sb, r, depth+1); err != nil {
			return err
		}
	}
	sb.WriteString("]")
	return nil
}

func diagMap(sb *strings.Builder, r *Reader, depth int) error {
	if r.IsIndefiniteLength() {
		sb.WriteString("{_ ")
		first := true
		for {
			dt := r.NextDataType()
			if dt == Break {
				break
			}
			if !first {
				sb.WriteString(", ")
			}
			first = false
			if err := diagOneFromType(sb, r, dt, depth+1); err != nil {
				return err
			}
			sb.WriteString(": ")
			if err := diagOne(sb, r, depth+1); err != nil {
				return err
			}
		}
		sb.WriteString("}")
		return nil
	}
	n := r.Length()
	sb.WriteString("{")
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := diagOne(sb, r, depth+1); err != nil {
			return err
		}
		sb.WriteString(": ")
		if err := diagOne(sb, r, depth+1); err != nil {
			return err
		}
	}
	sb.WriteString("}")
	return nil
}

// diagOneFromType renders an item whose data type has already been read
// via NextDataType (used for indefinite map keys, where the loop must
// inspect the type before deciding whether it was a Break).
func diagOneFromType(sb *strings.Builder, r *Reader, dt DataType, depth int) error {
	switch dt {
	case UnsignedInt:
		sb.WriteString(strconv.FormatUint(r.UnsignedInt(), 10))
	case NegativeInt:
		sb.WriteString(strconv.FormatInt(r.NegativeIntAsInt64(), 10))
	case Boolean:
		sb.WriteString(strconv.FormatBool(r.Boolean()))
	case Null:
		sb.WriteString("null")
	case Undefined:
		sb.WriteString("undefined")
	case SimpleValue:
		fmt.Fprintf(sb, "simple(%d)", r.SimpleValue())
	case Float:
		sb.WriteString(formatDiagFloat(float64(r.Float())))
	case Double:
		sb.WriteString(formatDiagFloat(r.Double()))
	case Tag:
		fmt.Fprintf(sb, "%d(", r.Tag())
		if err := diagOne(sb, r, depth+1); err != nil {
			return err
		}
		sb.WriteString(")")
	case Bytes:
		return diagBytes(sb, r, depth)
	case Text:
		return diagText(sb, r, depth)
	case Array:
		return diagArray(sb, r, depth)
	case Map:
		return diagMap(sb, r, depth)
	case SyntaxError:
		return SyntaxErrorDetail{Kind: r.LastSyntaxError()}
	case EndOfStream:
		return errShortForDiagnostic
	}
	return nil
}
