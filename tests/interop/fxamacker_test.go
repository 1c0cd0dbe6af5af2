// Package interop differentially tests the streaming Reader/Checker
// against github.com/fxamacker/cbor/v2, an independent, spec-conformant
// CBOR implementation: anything fxamacker/cbor accepts as well-formed,
// our Checker must also accept, and the values our Reader decodes must
// agree with fxamacker's.
package interop

import (
	"bytes"
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"

	"github.com/qindesign-io/streamcbor/stream"
)

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := fxcbor.Marshal(v)
	if err != nil {
		t.Fatalf("fxcbor.Marshal(%#v): %v", v, err)
	}
	return b
}

func TestCheckerAgreesWithFxamackerOnWellFormedValues(t *testing.T) {
	values := []any{
		uint64(0), uint64(23), uint64(24), uint64(1 << 40),
		int64(-1), int64(-1000000),
		"hello", "",
		[]byte{1, 2, 3}, []byte{},
		[]any{1, 2, 3},
		map[string]any{"a": 1, "b": 2},
		true, false, nil,
		3.5, float32(1.5),
	}
	for _, v := range values {
		enc := mustMarshal(t, v)
		outcome, err := stream.NewChecker(stream.NewSliceInput(enc)).Check(false)
		if err != nil {
			t.Fatalf("value %#v: Check error: %v", v, err)
		}
		if outcome < 0 {
			t.Errorf("value %#v: Checker rejected fxcbor-encoded bytes % x", v, enc)
		}
	}
}

func TestReaderAgreesWithFxamackerOnIntegers(t *testing.T) {
	values := []int64{0, 1, -1, 23, -24, 24, -25, 1000, -1000, 1 << 40, -(1 << 40)}
	for _, v := range values {
		enc := mustMarshal(t, v)
		r := stream.NewReader(stream.NewSliceInput(enc))
		var got int64
		switch dt := r.NextDataType(); dt {
		case stream.UnsignedInt:
			got = int64(r.UnsignedInt())
		case stream.NegativeInt:
			got = r.NegativeIntAsInt64()
		default:
			t.Fatalf("value %d: unexpected data type %v", v, dt)
		}
		if got != v {
			t.Errorf("value %d: Reader decoded %d", v, got)
		}
	}
}

func TestReaderAgreesWithFxamackerOnStrings(t *testing.T) {
	values := []string{"", "a", "hello world", "unicode: éè"}
	for _, v := range values {
		enc := mustMarshal(t, v)
		r := stream.NewReader(stream.NewSliceInput(enc))
		if dt := r.NextDataType(); dt != stream.Text {
			t.Fatalf("value %q: expected Text, got %v", v, dt)
		}
		buf := make([]byte, r.Length())
		r.ReadBytes(buf)
		if string(buf) != v {
			t.Errorf("value %q: Reader decoded %q", v, buf)
		}
	}
}

func TestReaderAgreesWithFxamackerOnFloats(t *testing.T) {
	values := []float64{0, 1, -1, 3.14159, 1e300}
	for _, v := range values {
		enc := mustMarshal(t, v)
		r := stream.NewReader(stream.NewSliceInput(enc))
		dt := r.NextDataType()
		var got float64
		switch dt {
		case stream.Float:
			got = float64(r.Float())
		case stream.Double:
			got = r.Double()
		default:
			t.Fatalf("value %v: unexpected data type %v", v, dt)
		}
		if got != v {
			t.Errorf("value %v: Reader decoded %v", v, got)
		}
	}
}

// TestFxamackerAcceptsOurEncodedIndefiniteArray confirms an
// independent decoder accepts what our Writer produces for an
// indefinite-length container, and decodes it to the expected value.
func TestFxamackerAcceptsOurEncodedIndefiniteArray(t *testing.T) {
	out := stream.NewSliceOutput()
	defer out.Release()
	w := stream.NewWriter(out)
	w.BeginIndefiniteArray()
	w.WriteUnsigned(1)
	w.WriteUnsigned(2)
	w.WriteUnsigned(3)
	w.EndIndefinite()

	var got []int
	if err := fxcbor.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("fxcbor.Unmarshal: %v", err)
	}
	if !bytes.Equal([]byte{1, 2, 3}, []byte{byte(got[0]), byte(got[1]), byte(got[2])}) {
		t.Fatalf("got %v", got)
	}
}
