package stream

import (
	"net"
	"testing"
	"time"
)

func TestSliceInputAvailableAndRead(t *testing.T) {
	in := NewSliceInput([]byte{1, 2, 3})
	if got := in.Available(); got != 3 {
		t.Fatalf("Available() = %d, want 3", got)
	}
	b, ok := in.Read()
	if !ok || b != 1 {
		t.Fatalf("Read() = %d, %v, want 1, true", b, ok)
	}
	if got := in.Available(); got != 2 {
		t.Fatalf("Available() = %d, want 2", got)
	}
	dst := make([]byte, 2)
	n := in.ReadBytes(dst)
	if n != 2 || dst[0] != 2 || dst[1] != 3 {
		t.Fatalf("ReadBytes() = %d, %v", n, dst)
	}
	if _, ok := in.Read(); ok {
		t.Fatalf("Read() at end of input should report !ok")
	}
}

func TestSliceOutputAccumulates(t *testing.T) {
	out := NewSliceOutput()
	defer out.Release()
	out.WriteByte(0xa1)
	out.Write([]byte{0x01, 0x02})
	if got := out.Bytes(); string(got) != string([]byte{0xa1, 0x01, 0x02}) {
		t.Fatalf("Bytes() = % x", got)
	}
}

func TestNetInputProbesWithoutBlocking(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	in := NewNetInput(client)

	// Nothing has been written yet: Available must return promptly with
	// zero rather than blocking for a peer write.
	done := make(chan int, 1)
	go func() { done <- in.Available() }()
	select {
	case n := <-done:
		if n != 0 {
			t.Fatalf("Available() = %d, want 0", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Available() blocked")
	}

	go func() { server.Write([]byte{0x42}) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b, ok := in.Read(); ok {
			if b != 0x42 {
				t.Fatalf("Read() = %#x, want 0x42", b)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("never observed the written byte")
}

func TestNetOutputMasksFailureAfterClose(t *testing.T) {
	server, client := net.Pipe()
	server.Close()
	client.Close()

	out := NewNetOutput(client, nil, time.Second)
	out.WriteByte(0x01) // must not panic despite the closed connection
	if !out.Dead() {
		t.Fatalf("expected Dead() after write to closed conn")
	}
	out.WriteByte(0x02) // subsequent writes are silent no-ops
}
