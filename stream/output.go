package stream

import (
	"log/slog"
	"net"
	"time"
)

// OutputStream is the abstract byte sink the Writer pushes to. Unlike
// InputStream, it carries no error-signaling contract at all: per the
// Writer's stateless push design, a failed or partial write has nowhere
// to be reported back to mid-encode, so implementations that front a
// fallible transport must buffer or mask failures themselves (see
// NetOutput below) rather than surface them through this interface.
type OutputStream interface {
	// WriteByte appends a single byte.
	WriteByte(b byte)

	// Write appends buf in full.
	Write(buf []byte)
}

// SliceOutput is an OutputStream backed by a pooled ByteBuffer. It never
// fails; Bytes returns the accumulated encoding.
type SliceOutput struct {
	buf *ByteBuffer
}

// NewSliceOutput returns an OutputStream backed by a fresh pooled buffer.
// Call Release when done with it to return the buffer to the pool.
func NewSliceOutput() *SliceOutput { return &SliceOutput{buf: GetByteBuffer()} }

func (s *SliceOutput) WriteByte(b byte) { s.buf.WriteByte(b) }

func (s *SliceOutput) Write(buf []byte) { s.buf.Write(buf) }

// Bytes returns the bytes written so far. The returned slice is only
// valid until the next write or Release.
func (s *SliceOutput) Bytes() []byte { return s.buf.Bytes() }

// Len returns the number of bytes written so far.
func (s *SliceOutput) Len() int { return s.buf.Len() }

// Release returns the underlying buffer to the pool. The SliceOutput must
// not be used afterward.
func (s *SliceOutput) Release() { PutByteBuffer(s.buf) }

// NetOutput adapts a net.Conn to OutputStream. Because OutputStream has no
// error channel, write failures are masked: they are logged at Warn level
// (via the supplied *slog.Logger, or the default logger if nil) and the
// connection is marked dead so that subsequent writes become silent
// no-ops rather than repeatedly blocking or erroring on a broken pipe.
type NetOutput struct {
	conn   net.Conn
	log    *slog.Logger
	dead   bool
	wrDlnc time.Duration
}

// NewNetOutput constructs an OutputStream over conn. If log is nil, the
// default slog logger is used. writeTimeout bounds each individual Write
// or WriteByte call; zero means no deadline is applied.
func NewNetOutput(conn net.Conn, log *slog.Logger, writeTimeout time.Duration) *NetOutput {
	if log == nil {
		log = slog.Default()
	}
	return &NetOutput{conn: conn, log: log, wrDlnc: writeTimeout}
}

func (n *NetOutput) deadline() {
	if n.wrDlnc > 0 {
		_ = n.conn.SetWriteDeadline(time.Now().Add(n.wrDlnc))
	}
}

func (n *NetOutput) WriteByte(b byte) {
	if n.dead {
		return
	}
	n.deadline()
	if _, err := n.conn.Write([]byte{b}); err != nil {
		n.dead = true
		n.log.Warn("cbor: masked write failure", "err", err)
	}
}

func (n *NetOutput) Write(buf []byte) {
	if n.dead {
		return
	}
	n.deadline()
	if _, err := n.conn.Write(buf); err != nil {
		n.dead = true
		n.log.Warn("cbor: masked write failure", "err", err)
	}
}

// Dead reports whether a prior write failure has disabled this sink.
func (n *NetOutput) Dead() bool { return n.dead }
