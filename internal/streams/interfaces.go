package streams

import (
	"io"
	"net"
)

// Stream is the capability set a buffered stream requires from the resource it wraps:
// read, write, force resource-level buffers out, and ask whether any more bytes will
// ever arrive. Read and Write follow the usual io contracts: a Read may return fewer
// bytes than requested (at most one underlying I/O operation) and signals exhaustion
// with (0, io.EOF).
type Stream interface {
	io.Reader
	io.Writer
	Flusher

	// EndOfStream returns true only when no further bytes will ever be produced.
	EndOfStream() bool
}

// Flusher is anything that can force its own buffered data out.
type Flusher interface {
	Flush() error
}

// Closed is an interface which defines a method to check if a stream is closed or not
type Closed interface {
	Closed() bool
}

// Connection combines the net.Conn and Closed interfaces to provide the way to query if the
// connection has been closed or not.
type Connection interface {
	net.Conn
	Closed
}

type UnwrappedStream interface {
	Unwrap() Stream
}

type UnwrappedReadWriter interface {
	Unwrap() io.ReadWriter
}

type UnwrappedConnection interface {
	Unwrap() net.Conn
}
