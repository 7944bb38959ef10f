package streams

import (
	"io"

	"github.com/pkg/errors"
)

// ReaderWriterStream lifts a plain io.ReadWriter (a net.Conn, a file, one half of a
// pipe) into the Stream capability set. End-of-stream is latched the first time the
// wrapped reader reports io.EOF; a read that returns bytes together with io.EOF
// hands the bytes out first and reports the exhaustion on the next call.
// It also makes sure that Close() can be called safely multiple times.
type ReaderWriterStream struct {
	wrapped io.ReadWriter
	eof     bool
	closed  bool
}

// NewReaderWriterStream will create a new ReaderWriterStream. It *WILL NOT* create a
// new instance if the provided argument is already a ReaderWriterStream.
func NewReaderWriterStream(wrapped io.ReadWriter) *ReaderWriterStream {
	if rws, ok := wrapped.(*ReaderWriterStream); ok {
		return rws
	}

	return &ReaderWriterStream{
		wrapped: wrapped,
	}
}

func (rw *ReaderWriterStream) Read(p []byte) (n int, err error) {
	if rw.eof {
		return 0, io.EOF
	}
	n, err = rw.wrapped.Read(p)
	if err == io.EOF {
		rw.eof = true
		if n > 0 {
			return n, nil
		}
	}
	return n, err
}

func (rw *ReaderWriterStream) Write(p []byte) (n int, err error) {
	return rw.wrapped.Write(p)
}

// Flush delegates to the wrapped value when it knows how to flush, otherwise it is
// a no-op.
func (rw *ReaderWriterStream) Flush() error {
	if f, ok := rw.wrapped.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// EndOfStream returns true once the wrapped reader has reported io.EOF.
func (rw *ReaderWriterStream) EndOfStream() bool {
	return rw.eof
}

// Close will close the wrapped value when it is an io.Closer. If Close has already
// been called, it will do nothing.
func (rw *ReaderWriterStream) Close() error {
	if rw.closed {
		return nil
	}
	rw.closed = true

	if c, ok := rw.wrapped.(io.Closer); ok {
		return errors.WithStack(c.Close())
	}
	return nil
}

// Closed will return true if Close has been called at least once
func (rw *ReaderWriterStream) Closed() bool {
	return rw.closed
}

// Unwrap returns the wrapped io.ReadWriter
func (rw *ReaderWriterStream) Unwrap() io.ReadWriter {
	return rw.wrapped
}
