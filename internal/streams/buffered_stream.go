package streams

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	// ReadBufferSize is the default capacity of the read buffer.
	ReadBufferSize = 64 * 1024
	// WriteBufferSize is the default capacity of the write buffer.
	WriteBufferSize = 64 * 1024
)

// ErrPokeBufferFull is returned by PokeByte when the read buffer is filled right up to
// its left edge and there is no room to push a byte back. Hitting it means the caller
// poked without having just consumed a byte.
var ErrPokeBufferFull = errors.New("poke: read buffer full, no room to push back")

// BufferedStream wraps a Stream and batches traffic through two fixed-capacity
// buffers, one per direction, so that many small reads and writes collapse into few
// large ones on the wrapped stream. The buffers are allocated once and never grow; a
// write that fills the write buffer triggers a send rather than a resize.
//
// All operations are synchronous and may block for the duration of the underlying
// I/O. A BufferedStream must not be shared between goroutines without external
// locking -- one buffered stream per connection is the expected shape.
//
// Nothing is flushed implicitly on teardown. Going out of scope with bytes still in
// the write buffer discards them; call Flush or Close to get them out first.
type BufferedStream struct {
	wrapped Stream

	readBuffer []byte
	readPos    int // next byte to hand to the caller
	readMax    int // one past the last valid byte in readBuffer

	readErr    error // non-EOF error that arrived together with buffered bytes

	writeBuffer []byte
	writeLen    int

	// Some wrapped resources must not see a Flush in certain states (e.g. while
	// unwinding after a failure). propagateFlush controls whether flushing the
	// buffered stream also invokes the wrapped stream's own Flush.
	propagateFlush bool

	closed bool
}

// NewBufferedStream wraps the given stream with the default 64k buffers.
func NewBufferedStream(wrapped Stream, propagateFlush bool) *BufferedStream {
	return NewBufferedStreamSize(wrapped, ReadBufferSize, WriteBufferSize, propagateFlush)
}

// NewBufferedStreamSize wraps the given stream with buffers of explicit capacities.
// The capacities are fixed for the lifetime of the value.
func NewBufferedStreamSize(wrapped Stream, readSize, writeSize int, propagateFlush bool) *BufferedStream {
	return &BufferedStream{
		wrapped:        wrapped,
		readBuffer:     make([]byte, readSize),
		writeBuffer:    make([]byte, writeSize),
		propagateFlush: propagateFlush,
	}
}

// fill pulls one batch of bytes from the wrapped stream into the (fully drained) read
// buffer. Returns false when the wrapped stream is exhausted. A non-EOF error that
// arrived together with bytes is latched and surfaces once those bytes have been
// drained, so a terminal failure mid-transfer is never mistaken for a clean end of
// stream. May block.
func (bs *BufferedStream) fill() (bool, error) {
	if bs.readErr != nil {
		err := bs.readErr
		bs.readErr = nil
		return false, err
	}

	n, err := bs.wrapped.Read(bs.readBuffer)
	bs.readPos = 0
	bs.readMax = n
	if n > 0 {
		if err != nil && err != io.EOF {
			bs.readErr = err
		}
		return true, nil
	}
	if err == nil || err == io.EOF {
		return false, nil
	}
	return false, err
}

// ReadByte returns the next buffered byte, filling the buffer from the wrapped stream
// when it has been drained. Returns io.EOF once both the buffer and the wrapped
// stream are exhausted.
func (bs *BufferedStream) ReadByte() (byte, error) {
	if bs.readPos == bs.readMax {
		if ok, err := bs.fill(); err != nil {
			return 0, err
		} else if !ok {
			return 0, io.EOF
		}
	}
	b := bs.readBuffer[bs.readPos]
	bs.readPos++
	return b, nil
}

// Read copies buffered bytes into p, filling the buffer first if it has been drained.
// At most one underlying read happens per call: the result may be shorter than p even
// when more bytes are still to come. Callers that need exactly len(p) bytes should go
// through io.ReadFull.
func (bs *BufferedStream) Read(p []byte) (int, error) {
	if bs.readPos == bs.readMax {
		if ok, err := bs.fill(); err != nil {
			return 0, err
		} else if !ok {
			return 0, io.EOF
		}
	}
	n := copy(p, bs.readBuffer[bs.readPos:bs.readMax])
	bs.readPos += n
	return n, nil
}

// PokeByte pushes a single byte back so it will be read next. For this to make sense
// the caller must have just consumed that byte. Poking when the buffer is filled up
// to its left edge returns ErrPokeBufferFull and leaves the buffer untouched.
func (bs *BufferedStream) PokeByte(b byte) error {
	switch {
	case bs.readPos == 0 && bs.readMax == 0:
		bs.readMax = 1
	case bs.readPos == 0:
		return errors.WithStack(ErrPokeBufferFull)
	default:
		bs.readPos--
	}
	bs.readBuffer[bs.readPos] = b
	return nil
}

// EndOfStream reports whether the read side is finished: the buffer is drained and
// the wrapped stream will produce no further bytes. Buffered bytes keep this false
// even when the wrapped stream is already exhausted.
func (bs *BufferedStream) EndOfStream() bool {
	return bs.readPos == bs.readMax && bs.wrapped.EndOfStream()
}

// Write accepts p into the write buffer. When p would overflow the buffer, anything
// already buffered is sent first and p then goes to the wrapped stream as a single
// unbuffered send, preserving order. A write that lands exactly on the buffer
// capacity triggers an immediate send. May block whenever a send is triggered.
//
// When a send in the overflow path fails, nothing of p has been consumed and n is 0;
// previously buffered bytes that could not be sent stay in the buffer. When the
// exact-fill auto-send fails, p has already been accepted into the buffer, so n is
// len(p) and the buffer is left full for a later Flush to retry.
func (bs *BufferedStream) Write(p []byte) (int, error) {
	if len(p)+bs.writeLen > len(bs.writeBuffer) {
		if bs.writeLen > 0 {
			if _, err := bs.wrapped.Write(bs.writeBuffer[:bs.writeLen]); err != nil {
				return 0, err
			}
			bs.writeLen = 0
		}
		if _, err := bs.wrapped.Write(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	copy(bs.writeBuffer[bs.writeLen:], p)
	bs.writeLen += len(p)
	if bs.writeLen == len(bs.writeBuffer) {
		if _, err := bs.wrapped.Write(bs.writeBuffer); err != nil {
			return len(p), err
		}
		bs.writeLen = 0
	}
	return len(p), nil
}

// Flush sends any buffered write bytes to the wrapped stream and, only if the stream
// was constructed with propagateFlush, invokes the wrapped stream's own Flush as
// well. Calling Flush twice in a row is harmless.
func (bs *BufferedStream) Flush() error {
	if bs.writeLen > 0 {
		if _, err := bs.wrapped.Write(bs.writeBuffer[:bs.writeLen]); err != nil {
			return err
		}
		bs.writeLen = 0
	}
	if bs.propagateFlush {
		return bs.wrapped.Flush()
	}
	return nil
}

// Close is the explicit finish operation: it flushes the write buffer and then
// closes the wrapped stream when it is an io.Closer. Calling Close on an already
// closed stream does nothing.
func (bs *BufferedStream) Close() error {
	if bs.closed {
		return nil
	}
	bs.closed = true

	var e error
	if err := bs.Flush(); err != nil {
		e = multierror.Append(e, errors.WithStack(err))
	}
	if c, ok := bs.wrapped.(io.Closer); ok {
		if err := c.Close(); err != nil {
			e = multierror.Append(e, errors.WithStack(err))
		}
	}
	return e
}

// Closed will return true if Close has been called at least once
func (bs *BufferedStream) Closed() bool {
	return bs.closed
}

// Unwrap releases the wrapped stream without flushing or closing anything.
func (bs *BufferedStream) Unwrap() Stream {
	return bs.wrapped
}
