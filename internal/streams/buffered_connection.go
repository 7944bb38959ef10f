package streams

import (
	"net"
	"time"
)

// BufferedConnection is a drop-in replacement for a net.Conn that runs all reads and
// writes through a BufferedStream. Writes are coalesced, so a caller that needs the
// bytes on the wire must Flush (or Close) -- the raw connection's "write means send"
// behaviour does not hold here.
type BufferedConnection struct {
	conn   net.Conn
	stream *BufferedStream
}

// NewBufferedConnection wraps the connection with the default 64k buffers.
func NewBufferedConnection(c net.Conn, propagateFlush bool) *BufferedConnection {
	return NewBufferedConnectionSize(c, ReadBufferSize, WriteBufferSize, propagateFlush)
}

// NewBufferedConnectionSize wraps the connection with buffers of explicit capacities.
func NewBufferedConnectionSize(c net.Conn, readSize, writeSize int, propagateFlush bool) *BufferedConnection {
	return &BufferedConnection{
		conn:   c,
		stream: NewBufferedStreamSize(NewReaderWriterStream(c), readSize, writeSize, propagateFlush),
	}
}

func (bc *BufferedConnection) Read(p []byte) (n int, err error) {
	return bc.stream.Read(p)
}

func (bc *BufferedConnection) ReadByte() (byte, error) {
	return bc.stream.ReadByte()
}

// PokeByte pushes the last consumed byte back so the next read returns it again.
func (bc *BufferedConnection) PokeByte(b byte) error {
	return bc.stream.PokeByte(b)
}

func (bc *BufferedConnection) Write(p []byte) (n int, err error) {
	return bc.stream.Write(p)
}

// Flush pushes any buffered write bytes down to the connection.
func (bc *BufferedConnection) Flush() error {
	return bc.stream.Flush()
}

// EndOfStream reports whether the buffer is drained and the connection has hit EOF.
func (bc *BufferedConnection) EndOfStream() bool {
	return bc.stream.EndOfStream()
}

// Close flushes buffered writes and closes the connection. It can be called safely
// multiple times.
func (bc *BufferedConnection) Close() error {
	return bc.stream.Close()
}

// Closed will return true if Close has been called at least once
func (bc *BufferedConnection) Closed() bool {
	return bc.stream.Closed()
}

func (bc *BufferedConnection) LocalAddr() net.Addr {
	return bc.conn.LocalAddr()
}

func (bc *BufferedConnection) RemoteAddr() net.Addr {
	return bc.conn.RemoteAddr()
}

func (bc *BufferedConnection) SetDeadline(t time.Time) error {
	return bc.conn.SetDeadline(t)
}

func (bc *BufferedConnection) SetReadDeadline(t time.Time) error {
	return bc.conn.SetReadDeadline(t)
}

func (bc *BufferedConnection) SetWriteDeadline(t time.Time) error {
	return bc.conn.SetWriteDeadline(t)
}

// Unwrap returns the wrapped net.Conn
func (bc *BufferedConnection) Unwrap() net.Conn {
	return bc.conn
}
