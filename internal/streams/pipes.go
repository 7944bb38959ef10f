package streams

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const pipeBufferSize = 16 * 1024

// pipeData moves bytes from r to w until r is exhausted or either side fails. When
// the writer buffers (a BufferedStream or BufferedConnection), each batch is flushed
// right away so the other side never stalls on bytes stuck in a buffer. The outcome
// (io.EOF on a clean end) is reported on the provided channel.
func pipeData(errs chan<- error, r io.Reader, w io.Writer) {
	buf := make([]byte, pipeBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				errs <- werr
				return
			}
			if f, ok := w.(Flusher); ok {
				if ferr := f.Flush(); ferr != nil {
					errs <- ferr
					return
				}
			}
		}
		if err != nil {
			errs <- err
			return
		}
	}
}

// Try closing a connection and just report to log if it fails
func TryClose(closer io.Closer) {
	if closer == nil {
		return
	}

	if c, ok := closer.(Closed); ok {
		if c.Closed() {
			return
		}
	}

	if err := closer.Close(); err != nil && !strings.Contains(err.Error(), " use of closed network connection") {
		err = errors.WithStack(err)
		log.WithError(err).Errorf("Could not close stream: %v", err)
	}
}

// LogClose will close the given stream and log when closing fails
func LogClose(closer io.Closer) error {
	if closer == nil {
		return nil
	}

	if c, ok := closer.(Closed); ok {
		if c.Closed() {
			return nil
		}
	}

	if err := closer.Close(); err != nil {
		err = errors.WithStack(err)
		log.WithError(err).Errorf("Could not close: %v", err)
		return err
	}
	return nil
}

// PipeData does exactly what the name suggests, it pipes the data both ways -- from one
// reader to the other writer and back. It closes both sides when either direction ends
// or fails. Closing a buffered side flushes it first, so a half-finished transfer does
// not strand bytes in the write buffer.
func PipeData(down io.ReadWriteCloser, up io.ReadWriteCloser) error {
	log.Debugf("Piping data %v <-> %v", down, up)

	downPipe := make(chan error, 1)
	upPipe := make(chan error, 1)

	go pipeData(downPipe, down, up)
	go pipeData(upPipe, up, down)

	select {
	case err := <-downPipe:
		log.Debugf("Closing piped upstream connection due to '%v': %+v", err, up)
		TryClose(up)
		if err != io.EOF {
			log.Debugf("Closing piped downstream connection: %+v", down)
			TryClose(down)
			return err
		}
	case err := <-upPipe:
		log.Debugf("Closing piped downstream connection due to '%v': %+v", err, down)
		TryClose(down)
		if err != io.EOF {
			log.Debugf("Closing piped upstream connection: %+v", up)
			TryClose(up)
			return err
		}
	}
	return nil
}
