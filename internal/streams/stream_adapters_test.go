package streams

import (
	"io"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type readWriter struct {
	io.Reader
	io.Writer
}

func Test_ReaderWriterStream_EndOfStream(t *testing.T) {
	rw := &readWriter{Reader: strings.NewReader("abc"), Writer: ioutil.Discard}
	s := NewReaderWriterStream(rw)

	require.False(t, s.EndOfStream())

	data, err := ioutil.ReadAll(s)
	require.NoError(t, err)
	require.Equal(t, "abc", string(data))
	require.True(t, s.EndOfStream())

	_, err = s.Read(make([]byte, 1))
	require.Equal(t, io.EOF, err)
}

func Test_ReaderWriterStream_NoDoubleWrap(t *testing.T) {
	rw := &readWriter{Reader: strings.NewReader(""), Writer: ioutil.Discard}

	s1 := NewReaderWriterStream(rw)
	s2 := NewReaderWriterStream(s1)
	require.Same(t, s1, s2)
}

func Test_ReaderWriterStream_Close(t *testing.T) {
	f, err := ioutil.TempFile("", "test")
	require.NoErrorf(t, err, "Could not create temp file: %v", err)
	defer os.Remove(f.Name())

	s := NewReaderWriterStream(f)
	require.False(t, s.Closed(), "Stream is closed when it shouldn't be!")

	err = s.Close()
	require.NoErrorf(t, err, "Could not close stream: %v", err)
	require.True(t, s.Closed(), "Stream is not closed!")

	err = s.Close()
	require.NoErrorf(t, err, "Error when retrying close stream: %v", err)

	require.EqualError(t, f.Close(), "close "+f.Name()+": file already closed", "File is not closed!")
}
