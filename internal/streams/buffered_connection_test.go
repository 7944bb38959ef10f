package streams

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_BufferedConnection_WriteCoalesced(t *testing.T) {
	client, server := net.Pipe()
	bc := NewBufferedConnectionSize(client, 8, 8, false)

	go func() {
		_, _ = bc.Write([]byte("he"))
		_, _ = bc.Write([]byte("llo"))
		_ = bc.Flush()
		_ = bc.Close()
	}()

	// Both writes arrive as a single send
	buf := make([]byte, 16)
	n, err := server.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))

	_, err = server.Read(buf)
	require.Equal(t, io.EOF, err)
	require.NoError(t, server.Close())
}

func Test_BufferedConnection_ReadAndPoke(t *testing.T) {
	client, server := net.Pipe()
	bc := NewBufferedConnectionSize(client, 8, 8, false)
	defer TryClose(bc)

	go func() {
		_, _ = server.Write([]byte("ab"))
		_ = server.Close()
	}()

	b, err := bc.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('a'), b)

	require.NoError(t, bc.PokeByte('z'))

	buf := make([]byte, 4)
	n, err := bc.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "zb", string(buf[:n]))

	_, err = bc.ReadByte()
	require.Equal(t, io.EOF, err)
	require.True(t, bc.EndOfStream())
}

func Test_BufferedConnection_CloseFlushes(t *testing.T) {
	client, server := net.Pipe()
	bc := NewBufferedConnectionSize(client, 8, 8, false)

	go func() {
		_, _ = bc.Write([]byte("bye"))
		_ = bc.Close()
	}()

	buf := make([]byte, 16)
	n, err := server.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "bye", string(buf[:n]))

	_, err = server.Read(buf)
	require.Equal(t, io.EOF, err)
	require.NoError(t, server.Close())
}
