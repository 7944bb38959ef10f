package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ProtoAddress_UnmarshalFlag(t *testing.T) {
	var a ProtoAddress
	require.NoError(t, a.UnmarshalFlag("tcp://127.0.0.1:9000"))
	require.Equal(t, "tcp", a.Network)
	require.Equal(t, "127.0.0.1:9000", a.Address)
	require.Equal(t, "tcp://127.0.0.1:9000", a.String())
}

func Test_ProtoAddress_UnixSocket(t *testing.T) {
	var a ProtoAddress
	require.NoError(t, a.UnmarshalFlag("unix:///var/run/relay.sock"))
	require.Equal(t, "unix", a.Network)
	require.Equal(t, "/var/run/relay.sock", a.Address)
}

func Test_ProtoAddress_Invalid(t *testing.T) {
	var a ProtoAddress
	require.Error(t, a.UnmarshalFlag("127.0.0.1:9000"))
	require.Error(t, a.UnmarshalFlag("udp://127.0.0.1:9000"))
}
