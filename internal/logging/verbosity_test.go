package logging

import (
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_SetVerbosity(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	SetVerbosity(nil)
	require.Equal(t, log.PanicLevel, log.GetLevel())
	require.Equal(t, "PANIC", VerbosityName())

	SetVerbosity(make([]bool, 4))
	require.Equal(t, log.InfoLevel, log.GetLevel())
	require.Equal(t, "INFO", VerbosityName())

	// Overshooting the deepest level clamps to trace
	SetVerbosity(make([]bool, 9))
	require.Equal(t, log.TraceLevel, log.GetLevel())
	require.Equal(t, "TRACE", VerbosityName())
}
