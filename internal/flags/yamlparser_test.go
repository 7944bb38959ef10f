package flags

import (
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
	"testing"
)

var Relay struct {
	Listen          string `long:"listen" yaml:"listen"`
	WriteBufferSize int    `long:"write-buffer-size" yaml:"writeBufferSize"`
}

func Test_EmptyParse(t *testing.T) {
	file := "testdata/empty.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)
	err := yamlParser.ParseFile(file)

	require.NoErrorf(t, err, "Parsing not successful: %v", file)
}

func Test_RelayParse(t *testing.T) {
	file := "testdata/relay.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	data := &Relay
	_, err := parser.AddCommand("relay", "Relay", "Relay options", data)
	require.NoErrorf(t, err, "Could not add relay command")

	err = yamlParser.ParseFile(file)
	require.NoErrorf(t, err, "Parsing not successful: %v", file)

	require.Equal(t, "tcp://:9000", data.Listen, "Invalid reading of string value")
	require.Equal(t, 4096, data.WriteBufferSize, "Invalid reading of integer value")
}

func Test_InvalidNoCommand(t *testing.T) {
	file := "testdata/invalid_no_command.yml"

	parser := flags.NewNamedParser("yaml-test", flags.HelpFlag|flags.PrintErrors)
	yamlParser := NewYamlParser(parser)

	_, err := parser.AddCommand("relay", "Relay", "Relay options", &Relay)
	require.NoErrorf(t, err, "Could not add relay command")

	err = yamlParser.ParseFile(file)
	require.Errorf(t, err, "Parsing not successful, expected error but did not get one: %v", file)
}
