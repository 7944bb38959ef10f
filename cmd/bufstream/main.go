package main

import (
	"fmt"
	"github.com/bokysan/bufstream/internal/args"
	"github.com/bokysan/bufstream/internal/commands/relay"
	"github.com/bokysan/bufstream/internal/commands/version"
	bsFlags "github.com/bokysan/bufstream/internal/flags"
	"github.com/bokysan/bufstream/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"os"
	"path"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// BufStream is the main executable
type BufStream struct {
	parser *flags.Parser
}

// NewBufStream will create a new instance of BufStream and initialize the parser
func NewBufStream() *BufStream {
	executableFilename := os.Args[0]
	executablePath := path.Base(executableFilename)

	bs := &BufStream{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	bs.setupGeneral()
	bs.setupVersion()
	bs.setupRelay()

	return bs
}

// setupGeneral will configure general options
func (bs *BufStream) setupGeneral() {
	if _, err := bs.parser.AddGroup("General", "General options", &args.General); err != nil {
		err = errors.WithStack(err)
		util.MustErrorNilOrExit(err)
	}
}

// setupVersion adds the `version` command
func (bs *BufStream) setupVersion() {
	cmd := &version.Command{}
	_, err := bs.parser.AddCommand(
		"version",
		"Print the version",
		"Print the application version and exit",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupRelay adds the `relay` command
func (bs *BufStream) setupRelay() {
	cmd := relay.NewCommand()
	_, err := bs.parser.AddCommand(
		"relay",
		"Run the relay",
		"Accept connections and forward them through buffered streams",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// main starts bufstream and reads the configuration file
func main() {

	bufStream := NewBufStream()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			message := fmt.Sprintf("Configuration file %s does not exist.", file)
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: message,
			})
		}

		yamlParser := bsFlags.NewYamlParser(bufStream.parser)

		args.General.ConfigurationFilePath = file
		return yamlParser.ParseFile(file)
	}

	_, err := bufStream.parser.Parse()
	util.MustErrorNilOrExit(err)

}
