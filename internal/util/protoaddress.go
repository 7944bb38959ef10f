package util

import (
	"strings"

	"github.com/pkg/errors"
)

// ProtoAddress is a network endpoint in the `<network>://<address>` form, e.g.
// 'tcp://192.168.8.1:22' or 'unix:///var/run/relay.sock'. It knows how to parse
// itself from a command line flag.
type ProtoAddress struct {
	Network string `json:"network" yaml:"network"`
	Address string `json:"address" yaml:"address"`
}

func (p *ProtoAddress) String() string {
	return p.Network + "://" + p.Address
}

// UnmarshalFlag parses the `<network>://<address>` notation used on the command line.
func (p *ProtoAddress) UnmarshalFlag(value string) error {
	parts := strings.SplitN(value, "://", 2)
	if len(parts) != 2 {
		return errors.Errorf("invalid address %q, expecting <network>://<address>", value)
	}

	switch parts[0] {
	case "tcp", "tcp4", "tcp6", "unix", "unixpacket":
	default:
		return errors.Errorf("unsupported network %q in address %q", parts[0], value)
	}

	p.Network = parts[0]
	p.Address = parts[1]
	return nil
}

// MarshalFlag renders the address back into its command line form.
func (p ProtoAddress) MarshalFlag() (string, error) {
	return p.String(), nil
}
