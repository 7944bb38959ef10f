package relay

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/bokysan/bufstream/internal/logging"
	"github.com/bokysan/bufstream/internal/streams"
	"github.com/bokysan/bufstream/internal/util"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command accepts connections on the listen address and forwards them to the connect
// address. Both legs run through buffered streams, so chatty protocols get their
// small packets coalesced on the way through.
type Command struct {
	Listen          util.ProtoAddress `json:"listen"  yaml:"listen"  short:"l" long:"listen"  env:"LISTEN"  required:"true" description:"Address to accept connections on, e.g. 'tcp://:9000'"`
	Connect         util.ProtoAddress `json:"connect" yaml:"connect" short:"u" long:"connect" env:"CONNECT" required:"true" description:"Address to forward connections to, e.g. 'tcp://10.0.0.1:22'"`
	ReadBufferSize  int               `json:"readBufferSize"  yaml:"readBufferSize"  long:"read-buffer-size"  env:"READ_BUFFER_SIZE"  default:"65536" description:"Read buffer capacity, in bytes"`
	WriteBufferSize int               `json:"writeBufferSize" yaml:"writeBufferSize" long:"write-buffer-size" env:"WRITE_BUFFER_SIZE" default:"65536" description:"Write buffer capacity, in bytes"`
}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) String() string {
	return "relay " + c.Listen.String() + "->" + c.Connect.String()
}

//noinspection GoUnusedParameter
func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	ln, err := net.Listen(c.Listen.Network, c.Listen.Address)
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %v", &c.Listen)
	}
	log.Infof("Relaying %v -> %v", &c.Listen, &c.Connect)

	go c.acceptLoop(ln)

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-interrupted
	log.Infof("Graceful shutdown...")

	var e error
	if err := ln.Close(); err != nil {
		e = multierror.Append(e, errors.Wrapf(err, "Could not close listener %v", &c.Listen))
	}
	return e
}

func (c *Command) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.WithError(err).Debugf("Listener closed: %v", err)
			return
		}
		log.Debugf("Accepted connection from %v", conn.RemoteAddr())
		go c.forward(conn)
	}
}

// forward pumps one accepted connection to and from a fresh upstream connection.
// Flushes are propagated so that batches relayed downstream leave the buffers as
// soon as the upstream pauses.
func (c *Command) forward(conn net.Conn) {
	down := streams.NewBufferedConnectionSize(conn, c.ReadBufferSize, c.WriteBufferSize, true)

	upstreamConn, err := net.Dial(c.Connect.Network, c.Connect.Address)
	if err != nil {
		log.WithError(err).Errorf("Could not connect to %v: %v", &c.Connect, err)
		streams.TryClose(down)
		return
	}
	up := streams.NewBufferedConnectionSize(upstreamConn, c.ReadBufferSize, c.WriteBufferSize, true)

	if err := streams.PipeData(down, up); err != nil {
		log.WithError(err).Errorf("Relay %v <-> %v failed: %v", conn.RemoteAddr(), &c.Connect, err)
	}
	streams.TryClose(down)
	streams.TryClose(up)
}
