package connection

import (
	"net"
	"time"

	"github.com/golang/glog"
	"github.com/playnet-public/gorcon-dp/pkg/common"
	"github.com/playnet-public/gorcon-dp/pkg/dprcon/protocol"
)

const (
	//DefaultBufferSize is the receive buffer applied when none is configured
	DefaultBufferSize = 32768
	//DefaultTimeout bounds socket reads and, unless overridden, challenge negotiation
	DefaultTimeout = 10 * time.Second
)

//Config contains all data required to reach a DarkPlaces server
type Config struct {
	Addr     *net.UDPAddr
	Password string
	Mode     protocol.Mode

	BufferSize       int
	Timeout          time.Duration
	ChallengeTimeout time.Duration
}

//Conn to a DarkPlaces server. A Conn exclusively owns its UDP socket for
//the connected lifetime and is meant for single-threaded use; callers
//multiplex readability via Socket() instead of sharing the Conn.
type Conn struct {
	cfg Config

	con socket
	udp *net.UDPConn

	pending []string
	now     func() time.Time
}

//New creates an unconnected Conn with defaults applied
func New(cfg Config) *Conn {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ChallengeTimeout <= 0 {
		cfg.ChallengeTimeout = cfg.Timeout
	}
	return &Conn{
		cfg: cfg,
		now: time.Now,
	}
}

//Connected reports whether the Conn owns an open socket
func (c *Conn) Connected() bool {
	return c.con != nil
}

//Connect opens the udp connection
func (c *Conn) Connect() error {
	if c.Connected() {
		return common.ErrAlreadyConnected
	}
	if c.cfg.Addr == nil {
		return common.ErrNoAddress
	}
	udp, err := net.DialUDP("udp", nil, c.cfg.Addr)
	if err != nil {
		return err
	}
	c.udp = udp
	c.con = udp
	glog.V(1).Infof("connected to %v from %v", c.cfg.Addr, udp.LocalAddr())
	return nil
}

//Disconnect releases the socket
func (c *Conn) Disconnect() error {
	if !c.Connected() {
		return common.ErrConnectionRequired
	}
	err := c.con.Close()
	c.con = nil
	c.udp = nil
	return err
}

//Close tears the Conn down best-effort. Unlike Disconnect it swallows
//the not-connected case so deferred teardown never fails.
func (c *Conn) Close() error {
	if err := c.Disconnect(); err != nil && err != common.ErrConnectionRequired {
		return err
	}
	return nil
}

//Send authenticates and writes all passed commands as one datagram,
//each command framed as its own packet, joined by a single NUL byte.
//In ModeChallenge one fresh challenge is negotiated per call and shared
//by every command of the call.
func (c *Conn) Send(commands ...string) error {
	if !c.Connected() {
		return common.ErrConnectionRequired
	}
	var challenge []byte
	if c.cfg.Mode == protocol.ModeChallenge {
		var err error
		challenge, err = c.negotiateChallenge()
		if err != nil {
			return err
		}
	}
	packets := make([][]byte, 0, len(commands))
	for _, cmd := range commands {
		packet, err := protocol.BuildCommandPacket(c.cfg.Mode, c.cfg.Password, challenge, cmd)
		if err != nil {
			return err
		}
		packets = append(packets, packet)
	}
	_, err := c.con.Write(protocol.JoinPackets(packets...))
	return err
}

//Read returns the next command response. Responses queued while waiting
//for a challenge are drained before the socket is touched again. A read
//deadline that elapses without data surfaces as common.ErrTimeout for
//the caller to treat as "no data yet"; unrecognized datagrams yield an
//empty string, not an error.
func (c *Conn) Read() (string, error) {
	if !c.Connected() {
		return "", common.ErrConnectionRequired
	}
	if len(c.pending) > 0 {
		r := c.pending[0]
		c.pending = c.pending[1:]
		return r, nil
	}
	buffer := make([]byte, c.cfg.BufferSize)
	if err := c.con.SetReadDeadline(c.now().Add(c.cfg.Timeout)); err != nil {
		return "", err
	}
	n, err := c.con.Read(buffer)
	if err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return "", common.ErrTimeout
		}
		return "", err
	}
	resp := protocol.Decode(buffer[:n])
	if resp.Kind != protocol.PacketKind.Command {
		glog.V(2).Infof("dropping unrecognized datagram (%d bytes)", n)
		return "", nil
	}
	return string(resp.Payload), nil
}

//LocalAddress returns the local ephemeral endpoint as "host:port"
func (c *Conn) LocalAddress() (string, error) {
	if !c.Connected() {
		return "", common.ErrConnectionRequired
	}
	return c.con.LocalAddr().String(), nil
}

//Socket exposes the underlying UDP socket so interactive callers can
//multiplex its readability together with other input sources
func (c *Conn) Socket() *net.UDPConn {
	return c.udp
}

//Mode returns the configured authentication mode
func (c *Conn) Mode() protocol.Mode {
	return c.cfg.Mode
}

//Timeout returns the configured read timeout
func (c *Conn) Timeout() time.Duration {
	return c.cfg.Timeout
}

//SetTimeout changes the read timeout, effective from the next operation
func (c *Conn) SetTimeout(d time.Duration) {
	c.cfg.Timeout = d
}

//BufferSize returns the configured receive buffer size
func (c *Conn) BufferSize() int {
	return c.cfg.BufferSize
}

//SetBufferSize changes the receive buffer size, effective from the next read
func (c *Conn) SetBufferSize(n int) {
	c.cfg.BufferSize = n
}

//ChallengeTimeout returns the negotiation window, independent from Timeout
func (c *Conn) ChallengeTimeout() time.Duration {
	return c.cfg.ChallengeTimeout
}

//SetChallengeTimeout changes the negotiation window
func (c *Conn) SetChallengeTimeout(d time.Duration) {
	c.cfg.ChallengeTimeout = d
}
