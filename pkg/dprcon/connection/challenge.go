package connection

import (
	"net"

	"github.com/golang/glog"
	"github.com/playnet-public/gorcon-dp/pkg/common"
	"github.com/playnet-public/gorcon-dp/pkg/dprcon/protocol"
)

//negotiateChallenge performs one blocking getchallenge round trip. The
//server may still have command responses in flight when the request goes
//out; those are queued for the next Read instead of being dropped, since
//they carry user-visible output.
func (c *Conn) negotiateChallenge() ([]byte, error) {
	if _, err := c.con.Write(protocol.BuildChallengeRequest()); err != nil {
		return nil, err
	}
	deadline := c.now().Add(c.cfg.ChallengeTimeout)
	buffer := make([]byte, c.cfg.BufferSize)
	for c.now().Before(deadline) {
		if err := c.con.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		n, err := c.con.Read(buffer)
		if err != nil {
			if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
				break
			}
			return nil, err
		}
		resp := protocol.Decode(buffer[:n])
		switch resp.Kind {
		case protocol.PacketKind.Command:
			glog.V(2).Infof("queueing interleaved response during negotiation")
			c.pending = append(c.pending, string(resp.Payload))
		case protocol.PacketKind.Challenge:
			return append([]byte(nil), resp.Payload...), nil
		}
	}
	return nil, common.ErrChallengeTimeout
}
