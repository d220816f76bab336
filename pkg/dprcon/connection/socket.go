package connection

import (
	"net"
	"time"
)

//socket is the subset of *net.UDPConn the connection relies on.
//Tests script it to drive the negotiation loop without a live server.
type socket interface {
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
	LocalAddr() net.Addr
	SetReadDeadline(t time.Time) error
}
