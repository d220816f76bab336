package rcon

type connect func() error
type disconnect func() error
type exec func(cmds ...string) error
type read func() (string, error)
type localAddress func() (string, error)

//Client implements an abstract rcon client object. The concrete
//connection is bound in through plain functions so consumers
//(scheduler, api, cmd) never depend on the protocol packages.
type Client struct {
	Connect      connect
	Disconnect   disconnect
	Exec         exec
	Read         read
	LocalAddress localAddress
}

//NewClient returns an abstract rcon client
func NewClient(
	connect connect,
	disconnect disconnect,
	exec exec,
	read read,
	localAddress localAddress,
) *Client {
	c := new(Client)
	c.Connect = connect
	c.Disconnect = disconnect
	c.Exec = exec
	c.Read = read
	c.LocalAddress = localAddress
	return c
}
