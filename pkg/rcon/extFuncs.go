package rcon

import (
	"github.com/golang/glog"
	"github.com/playnet-public/gorcon-dp/pkg/common"
)

//ExtFuncs returns functions to be externally exposed
func (c *Client) ExtFuncs() common.ExtFuncs {
	f := common.NewExtFunc("rcon", c.extFunc())
	return common.NewExtFuncs(f)
}

func (c *Client) extFunc() common.ScheduleFunc {
	return func(cmd string) {
		if err := c.Exec(cmd); err != nil {
			glog.Errorln("scheduled rcon command failed:", err)
		}
	}
}
