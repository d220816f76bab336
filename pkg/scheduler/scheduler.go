package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	raven "github.com/getsentry/raven-go"
	"github.com/golang/glog"
	"github.com/playnet-public/gorcon-dp/pkg/common"
	"github.com/robfig/cron"
)

//Schedule Object
type Schedule struct {
	Events []Event `json:"schedule"`
}

//Event is one scheduled command, e.g. a nightly "endmatch" or a
//periodic "status" issued over rcon
type Event struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Day     string `json:"day"`
	Hour    string `json:"hour"`
	Minute  string `json:"minute"`
}

//Scheduler executes functions based on a schedule
type Scheduler struct {
	Funcs common.ScheduleFuncs
	Sched Schedule
	cron  *cron.Cron
}

//New returns a new Scheduler instance
func New(sched Schedule, funcs common.ScheduleFuncs) *Scheduler {
	s := &Scheduler{
		Sched: sched,
		Funcs: funcs,
		cron:  cron.New(),
	}
	s.Funcs["scheduler"] = s.scheduleFunc
	return s
}

func (s *Scheduler) scheduleFunc(cmd string) {
	if cmd == "" {
		glog.Errorln("no cmd in scheduleFunc call")
		return
	}
	cmds := strings.Split(cmd, " ")
	switch cmds[0] {
	case "reload":
		if len(cmds) > 1 {
			s.Reload(cmds[1])
		} else {
			s.Reload("")
		}
	case "stop":
		s.Stop()
	}
}

//BuildEvents adds all time events to the Scheduler's cron
func (s *Scheduler) BuildEvents() (err error) {
	defer func() {
		if err != nil {
			raven.CaptureErrorAndWait(err, map[string]string{"app": "gorcon-dp", "module": "scheduler"})
		}
	}()
	for _, event := range s.Sched.Events {
		eventFunc, ok := s.Funcs[event.Type]
		if !ok {
			err = errors.New("no function defined for eventType " + event.Type)
			glog.Errorln(err)
			return
		}
		command := event.Command
		glog.V(2).Infof("Adding Event at %s %s * * %s", event.Minute, event.Hour, event.Day)
		err = s.cron.AddFunc(fmt.Sprintf("0 %s %s * * %s", event.Minute, event.Hour, event.Day), func() {
			eventFunc(command)
		})
		if err != nil {
			return
		}
	}
	return
}

//Start the cron loop
func (s *Scheduler) Start() {
	glog.V(1).Infoln("Starting Scheduler Jobs")
	s.cron.Start()
}

//Stop the cron loop
func (s *Scheduler) Stop() {
	glog.V(1).Infoln("Stopping Scheduler Jobs")
	s.cron.Stop()
}

//Reload the scheduler jobs from file
func (s *Scheduler) Reload(path string) (err error) {
	s.Stop()
	s.cron = cron.New()
	s.Sched, err = ReadSchedule(path)
	if err != nil {
		glog.Errorln(err)
		return
	}
	if err = s.BuildEvents(); err != nil {
		glog.Errorln(err)
		return
	}
	s.Start()
	return
}

//UpdateFuncs merges the passed function sets into the Scheduler
func (s *Scheduler) UpdateFuncs(funcs ...common.ExtFuncs) {
	for _, extF := range funcs {
		for _, f := range extF {
			s.Funcs[f.Key] = f.Func
		}
	}
}

//ReadSchedule json from path and return Schedule
func ReadSchedule(path string) (Schedule, error) {
	if path == "" {
		path = "schedule.json"
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, err
	}
	return parseSchedule(content)
}

func parseSchedule(content []byte) (Schedule, error) {
	schedule := &Schedule{}
	if err := json.Unmarshal(content, schedule); err != nil {
		return Schedule{}, err
	}
	return *schedule, nil
}
