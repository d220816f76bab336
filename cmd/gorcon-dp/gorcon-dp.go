package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	raven "github.com/getsentry/raven-go"
	"github.com/golang/glog"
	"github.com/kolide/kit/version"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/playnet-public/gorcon-dp/pkg/api"
	"github.com/playnet-public/gorcon-dp/pkg/common"
	"github.com/playnet-public/gorcon-dp/pkg/dprcon/connection"
	"github.com/playnet-public/gorcon-dp/pkg/dprcon/protocol"
	"github.com/playnet-public/gorcon-dp/pkg/rcon"
	"github.com/playnet-public/gorcon-dp/pkg/scheduler"
)

const (
	app                 = "PlayNet GoRcon-DP - OpenSource DarkPlaces Remote Console"
	appKey              = "gorcon-dp"
	parameterMaxprocs   = "maxprocs"
	parameterConfigPath = "configPath"
	parameterDevBuild   = "devbuild"
)

var (
	maxprocsPtr   = flag.Int(parameterMaxprocs, runtime.NumCPU(), "max go procs")
	configPathPtr = flag.String(parameterConfigPath, ".", "config parent folder")
	devBuildPtr   = flag.Bool(parameterDevBuild, false, "set dev build mode")
	versionPtr    = flag.Bool("version", true, "show or hide version info")
	dbgPtr        = flag.Bool("debug", false, "debug printing")
)

var cfg *viper.Viper

func main() {
	flag.Parse()

	if *versionPtr {
		fmt.Printf("-- PlayNet %s --\n", app)
		version.PrintFull()
	}
	runtime.GOMAXPROCS(*maxprocsPtr)

	// prepare glog
	defer glog.Flush()
	glog.CopyStandardLogTo("info")

	var zapFields []zapcore.Field
	// hide app and version information when debugging
	if !*dbgPtr {
		zapFields = []zapcore.Field{
			zap.String("app", appKey),
			zap.String("version", version.Version().Version),
		}
	}

	// prepare zap logging
	log := newLogger(*dbgPtr).With(zapFields...)
	defer log.Sync()
	log.Info("preparing")

	raven.CapturePanicAndWait(func() {
		if err := do(log); err != nil {
			raven.CaptureErrorAndWait(err, map[string]string{"isFinal": "true"})
			glog.Fatal(err)
		}
	}, nil)
}

func do(log *zap.Logger) (err error) {
	cfg = getConfig()

	if !*devBuildPtr {
		raven.SetDSN(cfg.GetString("playnet.sentry"))
		raven.SetIncludePaths([]string{
			"github.com/playnet-public/gorcon-dp/pkg/",
		})
		raven.SetRelease(version.Version().Version)
	}

	con, err := newConnection()
	if err != nil {
		return err
	}
	client := newClient(con)

	log.Info("connecting", zap.String("server", cfg.GetString("server.ip")+":"+cfg.GetString("server.port")))
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Disconnect()

	local, err := client.LocalAddress()
	if err != nil {
		return err
	}
	glog.Infoln("Connected! Local address:", local)

	// a short read timeout keeps the console poll loop responsive
	con.SetTimeout(cfg.GetDuration("console.poll"))

	if cfg.GetBool("scheduler.enabled") {
		sched, err := newScheduler(client)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	if cfg.GetBool("api.enabled") {
		a := api.New(log, client, cfg.GetString("api.addr"))
		go func() {
			if err := a.Run(); err != nil {
				log.Error("api exited", zap.Error(err))
			}
		}()
	}

	// ask for initial server state, as players expect from the console
	if err := client.Exec("status"); err != nil {
		return err
	}

	return console(client)
}

func newConnection() (*connection.Conn, error) {
	secure := cfg.GetInt("server.secure")
	mode, err := parseMode(secure)
	if err != nil {
		return nil, err
	}

	addr, err := net.ResolveUDPAddr("udp", cfg.GetString("server.ip")+":"+cfg.GetString("server.port"))
	if err != nil {
		glog.Errorln("Could not resolve server IP and Port")
		return nil, err
	}

	return connection.New(connection.Config{
		Addr:             addr,
		Password:         cfg.GetString("server.password"),
		Mode:             mode,
		BufferSize:       cfg.GetInt("server.bufferSize"),
		Timeout:          cfg.GetDuration("server.timeout"),
		ChallengeTimeout: cfg.GetDuration("server.challengeTimeout"),
	}), nil
}

//parseMode maps the rcon_secure cvar value onto an authentication mode
func parseMode(secure int) (protocol.Mode, error) {
	switch secure {
	case 0:
		return protocol.ModeInsecure, nil
	case 1:
		return protocol.ModeTime, nil
	case 2:
		return protocol.ModeChallenge, nil
	}
	return 0, common.ErrUnknownMode
}

//newClient binds the connection into the generic client. The connection
//is single threaded; console, scheduler and api all funnel through this
//guard instead of sharing the Conn directly.
func newClient(con *connection.Conn) *rcon.Client {
	var mu sync.Mutex
	return rcon.NewClient(
		con.Connect,
		con.Close,
		func(cmds ...string) error {
			mu.Lock()
			defer mu.Unlock()
			return con.Send(cmds...)
		},
		func() (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return con.Read()
		},
		func() (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return con.LocalAddress()
		},
	)
}

//console runs the interactive loop: user input goes out as commands,
//responses are printed above the prompt as they arrive
func console(client *rcon.Client) error {
	rl, err := readline.New("rcon> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	quit := make(chan error, 2)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			s, err := client.Read()
			if err == common.ErrTimeout {
				continue
			}
			if err != nil {
				quit <- err
				return
			}
			printResponse(rl, s)
		}
	}()

	go func() {
		for {
			line, err := rl.Readline()
			if err != nil {
				// io.EOF or interrupt closes the console
				quit <- nil
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if err := client.Exec(line); err != nil {
				quit <- err
				return
			}
		}
	}()

	return <-quit
}

func printResponse(rl *readline.Instance, s string) {
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			continue
		}
		fmt.Fprintf(rl.Stdout(), "> %s\n", line)
	}
}

func newScheduler(client *rcon.Client) (*scheduler.Scheduler, error) {
	schedule, err := scheduler.ReadSchedule(cfg.GetString("scheduler.path"))
	if err != nil {
		return nil, err
	}
	funcs := make(common.ScheduleFuncs)
	funcs["log"] = func(cmd string) { glog.Infoln(cmd) }
	sched := scheduler.New(schedule, funcs)
	sched.UpdateFuncs(client.ExtFuncs())
	if err := sched.BuildEvents(); err != nil {
		return nil, err
	}
	return sched, nil
}

func getConfig() *viper.Viper {
	cfg := viper.New()
	cfg.SetConfigName("config")
	cfg.AddConfigPath(*configPathPtr)

	cfg.SetDefault("server.ip", "127.0.0.1")
	cfg.SetDefault("server.port", "26000")
	cfg.SetDefault("server.secure", 2)
	cfg.SetDefault("server.timeout", 10*time.Second)
	cfg.SetDefault("server.challengeTimeout", 10*time.Second)
	cfg.SetDefault("console.poll", 500*time.Millisecond)
	cfg.SetDefault("api.addr", "127.0.0.1:8080")

	glog.V(1).Infof("Reading Config")

	err := cfg.ReadInConfig()
	if err != nil {
		message := fmt.Sprintf("Loading Config failed with Error: %v", err.Error())
		glog.Errorln(message)
		panic(message)
	}
	return cfg
}

//TODO: Move this to playnet common libs
func newLogger(dbg bool) *zap.Logger {
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl < zapcore.ErrorLevel
	})

	consoleDebugging := zapcore.Lock(os.Stdout)
	consoleErrors := zapcore.Lock(os.Stderr)
	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, consoleErrors, highPriority),
		zapcore.NewCore(consoleEncoder, consoleDebugging, lowPriority),
	)
	logger := zap.New(core)
	if dbg {
		logger = logger.WithOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	} else {
		logger = logger.WithOptions(
			zap.AddStacktrace(zap.FatalLevel),
		)
	}
	return logger
}
