package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/xchunker/internal"
	"github.com/zhengshuai-xiao/xchunker/pkg/daemon"
)

func concurrencyFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "concurrency",
		Aliases: []string{"c"},
		Value:   internal.DefaultConcurrency,
		Usage:   "number of chunks read or written at the same time",
		EnvVars: []string{"XCHUNKER_CONCURRENCY"},
	}
}

// loadConfig builds the config from the flags the running command defines;
// flags it does not define keep their defaults.
func loadConfig(c *cli.Context) (*internal.Config, error) {
	conf := internal.NewConfig()
	var err error
	if s := c.String("chunk-size"); s != "" {
		if conf.ChunkSize, err = internal.ParseSize(s); err != nil {
			return nil, fmt.Errorf("--chunk-size: %w", err)
		}
	}
	if s := c.String("buffer-size"); s != "" {
		if conf.BufferSize, err = internal.ParseSize(s); err != nil {
			return nil, fmt.Errorf("--buffer-size: %w", err)
		}
	}
	if c.IsSet("concurrency") || c.Int("concurrency") != 0 {
		conf.Concurrency = c.Int("concurrency")
	}
	conf.OutputDir = c.String("output")
	conf.Cleanup = c.Bool("cleanup")
	conf.Quiet = c.Bool("quiet")

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	logger.Debugf("config: %+v", *conf)
	return conf, nil
}

// handleBackgroundMode daemonizes the process when --background is set. It
// returns errDaemonized in the parent, which must then stop. In the child it
// returns a release func that removes the pid file when the command ends.
func handleBackgroundMode(c *cli.Context) (func(), error) {
	nop := func() {}
	child := daemon.IsChild()
	if !child && !c.Bool("background") {
		return nop, nil
	}

	logDir := c.String("logdir")
	if logDir == "" {
		return nop, fmt.Errorf("%w: --logdir must be specified when running in background mode", internal.ErrInvalidArgument)
	}
	pidFile := filepath.Join(logDir, "xchunker.pid")
	if !child {
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nop, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
		if err := daemon.CheckPidFile(pidFile); err != nil {
			return nop, err
		}
	}

	// the child must not fork again
	var childArgs []string
	for _, arg := range os.Args {
		if arg != "--background" && arg != "-d" && arg != "-background" && arg != "--d" {
			childArgs = append(childArgs, arg)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return nop, fmt.Errorf("failed to get working directory: %w", err)
	}

	d := daemon.New(pidFile, filepath.Join(logDir, "xchunker.out"), wd, childArgs)
	proc, err := d.Start()
	if err != nil {
		return nop, fmt.Errorf("unable to run in background: %w", err)
	}
	if proc != nil {
		logger.Infof("%s continues in background with pid %d, logs in %s", c.Command.Name, proc.Pid, logDir)
		return nop, errDaemonized
	}
	return func() {
		if err := d.Release(); err != nil {
			logger.Warnf("failed to remove pid file %s: %v", pidFile, err)
		}
	}, nil
}
