package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/xchunker/internal"
)

var logger = internal.GetLogger("xchunker_cmd")

// returned by a command when this process handed the work to a daemon
var errDaemonized = errors.New("continued in background")

func Main(args []string) error {
	app := newApp()
	newArgs, err := reorderOptions(app, args)
	if err != nil {
		return err
	}
	err = app.Run(newArgs)
	if errno, ok := err.(syscall.Errno); ok && errno == 0 {
		err = nil
	}
	if errors.Is(err, errDaemonized) {
		err = nil
	}
	return err
}

func newApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print version only",
	}
	return &cli.App{
		Name:                 "xchunker",
		Usage:                "Split large files into chunks and merge them back.",
		Version:              internal.Version(),
		Copyright:            "Apache License 2.0",
		HideHelpCommand:      true,
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Before:               setup,
		Commands: []*cli.Command{
			cmdSplit(),
			cmdMerge(),
			cmdList(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "loglevel",
			Usage:   "log level: trace/debug/info/warn/error",
			Value:   "info",
			EnvVars: []string{"XCHUNKER_LOGLEVEL"},
		},
		&cli.StringFlag{
			Name:    "logdir",
			Usage:   "write logs to rotating files in this directory instead of stderr",
			EnvVars: []string{"XCHUNKER_LOGDIR"},
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colors in logs and summaries",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "do not show progress",
		},
		&cli.BoolFlag{
			Name:    "background",
			Aliases: []string{"d"},
			Usage:   "run split or merge in background (requires --logdir)",
		},
	}
}

// setup applies the global flags before any command runs.
func setup(c *cli.Context) error {
	if err := internal.SetLogLevelByName(c.String("loglevel")); err != nil {
		return err
	}
	if c.Bool("no-color") {
		internal.DisableLogColor()
		color.NoColor = true
	}
	internal.SetLogID("[" + strings.SplitN(uuid.NewString(), "-", 2)[0] + "] ")

	if logDir := c.String("logdir"); logDir != "" {
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
		if err := internal.SetOutFile(filepath.Join(logDir, "xchunker.log")); err != nil {
			return err
		}
	}
	return nil
}

// reorderOptions moves global options given after the command name in front
// of it, so "xchunker split -q a.bin" works like "xchunker -q split a.bin".
func reorderOptions(app *cli.App, args []string) ([]string, error) {
	var newArgs = []string{args[0]}
	var others []string
	globalFlags := append(app.Flags, cli.VersionFlag)
	for i := 1; i < len(args); i++ {
		option := args[i]
		if ok, hasValue := isFlag(globalFlags, option); ok {
			newArgs = append(newArgs, option)
			if hasValue {
				i++
				if i >= len(args) {
					return nil, fmt.Errorf("%w: option %s requires value", internal.ErrInvalidArgument, option)
				}
				newArgs = append(newArgs, args[i])
			}
		} else {
			others = append(others, option)
		}
	}
	// no command
	if len(others) == 0 {
		return newArgs, nil
	}
	cmdName := others[0]
	var cmd *cli.Command
	for _, c := range app.Commands {
		if c.HasName(cmdName) {
			cmd = c
			break
		}
	}
	if cmd == nil {
		// can't recognize the command, let cli report it
		return append(newArgs, others...), nil
	}

	newArgs = append(newArgs, cmdName)
	args, others = others[1:], nil
	completing := false
	for _, a := range args {
		if a == "--generate-bash-completion" {
			completing = true
		}
	}
	// -h is valid for all the commands
	cmdFlags := append(cmd.Flags, cli.HelpFlag)
	for i := 0; i < len(args); i++ {
		option := args[i]
		if ok, hasValue := isFlag(cmdFlags, option); ok {
			newArgs = append(newArgs, option)
			if hasValue && len(args[i+1:]) > 0 {
				i++
				newArgs = append(newArgs, args[i])
			}
		} else {
			if strings.HasPrefix(option, "-") && option != "-" && !completing {
				return nil, fmt.Errorf("%w: unknown option: %s", internal.ErrInvalidArgument, option)
			}
			others = append(others, option)
		}
	}
	return append(newArgs, others...), nil
}

func isFlag(flags []cli.Flag, option string) (bool, bool) {
	if !strings.HasPrefix(option, "-") {
		return false, false
	}
	// --q or -quiet work the same
	option = strings.TrimLeft(option, "-")
	for _, flag := range flags {
		_, isBool := flag.(*cli.BoolFlag)
		for _, name := range flag.Names() {
			if option == name || strings.HasPrefix(option, name+"=") {
				return true, !isBool && !strings.Contains(option, "=")
			}
		}
	}
	return false, false
}
