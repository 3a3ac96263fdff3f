package cmd

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	_ "github.com/elastic-io/parcel/internal"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/utils"
	"github.com/urfave/cli"
)

func Execute(name, usage, version, commit string) {
	app := cli.NewApp()
	app.Name = name
	app.Usage = usage

	v := []string{version}

	if commit != "" {
		v = append(v, "commit: "+commit)
	}
	v = append(v, "go: "+runtime.Version())
	app.Version = strings.Join(v, "\n")

	root := "/run/parcel"
	xdgDirUsed := false
	xdgRuntimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if xdgRuntimeDir != "" {
		root = xdgRuntimeDir + "/parcel"
		xdgDirUsed = true
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "set the log file to write parcel logs to (default is '/dev/stderr')",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "set  the log level ('DEBUG/debug', 'INFO/info', 'WARN/warn', 'ERROR/error', 'FATAL/fatal')",
		},
		cli.StringFlag{
			Name:  "root",
			Value: root,
			Usage: "root directory for storage of parcel state",
		},
		cli.StringFlag{
			Name:   "backend",
			Value:  "bolt",
			Usage:  "session store backend (bolt, badger, redis, mysql)",
			EnvVar: "PARCEL_BACKEND",
		},
		cli.StringSliceFlag{
			Name:  "mod",
			Value: &cli.StringSlice{"upload"},
			Usage: "api modules to enable",
		},
		cli.IntFlag{
			Name:  "gc-percent",
			Value: 100,
			Usage: "set the garbage collection percent",
		},
		cli.StringFlag{
			Name:  "memory-limit",
			Value: "1G",
			Usage: "set the memory limit",
		},
	}

	app.Commands = []cli.Command{
		runCommand,
		sessionsCommand,
		killCommand,
	}

	app.Before = func(ctx *cli.Context) error {
		if !ctx.IsSet("root") && xdgDirUsed {
			if err := os.MkdirAll(root, 0o700); err != nil {
				_, err = fmt.Fprintln(os.Stderr, "the path in $XDG_RUNTIME_DIR must be writable by the user")
				return err
			}
			if err := os.Chmod(root, os.FileMode(0o700)|os.ModeSticky); err != nil {
				_, err = fmt.Fprintln(os.Stderr, "you should check permission of the path in $XDG_RUNTIME_DIR")
				return err
			}
		}
		log.Init(ctx.String("log"), ctx.String("log-level"))

		limit, err := utils.ParseSize(ctx.String("memory-limit"), "")
		if err != nil {
			return fmt.Errorf("invalid memory-limit: %w", err)
		}
		debug.SetGCPercent(ctx.Int("gc-percent"))
		debug.SetMemoryLimit(int64(limit))
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
