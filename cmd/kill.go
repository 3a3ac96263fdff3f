package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/utils"
	"github.com/urfave/cli"
	"golang.org/x/sys/unix"
)

var killCommand = cli.Command{
	Name:      "kill",
	Usage:     "send a signal to a running parcel server",
	ArgsUsage: `[signal]`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "pid-file",
			Value: "",
			Usage: "pid file path (default is <root>/parcel.pid)",
		},
	},
	Action: func(ctx *cli.Context) error {
		if err := checkArgs(ctx, 1, maxArgs); err != nil {
			return err
		}

		sigstr := ctx.Args().First()
		if sigstr == "" {
			sigstr = "SIGTERM"
		}
		signal, err := ParseSignal(sigstr)
		if err != nil {
			return err
		}

		pidFile := ctx.String("pid-file")
		if pidFile == "" {
			pidFile = filepath.Join(ctx.GlobalString("root"), "parcel.pid")
		}
		pid, err := utils.ReadPidFile(pidFile)
		if err != nil {
			return fmt.Errorf("read pid file: %w", err)
		}

		log.Logger.Info("Sending ", unix.SignalName(signal), " to parcel pid ", pid)
		return unix.Kill(pid, signal)
	},
}

func ParseSignal(rawSignal string) (unix.Signal, error) {
	s, err := strconv.Atoi(rawSignal)
	if err == nil {
		return unix.Signal(s), nil
	}
	sig := strings.ToUpper(rawSignal)
	if !strings.HasPrefix(sig, "SIG") {
		sig = "SIG" + sig
	}
	signal := unix.SignalNum(sig)
	if signal == 0 {
		return -1, fmt.Errorf("unknown signal %q", rawSignal)
	}
	return signal, nil
}
