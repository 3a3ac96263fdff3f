package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/elastic-io/parcel/internal/client"
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

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "set the log file to write pcl logs to (default is '/dev/stderr')",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "set  the log level ('DEBUG/debug', 'INFO/info', 'WARN/warn', 'ERROR/error', 'FATAL/fatal')",
		},
		cli.StringFlag{
			Name:   "endpoint",
			Value:  "http://127.0.0.1:3000",
			Usage:  "set the endpoint of the parcel server",
			EnvVar: "PARCEL_SERVER",
		},
		cli.StringFlag{
			Name:   "username",
			Value:  "",
			Usage:  "basic auth username",
			EnvVar: "PARCEL_USERNAME",
		},
		cli.StringFlag{
			Name:   "password",
			Value:  "",
			Usage:  "basic auth password",
			EnvVar: "PARCEL_PASSWORD",
		},
	}

	app.Commands = []cli.Command{
		uploadCommand,
		statusCommand,
	}

	app.Before = func(ctx *cli.Context) error {
		log.Init(ctx.String("log"), ctx.String("log-level"))
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient(ctx *cli.Context) (*client.Client, error) {
	opts := []client.Option{}
	if s := ctx.String("chunk-size"); s != "" {
		size, err := utils.ParseSize(s, "")
		if err != nil {
			return nil, fmt.Errorf("invalid chunk-size: %w", err)
		}
		opts = append(opts, client.WithChunkSize(size))
	}
	if u := ctx.GlobalString("username"); u != "" {
		opts = append(opts, client.WithBasicAuth(u, ctx.GlobalString("password")))
	}
	return client.New(strings.TrimSuffix(ctx.GlobalString("endpoint"), "/"), opts...), nil
}
