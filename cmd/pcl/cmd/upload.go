package cmd

import (
	"context"
	"fmt"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/urfave/cli"
)

var uploadCommand = cli.Command{
	Name:      "upload",
	Usage:     "upload a local file in parts",
	ArgsUsage: `<file>`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:   "user, u",
			Value:  "",
			Usage:  "owner id recorded on the upload session",
			EnvVar: "PARCEL_USER",
		},
		cli.StringFlag{
			Name:  "chunk-size",
			Value: "10M",
			Usage: "part size",
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("upload requires exactly one file argument")
		}
		owner := ctx.String("user")
		if owner == "" {
			return fmt.Errorf("--user is required")
		}

		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		done, err := c.UploadFile(context.Background(), ctx.Args().First(), owner)
		if err != nil {
			log.Logger.Error("Upload failed: ", err)
			return err
		}
		fmt.Printf("%s\n%s\n", done.Message, done.Location)
		return nil
	},
}

var statusCommand = cli.Command{
	Name:      "status",
	Usage:     "show an upload session",
	ArgsUsage: `<upload-id>`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key, k",
			Value: "",
			Usage: "object key returned by start-upload",
		},
		cli.StringFlag{
			Name:   "user, u",
			Value:  "",
			Usage:  "owner id of the session",
			EnvVar: "PARCEL_USER",
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("status requires exactly one upload id")
		}
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		s, err := c.Status(context.Background(), ctx.Args().First(), ctx.String("key"), ctx.String("user"))
		if err != nil {
			return err
		}
		data, err := s.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}
