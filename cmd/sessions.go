package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/elastic-io/parcel/internal/options"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/urfave/cli"
)

const formatOptions = `table or json`

var sessionsCommand = cli.Command{
	Name:      "sessions",
	Usage:     "lists upload sessions recorded in the session store",
	ArgsUsage: ``,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:   "data, d",
			Value:  "./data",
			Usage:  "Data directory for embedded session stores",
			EnvVar: "PARCEL_DATA_DIR",
		},
		cli.StringFlag{
			Name:   "dsn",
			Value:  "",
			Usage:  "Connection string for redis or mysql session stores",
			EnvVar: "PARCEL_STORE_DSN",
		},
		cli.StringFlag{
			Name:  "status, s",
			Value: "",
			Usage: "only show sessions in this status (initiated, in_progress, completed)",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: "table",
			Usage: `select one of: ` + formatOptions,
		},
	},
	Action: func(ctx *cli.Context) error {
		if err := checkArgs(ctx, 0, exactArgs); err != nil {
			return err
		}

		status := types.Status(ctx.String("status"))
		if status != "" && !status.Valid() {
			return fmt.Errorf("unknown status %q", status)
		}

		opts := &options.Options{
			DataDir:  ctx.String("data"),
			Backend:  ctx.GlobalString("backend"),
			StoreDSN: ctx.String("dsn"),
		}
		if err := opts.Validate(); err != nil {
			return err
		}
		store, err := storage.NewStorage(opts.Backend, opts.StoreSource())
		if err != nil {
			return err
		}
		defer store.Close()

		c, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		sessions, err := store.List(c)
		if err != nil {
			return err
		}
		sessions = filterSessions(sessions, status)

		switch ctx.String("format") {
		case "table":
			return printTable(os.Stdout, sessions, time.Now())
		case "json":
			return printJSON(os.Stdout, sessions)
		default:
			return fmt.Errorf("invalid format option, must be " + formatOptions)
		}
	},
}

// filterSessions 按状态过滤并按创建时间排序
func filterSessions(sessions []*types.UploadSession, status types.Status) []*types.UploadSession {
	out := sessions[:0]
	for _, s := range sessions {
		if status == "" || s.Status == status {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func printTable(w io.Writer, sessions []*types.UploadSession, now time.Time) error {
	tw := tabwriter.NewWriter(w, 12, 1, 3, ' ', 0)
	fmt.Fprint(tw, "UPLOAD ID\tKEY\tOWNER\tSTATUS\tPARTS\tUPDATED\n")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.UploadID,
			s.Key,
			s.OwnerID,
			s.Status,
			len(s.Parts),
			humanize.RelTime(s.UpdatedAt, now, "ago", "from now"))
	}
	return tw.Flush()
}

func printJSON(w io.Writer, sessions []*types.UploadSession) error {
	if sessions == nil {
		sessions = []*types.UploadSession{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sessions)
}
