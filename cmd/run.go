package cmd

import (
	"github.com/elastic-io/parcel/app"
	"github.com/elastic-io/parcel/internal/clients"
	"github.com/elastic-io/parcel/internal/service"
	"github.com/urfave/cli"
)

var runCommand = cli.Command{
	Name:        "run",
	Usage:       "run the multipart upload coordinator",
	ArgsUsage:   ``,
	Description: `Serves the upload API, records sessions in the configured store and delegates multipart operations to the object storage bucket.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:   "endpoint, e",
			Value:  "localhost:3000",
			Usage:  "HTTP listen address",
			EnvVar: "PARCEL_ENDPOINT",
		},
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
			Name:  "pid-file",
			Value: "",
			Usage: "pid file path (default is <root>/parcel.pid)",
		},
		cli.BoolFlag{
			Name:   "auth, a",
			Usage:  "Enable basic authentication",
			EnvVar: "PARCEL_AUTH_ENABLED",
		},
		cli.StringFlag{
			Name:   "username, u",
			Value:  "",
			Usage:  "Basic auth username",
			EnvVar: "PARCEL_USERNAME",
		},
		cli.StringFlag{
			Name:   "password, pw",
			Value:  "",
			Usage:  "Basic auth password",
			EnvVar: "PARCEL_PASSWORD",
		},
		cli.StringFlag{
			Name:   "cert, c",
			Value:  "",
			Usage:  "TLS certificate file path",
			EnvVar: "PARCEL_CERT_FILE",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  "TLS private key file path",
			EnvVar: "PARCEL_KEY_FILE",
		},
		cli.StringFlag{
			Name:  "body-limit",
			Value: "1M",
			Usage: "Maximum request body size",
		},
		cli.IntFlag{
			Name:  "read-timeout",
			Value: 30,
			Usage: "HTTP read timeout in seconds",
		},
		cli.IntFlag{
			Name:  "write-timeout",
			Value: 30,
			Usage: "HTTP write timeout in seconds",
		},
		cli.IntFlag{
			Name:  "idle-timeout",
			Value: 120,
			Usage: "HTTP idle timeout in seconds",
		},
		cli.DurationFlag{
			Name:   "part-expiry",
			Value:  service.DefaultPartURLExpiry,
			Usage:  "Validity of presigned part upload URLs",
			EnvVar: "PARCEL_PART_EXPIRY",
		},
		cli.BoolFlag{
			Name:   "unique-keys",
			Usage:  "Prefix object keys with a random id",
			EnvVar: "PARCEL_UNIQUE_KEYS",
		},
		cli.StringFlag{
			Name:   "object-backend",
			Value:  clients.KindS3,
			Usage:  "Object storage client (s3, minio)",
			EnvVar: "PARCEL_OBJECT_BACKEND",
		},
		cli.StringFlag{
			Name:   "bucket, b",
			Value:  "",
			Usage:  "Target bucket",
			EnvVar: "PARCEL_BUCKET",
		},
		cli.StringFlag{
			Name:   "region",
			Value:  "us-east-1",
			Usage:  "Bucket region",
			EnvVar: "PARCEL_REGION",
		},
		cli.StringFlag{
			Name:   "object-endpoint",
			Value:  "",
			Usage:  "Object storage endpoint, empty for AWS",
			EnvVar: "PARCEL_OBJECT_ENDPOINT",
		},
		cli.StringFlag{
			Name:   "access-key",
			Value:  "",
			Usage:  "Object storage access key",
			EnvVar: "PARCEL_ACCESS_KEY",
		},
		cli.StringFlag{
			Name:   "secret-key",
			Value:  "",
			Usage:  "Object storage secret key",
			EnvVar: "PARCEL_SECRET_KEY",
		},
		cli.StringFlag{
			Name:   "token",
			Value:  "",
			Usage:  "Object storage session token",
			EnvVar: "PARCEL_SESSION_TOKEN",
		},
		cli.BoolFlag{
			Name:  "path-style",
			Usage: "Use path style bucket addressing",
		},
		cli.BoolFlag{
			Name:  "disable-ssl",
			Usage: "Talk plain HTTP to the object storage endpoint",
		},
		cli.BoolFlag{
			Name:  "insecure",
			Usage: "Skip TLS verification of the object storage endpoint",
		},
		cli.StringFlag{
			Name:   "tracing-endpoint",
			Value:  "",
			Usage:  "OTLP/HTTP collector address, tracing is off when empty",
			EnvVar: "PARCEL_TRACING_ENDPOINT",
		},
	},
	Action: func(ctx *cli.Context) error {
		if err := checkArgs(ctx, 0, exactArgs); err != nil {
			return err
		}
		return app.Main(ctx, app.New, "parcel")
	},
}
