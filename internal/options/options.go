package options

import (
	"fmt"
	"path/filepath"

	"github.com/elastic-io/parcel/internal/config"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/urfave/cli"
)

const (
	defaultBackend = "bolt"
	boltFile       = "sessions.db"
	badgerDir      = "sessions"
)

type Options struct {
	DataDir  string
	Backend  string
	StoreDSN string
	PidFile  string
	Config   *config.Config
}

func New(ctx *cli.Context) *Options {
	opts := Options{}
	opts.DataDir = ctx.String("data")
	opts.Backend = ctx.GlobalString("backend")
	opts.StoreDSN = ctx.String("dsn")
	opts.PidFile = ctx.String("pid-file")
	if opts.PidFile == "" && ctx.GlobalString("root") != "" {
		opts.PidFile = filepath.Join(ctx.GlobalString("root"), "parcel.pid")
	}
	opts.Config = config.New(ctx)
	return &opts
}

func (o *Options) Validate() error {
	if o.Backend == "" {
		log.Logger.Warn("backend is not set, using default backend")
		o.Backend = defaultBackend
	}
	switch o.Backend {
	case "bolt", "badger":
		if o.DataDir == "" {
			return fmt.Errorf("data directory is required")
		}
	case "redis", "mysql":
		if o.StoreDSN == "" {
			return fmt.Errorf("dsn is required for %s backend", o.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	return nil
}

// StoreSource 返回打开存储后端所需的路径或连接串
func (o *Options) StoreSource() string {
	switch o.Backend {
	case "bolt":
		return filepath.Join(o.DataDir, boltFile)
	case "badger":
		return filepath.Join(o.DataDir, badgerDir)
	default:
		return o.StoreDSN
	}
}

// Embedded 表示存储位于本地数据目录
func (o *Options) Embedded() bool {
	return o.Backend == "bolt" || o.Backend == "badger"
}
