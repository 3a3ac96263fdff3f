package config

import (
	"fmt"
	"time"

	"github.com/elastic-io/parcel/internal/clients"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/elastic-io/parcel/internal/utils"
	"github.com/urfave/cli"
)

type Config struct {
	Endpoint     string
	EnableAuth   bool
	Username     string
	Password     string
	CertFile     string
	KeyFile      string
	BodyLimit    int
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	Modules      []string

	// 分段上传地址有效期
	PartURLExpiry time.Duration
	UniqueKeys    bool
	Object        clients.Config

	TracingEndpoint string

	Storage storage.Storage
	Backend clients.MultipartBackend
}

func New(ctx *cli.Context) *Config {
	c := &Config{BodyLimit: 1 * types.MB}
	c.Endpoint = ctx.String("endpoint")
	c.EnableAuth = ctx.Bool("auth")
	c.Username = ctx.String("username")
	c.Password = ctx.String("password")
	c.CertFile = ctx.String("cert")
	c.KeyFile = ctx.String("key")
	if s := ctx.String("body-limit"); s != "" {
		if size, err := utils.ParseSize(s, ""); err == nil && size > 0 {
			c.BodyLimit = size
		}
	}
	c.ReadTimeout = ctx.Int("read-timeout")
	c.WriteTimeout = ctx.Int("write-timeout")
	c.IdleTimeout = ctx.Int("idle-timeout")
	c.Modules = ctx.GlobalStringSlice("mod")

	c.PartURLExpiry = ctx.Duration("part-expiry")
	c.UniqueKeys = ctx.Bool("unique-keys")
	c.Object = clients.Config{
		Kind:      ctx.String("object-backend"),
		Bucket:    ctx.String("bucket"),
		Region:    ctx.String("region"),
		Endpoint:  ctx.String("object-endpoint"),
		AccessKey: ctx.String("access-key"),
		SecretKey: ctx.String("secret-key"),
		Token:     ctx.String("token"),
		S3Options: clients.S3Options{
			S3ForcePathStyle:   ctx.Bool("path-style"),
			DisableSSL:         ctx.Bool("disable-ssl"),
			InsecureSkipVerify: ctx.Bool("insecure"),
		},
	}
	c.TracingEndpoint = ctx.String("tracing-endpoint")
	return c
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if len(c.Modules) == 0 {
		return fmt.Errorf("at least one module is required")
	}
	if c.EnableAuth && (c.Username == "" || c.Password == "") {
		return fmt.Errorf("username and password are required when auth is enabled")
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return fmt.Errorf("cert and key must be set together")
	}
	if c.PartURLExpiry < 0 {
		return fmt.Errorf("part-expiry must not be negative")
	}
	if c.Object.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if c.Storage == nil {
		return fmt.Errorf("storage is required")
	}
	if c.Backend == nil {
		return fmt.Errorf("object backend is required")
	}
	return nil
}
