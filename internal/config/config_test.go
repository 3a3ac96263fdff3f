package config

import (
	"testing"
	"time"

	"github.com/elastic-io/parcel/internal/clients"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"
)

// 只用于满足非空检查
type nopStorage struct{ storage.Storage }

type nopBackend struct{ clients.MultipartBackend }

func TestNew(t *testing.T) {
	// 创建一个新的 CLI 应用
	app := cli.NewApp()

	// 定义全局标志
	app.Flags = []cli.Flag{
		cli.StringSliceFlag{Name: "mod", Value: &cli.StringSlice{}},
		cli.StringFlag{Name: "endpoint", Value: ""},
		cli.BoolFlag{Name: "auth"},
		cli.StringFlag{Name: "username", Value: ""},
		cli.StringFlag{Name: "cert", Value: ""},
		cli.StringFlag{Name: "key", Value: ""},
		cli.StringFlag{Name: "body-limit", Value: ""},
		cli.IntFlag{Name: "read-timeout"},
		cli.DurationFlag{Name: "part-expiry", Value: time.Hour},
		cli.BoolFlag{Name: "unique-keys"},
		cli.StringFlag{Name: "object-backend", Value: "s3"},
		cli.StringFlag{Name: "bucket"},
		cli.StringFlag{Name: "region"},
		cli.BoolFlag{Name: "path-style"},
	}

	// 模拟命令行参数
	args := []string{
		"app",
		"--endpoint=localhost:8080",
		"--auth",
		"--username=testuser",
		"--cert=/path/to/cert.pem",
		"--key=/path/to/key.pem",
		"--mod=upload",
		"--body-limit=2M",
		"--read-timeout=30",
		"--part-expiry=15m",
		"--unique-keys",
		"--object-backend=minio",
		"--bucket=uploads",
		"--region=us-east-1",
		"--path-style",
	}

	// 运行应用以获取上下文
	var capturedContext *cli.Context
	app.Action = func(c *cli.Context) error {
		capturedContext = c
		return nil
	}

	err := app.Run(args)
	assert.NoError(t, err)

	config := New(capturedContext)

	assert.Equal(t, "localhost:8080", config.Endpoint)
	assert.True(t, config.EnableAuth)
	assert.Equal(t, "testuser", config.Username)
	assert.Equal(t, "/path/to/cert.pem", config.CertFile)
	assert.Equal(t, "/path/to/key.pem", config.KeyFile)
	assert.Equal(t, []string{"upload"}, config.Modules)
	assert.Equal(t, 2*types.MB, config.BodyLimit)
	assert.Equal(t, 30, config.ReadTimeout)
	assert.Equal(t, 15*time.Minute, config.PartURLExpiry)
	assert.True(t, config.UniqueKeys)
	assert.Equal(t, clients.KindMinio, config.Object.Kind)
	assert.Equal(t, "uploads", config.Object.Bucket)
	assert.True(t, config.Object.S3ForcePathStyle)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Endpoint: "localhost:8080",
			Modules:  []string{"upload"},
			Object:   clients.Config{Bucket: "uploads"},
			Storage:  nopStorage{},
			Backend:  nopBackend{},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "Valid config",
			mutate: func(*Config) {},
		},
		{
			name:        "Missing endpoint",
			mutate:      func(c *Config) { c.Endpoint = "" },
			expectError: true,
			errorMsg:    "endpoint is required",
		},
		{
			name:        "No modules",
			mutate:      func(c *Config) { c.Modules = []string{} },
			expectError: true,
			errorMsg:    "at least one module is required",
		},
		{
			name:        "Auth without password",
			mutate:      func(c *Config) { c.EnableAuth = true; c.Username = "u" },
			expectError: true,
			errorMsg:    "username and password are required when auth is enabled",
		},
		{
			name:        "Cert without key",
			mutate:      func(c *Config) { c.CertFile = "cert.pem" },
			expectError: true,
			errorMsg:    "cert and key must be set together",
		},
		{
			name:        "Missing bucket",
			mutate:      func(c *Config) { c.Object.Bucket = "" },
			expectError: true,
			errorMsg:    "bucket is required",
		},
		{
			name:        "Missing storage",
			mutate:      func(c *Config) { c.Storage = nil },
			expectError: true,
			errorMsg:    "storage is required",
		},
		{
			name:        "Missing backend",
			mutate:      func(c *Config) { c.Backend = nil },
			expectError: true,
			errorMsg:    "object backend is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
