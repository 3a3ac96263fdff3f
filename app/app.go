package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic-io/parcel/internal/api"
	"github.com/elastic-io/parcel/internal/clients"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/monitor"
	"github.com/elastic-io/parcel/internal/options"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/tracing"
	"github.com/elastic-io/parcel/internal/utils"
	"github.com/urfave/cli"
)

const (
	serviceName     = "parcel"
	stopTimeout     = 10 * time.Second
	monitorInterval = time.Minute
)

type App interface {
	Run() error
	Stop() error
}

type parcel struct {
	opts    *options.Options
	storage storage.Storage
	server  *api.Server

	shutdownTracer tracing.ShutdownFunc
	monitorCtx     context.Context
	stopMonitor    context.CancelFunc
	pidWritten     bool
}

// New 打开会话存储和对象存储后端，并完成 HTTP 模块初始化
func New(opts *options.Options) (App, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Embedded() {
		if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	a := &parcel{opts: opts}
	a.monitorCtx, a.stopMonitor = context.WithCancel(context.Background())
	var err error
	a.storage, err = storage.NewStorage(opts.Backend, opts.StoreSource())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cfg := opts.Config
	cfg.Storage = a.storage
	cfg.Backend, err = clients.New(cfg.Object)
	if err != nil {
		a.storage.Close()
		return nil, fmt.Errorf("failed to initialize object backend: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		a.storage.Close()
		return nil, err
	}

	a.shutdownTracer, err = tracing.InitTracer(context.Background(), serviceName, cfg.TracingEndpoint)
	if err != nil {
		a.storage.Close()
		return nil, err
	}

	a.server = api.New(cfg)
	if err := a.server.Init(); err != nil {
		a.Stop()
		return nil, err
	}

	if opts.PidFile != "" {
		if err := utils.WritePidFile(opts.PidFile, os.Getpid()); err != nil {
			a.Stop()
			return nil, fmt.Errorf("failed to write pid file: %w", err)
		}
		a.pidWritten = true
	}
	log.Logger.Info("Using ", opts.Backend, " session store and ", cfg.Object.Kind, " object backend, bucket ", cfg.Object.Bucket)
	return a, nil
}

func (a *parcel) Run() error {
	utils.SafeGo(func() {
		monitor.MemoryUsage(a.monitorCtx, monitorInterval, 0)
	})
	return a.server.Serve()
}

func (a *parcel) Stop() error {
	var errs []error
	a.stopMonitor()
	if a.server != nil {
		errs = append(errs, a.server.Done())
	}
	if a.storage != nil {
		errs = append(errs, a.storage.Close())
	}
	if a.shutdownTracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.shutdownTracer(ctx))
		cancel()
	}
	if a.pidWritten {
		errs = append(errs, os.Remove(a.opts.PidFile))
	}
	return errors.Join(errs...)
}

// Main 运行 program 构造的应用，收到信号或应用退出后在超时内停止它
func Main(ctx *cli.Context, program func(*options.Options) (App, error), name string) error {
	opts := options.New(ctx)
	app, err := program(opts)
	if err != nil {
		return err
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signalCh)

	errCh := make(chan error, 1)
	go func() {
		if err := app.Run(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	log.Logger.Info(name, " startup successfully")

	select {
	case receivedSignal := <-signalCh:
		log.Logger.Debug("Received signal: ", receivedSignal, ", initiating graceful shutdown...")
	case err = <-errCh:
		if err != nil {
			log.Logger.Debug("Application error: ", err.Error(), ", shutting down...")
		} else {
			log.Logger.Debug("Application completed successfully, shutting down...")
		}
	}

	log.Logger.Info("Stopping ", name, "...")
	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	stopErrCh := make(chan error, 1)
	go func() {
		stopErrCh <- app.Stop()
	}()

	select {
	case stopErr := <-stopErrCh:
		if stopErr != nil {
			log.Logger.Debug("Error during shutdown: ", stopErr)
			if err == nil {
				err = stopErr
			}
		}
	case <-stopCtx.Done():
		log.Logger.Debug("Shutdown timed out")
		if err == nil {
			err = stopCtx.Err()
		}
	}
	log.Logger.Debug(name, " shutdown complete")
	return err
}
