// Command blocdemo serves a counter Bloc over HTTP.
//
// Usage:
//
//	blocdemo [--dir DIR] [--addr ADDR] [--log-level LEVEL]
//
// Settings are read from bloc.yaml in the project directory; flags override
// them.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/bloc/internal/config"
	"github.com/go-drift/bloc/internal/server"
	"github.com/go-drift/bloc/pkg/bloc"
	"github.com/go-drift/bloc/pkg/core"
	drifterrors "github.com/go-drift/bloc/pkg/errors"
	"github.com/go-drift/bloc/pkg/storage"
	"github.com/go-drift/bloc/pkg/widgets"
)

type options struct {
	Dir      string `long:"dir" description:"project directory holding bloc.yaml (default: nearest go.mod or bloc.yaml)"`
	Addr     string `long:"addr" description:"listen address (overrides server.addr)"`
	LogLevel string `long:"log-level" description:"log level (overrides log.level)"`
}

const shutdownTimeout = 5 * time.Second

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.WithError(err).Fatal("blocdemo failed")
	}
}

func run(opts options) error {
	dir := opts.Dir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return err
		}
		dir = root
	}

	resolved, err := config.Resolve(dir)
	if err != nil {
		return err
	}

	level := resolved.LogLevel
	if opts.LogLevel != "" {
		level, err = log.ParseLevel(opts.LogLevel)
		if err != nil {
			return err
		}
	}
	logger := log.StandardLogger()
	logger.SetLevel(level)

	drifterrors.SetHandler(&drifterrors.LogHandler{Logger: logger, Verbose: level >= log.DebugLevel})
	core.SetErrorWidgetBuilder(widgets.ErrorText)
	if level >= log.DebugLevel {
		bloc.SetObserver(&bloc.LogObserver{Logger: logger})
	}

	if err := storage.Open(resolved.StorageOptions()); err != nil {
		return err
	}

	addr := resolved.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	srv := server.New(server.Options{
		AppName: resolved.AppName,
		Cookies: resolved.Cookies,
		Logger:  logger,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(log.Fields{
			"addr":    addr,
			"app":     resolved.AppName,
			"storage": resolved.StorageDir,
		}).Info("listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
