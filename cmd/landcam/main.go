package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/leterax/go-landcam/internal/logging"
	"github.com/leterax/go-landcam/pkg/config"
	"github.com/leterax/go-landcam/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file (empty for defaults)")
	logLevel := flag.String("log-level", "", "Log level, overrides the config file")
	flag.Parse()

	if err := run(*configPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var updates <-chan config.Config
	if configPath != "" {
		watcher, err := config.Watch(configPath, log)
		if err != nil {
			log.Warn("config hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			updates = watcher.Changes
			go drainErrors(watcher.Errors)
		}
	}

	log.Info("starting landcam", zap.String("config", configPath), zap.String("log_level", logLevel))

	renderer, err := render.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	defer renderer.Cleanup()

	renderer.Run(ctx, updates)
	return nil
}

// drainErrors keeps the watcher from blocking; failures are already logged
func drainErrors(errs <-chan error) {
	for range errs {
	}
}
