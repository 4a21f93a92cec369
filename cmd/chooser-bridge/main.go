// Copyright File Chooser Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/leseb/filechooser/pkg/adapters/bridge"
	"github.com/leseb/filechooser/pkg/core/config"
	"github.com/leseb/filechooser/pkg/core/engine"
	_ "github.com/leseb/filechooser/pkg/filestore/filesystem"
	"github.com/leseb/filechooser/pkg/observability/logging"
	_ "github.com/leseb/filechooser/pkg/picker/static"
	"github.com/leseb/filechooser/pkg/picker/terminal"
	"github.com/leseb/filechooser/pkg/provider"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (built-in defaults when empty)")
	pickerType := flag.String("picker", "", "Picker backend: terminal or static (overrides config)")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("File Chooser Bridge\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		os.Exit(0)
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *pickerType != "" {
		cfg.Picker.Type = *pickerType
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Info("Starting File Chooser Bridge",
		"version", Version,
		"build_time", BuildTime,
		"picker", cfg.Picker.Type)

	// Stdin and stdout carry the protocol, so the picker needs its own terminal.
	params := provider.Params{}
	if cfg.Picker.Type == "terminal" {
		tty, err := terminal.Device(false)
		if err != nil {
			logger.Error("Failed to find a terminal", "error", err)
			os.Exit(1)
		}
		params["tty"] = tty
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setup, err := engine.FromConfig(ctx, cfg, params, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize chooser", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized chooser", "storage_root", setup.Store.Root())

	dispatcher := bridge.NewDispatcher(setup.Chooser, logger.Logger)
	serveErr := dispatcher.Serve(ctx, os.Stdin, os.Stdout)

	if err := setup.Close(context.Background()); err != nil {
		logger.Warn("Failed to close file store", "error", err)
	}
	if serveErr != nil {
		logger.Error("Bridge stopped", "error", serveErr)
		os.Exit(1)
	}
	logger.Info("Bridge stopped")
}
