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

	"github.com/leseb/filechooser/pkg/core/config"
	"github.com/leseb/filechooser/pkg/core/engine"
	"github.com/leseb/filechooser/pkg/core/schema"
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
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to configuration file (built-in defaults when empty)")
	accept := flag.String("accept", "", "Comma-separated MIME patterns to accept, e.g. \"image/*,application/pdf\"")
	multiple := flag.Bool("multiple", false, "Allow picking more than one file")
	pickerType := flag.String("picker", "", "Picker backend: terminal or static (overrides config)")
	selectPaths := flag.String("select", "", "Paths the static picker selects, separated by the OS path list separator")
	purge := flag.Bool("purge", false, "Remove imported files older than storage.max_age and exit")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("File Chooser\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		return 0
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *pickerType != "" {
		cfg.Picker.Type = *pickerType
	} else if *selectPaths != "" {
		cfg.Picker.Type = "static"
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	params := provider.Params{}
	switch cfg.Picker.Type {
	case "static":
		params["paths"] = *selectPaths
	case "terminal":
		tty, err := terminal.Device(true)
		if err != nil && !*purge {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		params["tty"] = tty
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setup, err := engine.FromConfig(ctx, cfg, params, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize chooser", "error", err)
		return 1
	}
	defer setup.Close(context.Background())
	logger.Debug("Initialized chooser",
		"version", Version,
		"storage", cfg.Storage.Type,
		"storage_root", setup.Store.Root(),
		"picker", cfg.Picker.Type)

	if *purge {
		n, err := setup.Store.Purge(ctx, cfg.Storage.MaxAge)
		if err != nil {
			logger.Error("Purge failed", "error", err, "removed", n)
			return 1
		}
		logger.Info("Purged imported files", "removed", n, "max_age", cfg.Storage.MaxAge)
		return 0
	}

	pending, err := setup.Chooser.GetFiles(ctx, schema.PickRequest{
		Accept:        schema.SplitAccept(*accept),
		AllowMultiple: *multiple,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	resp, err := pending.Wait(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, f := range resp.Failures {
		logger.Warn("File skipped", "error", f)
	}
	if !resp.OK() {
		fmt.Fprintln(os.Stderr, resp.Message)
		return 1
	}
	fmt.Println(resp.Message)
	return 0
}
