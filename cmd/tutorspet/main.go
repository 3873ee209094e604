// Package main is the command-line entry point of Tutor's Pet.
//
// Each invocation loads the stored data, runs one subcommand and, for
// subcommands that change data, lets the autosave handler persist the new
// snapshot before exiting.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tutorspet/tutorspet/config"
	"github.com/tutorspet/tutorspet/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(out)
		return nil
	}

	sub, ok := subcommands[args[0]]
	if !ok {
		printUsage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Debug("starting",
		logger.String("command", args[0]),
		logger.String("version", cfg.App.Version),
		logger.String("backend", string(cfg.Storage.Backend)),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORAGE, EVENT BUS AND MODEL
	// ─────────────────────────────────────────────────────────────────────────
	app, err := newApp(ctx, cfg, log, out)
	if err != nil {
		return err
	}
	defer app.Close()

	if sub.needsModel {
		if err := app.open(ctx); err != nil {
			return err
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. SUBCOMMAND
	// ─────────────────────────────────────────────────────────────────────────
	err = sub.run(ctx, app, args[1:])
	if errors.Is(err, errUsage) {
		fmt.Fprintf(out, "usage: tutorspet %s %s\n", args[0], sub.usage)
	}
	return err
}

// setupLogger builds the logger from the observability settings. Logs go to
// stderr so that command output on stdout stays clean.
func setupLogger(cfg *config.Config) *logger.Logger {
	level := logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		level = logger.LevelDebug
	}

	format := logger.FormatPretty
	if cfg.Observability.LogFormat == string(logger.FormatJSON) {
		format = logger.FormatJSON
	}

	return logger.New(logger.Options{
		Output:    os.Stderr,
		Level:     level,
		Format:    format,
		AddCaller: cfg.App.Debug,
		NoColor:   !term.IsTerminal(int(os.Stderr.Fd())),
	}).With(logger.String("app", cfg.App.Name))
}
