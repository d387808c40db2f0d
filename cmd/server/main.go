// Package main is the entry point for the task API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/umputun/go-flags"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/postgres"
)

// options are the command line flags. Everything else comes from config.
type options struct {
	Config     string `long:"config"      env:"TASKAPI_CONFIG" description:"path to a YAML or TOML config file"`
	DotEnv     string `long:"dotenv"      default:".env"       description:"dotenv file loaded before reading the environment"`
	SkipSchema bool   `long:"skip-schema"                      description:"do not apply the embedded schema at start-up"`
}

var revision = "unknown"

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func parseOptions(args []string) (options, error) {
	var opts options
	p := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := p.ParseArgs(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// run loads configuration, opens the database, applies the schema and serves
// HTTP until ctx is cancelled.
func run(ctx context.Context, opts options) error {
	if err := config.LoadDotEnv(opts.DotEnv); err != nil {
		return err
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{
		Level: cfg.Server.LogLevel,
		File:  cfg.Server.LogFile,
		Env:   cfg.App.Env,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("task API server starting",
		slog.String("revision", revision),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if opts.SkipSchema {
		log.Info("skipping schema migration")
	} else if err := postgres.Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer app.cleanup()

	return app.listenAndServe(ctx)
}
