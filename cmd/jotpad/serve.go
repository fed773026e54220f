package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/ai/local"
	"github.com/poiesic/jotpad/server"
	"github.com/poiesic/jotpad/storage/sqlstore"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API over a SQLite database",
		Action: serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Address to listen on (default from config, then :8080)",
				EnvVars: []string{"JOTPAD_ADDR"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the SQLite database file",
				EnvVars: []string{"JOTPAD_DB"},
			},
		},
	}
}

func serveAction(c *cli.Context) error {
	cfg := fileConfig(c)
	addr := cfg.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}
	dbPath := cfg.Server.Database
	if c.IsSet("db") {
		dbPath = c.String("db")
	}
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	var opts []server.Option
	if cfg.Server.MaxBodyBytes > 0 {
		opts = append(opts, server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))
	}
	srv, err := server.New(store, store, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", dbPath)
	fmt.Fprintf(c.App.ErrWriter, "Listening on %s\n", addr)
	return srv.ListenAndServe(ctx, addr)
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:   "probe",
		Usage:  "Check whether the local model server is reachable",
		Action: probeAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Usage:   "Local model server URL (default from config)",
				EnvVars: []string{"JOTPAD_LOCAL_HOST"},
			},
		},
	}
}

func probeAction(c *cli.Context) error {
	aiConfig := ai.NewConfig(fileConfig(c).AIOptions()...)
	if c.IsSet("host") {
		aiConfig.LocalHost = c.String("host")
	}
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	if err := local.Ping(c.Context, aiConfig.LocalHost, aiConfig.ProbeTimeout); err != nil {
		fmt.Fprintf(c.App.Writer, "%s: unavailable\n", aiConfig.LocalServerRoot())
		return fmt.Errorf("local model server unavailable: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "%s: available\n", aiConfig.LocalServerRoot())
	return nil
}
