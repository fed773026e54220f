package main

import (
	"fmt"

	"github.com/poiesic/jotpad"
	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/migration"
	"github.com/poiesic/jotpad/remote"
	"github.com/urfave/cli/v2"
)

func workspaceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "Directory of the local store (default from config)",
			EnvVars: []string{"JOTPAD_DATA_DIR"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "jotpad server URL; with --user the remote collections are used",
			EnvVars: []string{"JOTPAD_SERVER"},
		},
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "User id to sign in as",
			EnvVars: []string{"JOTPAD_USER"},
		},
	}
}

type workspaceTarget struct {
	dataDir   string
	serverURL string
	userID    string
}

func resolveTarget(c *cli.Context) workspaceTarget {
	cfg := fileConfig(c).Client
	t := workspaceTarget{dataDir: cfg.DataDir, serverURL: cfg.ServerURL, userID: cfg.UserID}
	if c.IsSet("data-dir") {
		t.dataDir = c.String("data-dir")
	}
	if c.IsSet("server") {
		t.serverURL = c.String("server")
	}
	if c.IsSet("user") {
		t.userID = c.String("user")
	}
	return t
}

// aiConfig builds the AI configuration from the file and any AI flags on the command.
func aiConfig(c *cli.Context) (*ai.Config, error) {
	cfg := ai.NewConfig(fileConfig(c).AIOptions()...)
	if c.IsSet("local-host") {
		cfg.LocalHost = c.String("local-host")
	}
	if c.IsSet("local-model") {
		cfg.LocalModel = c.String("local-model")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

// openWorkspace opens the workspace and, when a server and user are known,
// signs in so the remote collections are used.
func openWorkspace(c *cli.Context, extra ...jotpad.WorkspaceOption) (*jotpad.Workspace, workspaceTarget, error) {
	target := resolveTarget(c)
	if target.dataDir == "" {
		return nil, target, fmt.Errorf("data directory is required")
	}

	aiCfg, err := aiConfig(c)
	if err != nil {
		return nil, target, err
	}

	client := fileConfig(c).Client
	opts := []jotpad.WorkspaceOption{jotpad.WithAIConfig(aiCfg)}
	if target.serverURL != "" {
		var remoteOpts []remote.Option
		if client.RetryAttempts > 0 {
			remoteOpts = append(remoteOpts, remote.WithRetry(client.RetryAttempts, client.RetryBaseDelay))
		}
		opts = append(opts,
			jotpad.WithServer(target.serverURL, remoteOpts...),
			jotpad.WithMigrationOptions(migration.WithUIStateCleanup(client.MigrateUIState)),
		)
	}
	opts = append(opts, extra...)

	w, err := jotpad.NewWorkspace(target.dataDir, opts...)
	if err != nil {
		return nil, target, fmt.Errorf("failed to open workspace: %w", err)
	}

	if target.serverURL != "" && target.userID != "" {
		if err := signIn(c, w, target.userID); err != nil {
			w.Close()
			return nil, target, err
		}
	}
	return w, target, nil
}

func signIn(c *cli.Context, w *jotpad.Workspace, userID string) error {
	report, err := w.SignIn(c.Context, userID)
	if err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}
	if n := report.Migrated(); n > 0 {
		fmt.Fprintf(c.App.ErrWriter, "Migrated %d local items to the server\n", n)
	}
	if err := report.Err(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "Warning: some local data was kept: %v\n", err)
	}
	return w.Wait(c.Context)
}
