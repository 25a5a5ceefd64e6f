// ABOUTME: Root command wiring config, logging, the database and the notebook service.
// ABOUTME: Every subcommand runs against the store opened in the persistent pre-run.

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/harper/notebook/internal/config"
	"github.com/harper/notebook/internal/db"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	dbConn *sql.DB
	svc    *notebook.Service
)

var rootCmd = &cobra.Command{
	Use:           "notebook",
	Short:         "Markdown notes with tracked TODOs",
	Long:          `Keep markdown notes. List items under a "## TODO" heading are tracked as todos with priorities, completion state and inherited tags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath, _ = cmd.Flags().GetString("db")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}

		level, err := config.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		path := cfg.DBPath
		if path == "" {
			path = db.DefaultPath()
		}
		dbConn, err = db.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debug("opened database", "path", path)

		n, err := db.BackfillTags(cmd.Context(), dbConn)
		if err != nil {
			warnf("failed to migrate legacy tags: %v", err)
		} else if n > 0 {
			logger.Info("migrated legacy tags", "rows", n)
		}

		svc = notebook.New(dbConn, notebook.WithLogger(logger))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbConn == nil {
			return nil
		}
		return dbConn.Close()
	},
}

// Execute runs the root command and prints any error.
func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "database path (default $XDG_DATA_HOME/notebook/notebook.db)")
	rootCmd.PersistentFlags().String("config", config.Path(), "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
}
