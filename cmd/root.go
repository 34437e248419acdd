package cmd

import (
	"context"
	"fmt"
	"os"

	"review-api/pkg/database"
	"review-api/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string // dotenv file read before the environment

var rootCmd = &cobra.Command{
	Use:   "review-api",
	Short: "review-api - reviews and ratings for titles",
	Long: `review-api serves a catalog of titles (grouped by category and genre),
user reviews with a 1-10 score and comments on those reviews.

Use "review-api serve" to run the HTTP API, "review-api migrate" to create the
schema and "review-api import --dir <path>" to load the CSV fixtures.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
}

// deps is what every subcommand needs before doing real work.
type deps struct {
	config *utils.Config
	log    *zap.Logger
	db     database.PgxIface
}

func (rt *deps) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
	rt.log.Sync()
}

func bootstrap(ctx context.Context) (*deps, error) {
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v. Using production defaults.\n", err)
		logger, _ = zap.NewProduction()
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		logger.Sync()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Database connected successfully")

	return &deps{config: config, log: logger, db: db}, nil
}
