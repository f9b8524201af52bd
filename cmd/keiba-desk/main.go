// Package main provides the keiba-desk command line.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/keiba-desk/internal/config"
	"github.com/yourusername/keiba-desk/internal/database"
	"github.com/yourusername/keiba-desk/internal/datasource"
	"github.com/yourusername/keiba-desk/internal/logger"
	"github.com/yourusername/keiba-desk/internal/repository"
	"github.com/yourusername/keiba-desk/internal/scoring"
	"github.com/yourusername/keiba-desk/internal/service"
	"github.com/yourusername/keiba-desk/internal/session"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(betTypesCmd)
}

var rootCmd = &cobra.Command{
	Use:           "keiba-desk",
	Short:         "Horse-race betting decision support",
	Long:          `Serves the race entry table, marks, manual scores and bet allocation over HTTP, or runs them once from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	return config.ValidateEnvironment(cfg)
}

// deps is everything a command needs to run the desk
type deps struct {
	provider datasource.Provider
	db       *database.DB
	desk     *service.Desk
}

func (d *deps) Close() {
	if d.db != nil {
		d.db.Close()
	}
}

func setupDependencies(ctx context.Context, withDatabase bool) (*deps, error) {
	provider, err := datasource.NewProvider(cfg.Entries, appLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry provider: %w", err)
	}

	d := &deps{provider: provider}
	if withDatabase && cfg.Database.Enabled {
		d.db, err = database.Initialize(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		appLog.Info("Database connection established")
	}

	sessions := session.NewStore(cfg.SessionTTL(), cfg.SessionCleanupInterval())
	d.desk = service.NewDesk(
		provider,
		sessions,
		scoring.Resolve("pass_through"),
		repository.NewRepositories(d.db),
		&cfg.Betting,
		appLog,
	)
	return d, nil
}
