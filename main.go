package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RubachokBoss/study-tracker/internal/app"
	"github.com/RubachokBoss/study-tracker/internal/config"
	"github.com/RubachokBoss/study-tracker/internal/database"
	"github.com/RubachokBoss/study-tracker/pkg/logger"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "study-tracker",
		Short:         "Study session tracker HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	var direction string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(direction)
		},
	}
	migrateCmd.Flags().StringVar(&direction, "direction", "up", "direction of migration (up/down)")

	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume study events and update subject performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker()
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, workerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, logger.New(), fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)
	return cfg, log, nil
}

func connectDatabase(cfg *config.Config, log zerolog.Logger) (*sqlx.DB, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Database connection established")
	return db, nil
}

func runServer() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	db, err := connectDatabase(cfg, log)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, log, db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down Study Tracker...")
	case err := <-serverErr:
		log.Error().Err(err).Msg("Failed to run application")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Study Tracker stopped")
	return nil
}

func runMigrations(direction string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	migrator, err := database.NewMigrator(cfg.Database)
	if err != nil {
		return err
	}

	switch direction {
	case "up":
		if err := migrator.Up(); err != nil {
			return err
		}
		log.Info().Msg("Migrations applied successfully")
	case "down":
		if err := migrator.Down(); err != nil {
			return err
		}
		log.Info().Msg("Migrations rolled back successfully")
	default:
		return fmt.Errorf("invalid migration direction %q, use 'up' or 'down'", direction)
	}

	return nil
}

func runWorker() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	db, err := connectDatabase(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	log.Info().Msg("Starting standalone performance worker...")
	return app.RunWorker(ctx, cfg, log, db)
}
