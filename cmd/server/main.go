package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orientation-service/internal/app"
	"orientation-service/internal/config"
	"orientation-service/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", app.ServiceName).Logger()

	if err := newRootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func newRootCommand() *cobra.Command {
	serveCmd := newServeCommand()

	root := &cobra.Command{
		Use:           "orientation",
		Short:         "University orientation API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	root.AddCommand(serveCmd, newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := app.Migrate(cmd.Context(), cfg); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	slogLogger := logger.NewWithServiceContext(app.ServiceName, app.Version)
	slog.SetDefault(slogLogger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	application, err := app.New(ctx, cfg, slogLogger)
	if err != nil {
		return err
	}

	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	go application.StartHealthChecks(healthCtx, 30*time.Second)

	runErr := make(chan error, 1)
	go func() {
		runErr <- application.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-runErr:
		log.Error().Err(err).Msg("server stopped")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited gracefully")
	return nil
}
