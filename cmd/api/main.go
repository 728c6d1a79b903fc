package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harentsoaR/clinic-mock-api/internal/config"
	"github.com/harentsoaR/clinic-mock-api/internal/handlers"
	"github.com/harentsoaR/clinic-mock-api/internal/metrics"
	"github.com/harentsoaR/clinic-mock-api/internal/services"
	"github.com/harentsoaR/clinic-mock-api/internal/utils"
)

// dotenvErr holds the .env load result until a logger exists.
var dotenvErr error

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "clinic-api",
		Short:        "Mock doctors and appointments API",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			dotenvErr = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := utils.GenerateToken([]byte(cfg.JWTSecret), subject, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("subject", "demo", "Subject claim of the token")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime, 0 for no expiry")
	return cmd
}

func logDotenv(logger zerolog.Logger, err error) {
	switch {
	case err == nil:
		logger.Info().Msg("loaded .env file")
	case errors.Is(err, fs.ErrNotExist):
		logger.Info().Msg("No .env file found, relying on environment variables.")
	default:
		logger.Warn().Err(err).Msg("failed to parse .env file, relying on environment variables")
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logDotenv(logger, dotenvErr)
	if cfg.UsesDefaultSecret() {
		logger.Warn().Msg("JWT_SECRET is not set, using the default placeholder secret")
	}

	doctors, err := services.LoadDoctorDirectory(cfg.DoctorsFile)
	if err != nil {
		return err
	}

	gen := services.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), doctors.IDs(), cfg.Location)
	store := services.NewAppointmentStore(gen, services.StoreOptions{
		EnforceConflicts: cfg.EnforceConflicts,
		Logger:           &logger,
		Metrics:          metrics.NewStoreMetrics(prometheus.DefaultRegisterer),
	})

	h := handlers.NewHandler(store, doctors, logger)
	router := handlers.NewRouter(h, handlers.RouterConfig{
		Secret:      []byte(cfg.JWTSecret),
		Location:    cfg.Location,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Metrics:     metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("timezone", cfg.Timezone).
			Bool("enforce_conflicts", cfg.EnforceConflicts).
			Int("doctors", len(doctors.IDs())).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
