package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estateinsights/app"
	"estateinsights/cache"
	"estateinsights/client"
	"estateinsights/config"
	"estateinsights/db"
	"estateinsights/handlers"
	"estateinsights/view"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	port       string
	backendURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard, chat panel and JSON API",
	RunE:  runServe,
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default from PORT or 9090)")
	cmd.Flags().StringVar(&backendURL, "backend", "", "Insights backend base URL")
}

// resolveConfig layers environment defaults, the optional YAML file and the
// flags the user actually set, in that order.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.GetConfig()
	if configPath != "" {
		if err := config.LoadFile(configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend.BaseURL = backendURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg.Log, os.Stderr)
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		log.Warn().Str("gin_mode", cfg.GinMode).Msg("unknown gin mode, using release")
		gin.SetMode(gin.ReleaseMode)
	}

	transcripts, err := db.New()
	if err != nil {
		return errors.Wrap(err, "initialize transcript store")
	}
	defer transcripts.Close()

	backend := client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.Timeout))
	dashboard := app.New(backend, cache.New(cfg.SessionTTL), transcripts, app.WithConfirmDelay(cfg.UploadConfirmDelay))

	router := handlers.NewRouter(handlers.New(dashboard), view.MustTemplates())
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", backend.BaseURL()).
			Dur("session_ttl", cfg.SessionTTL).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
