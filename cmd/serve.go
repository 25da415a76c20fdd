package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"doctranslate/internal/api"
	"doctranslate/internal/auth"
	"doctranslate/internal/config"
	"doctranslate/internal/jobs"
	"doctranslate/internal/service"
	"doctranslate/pkg/logger"
)

var installService bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP translation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Init(os.Stderr, cfg.Logging.Format, cfg.Logging.Level)

		if err := config.WatchLogLevel(configPath, func(level, format string) {
			logger.Init(os.Stderr, format, level)
		}); err != nil {
			logger.Warn("config watcher disabled", "error", err)
		}

		store, err := jobs.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening job store: %w", err)
		}

		pipeline := buildPipeline(cfg)
		issuer := auth.NewIssuer(cfg.Auth.JWTSecret, time.Hour)
		router := api.SetupRouter(cfg, pipeline, store, issuer)

		srv := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		}

		if installService {
			svc, err := service.New(service.Config{
				Name:        "doctranslate",
				DisplayName: "doctranslate translation API",
				Description: "Markup-preserving machine translation pipeline",
			}, srv)
			if err != nil {
				return fmt.Errorf("building service: %w", err)
			}
			return svc.Run()
		}

		return runForeground(srv)
	},
}

// runForeground starts srv and blocks until SIGINT/SIGTERM, then drains
// in-flight requests before returning.
func runForeground(srv *http.Server) error {
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	logger.Info("server exited")
	return nil
}

func init() {
	serveCmd.Flags().BoolVar(&installService, "service", false, "run as a native OS service instead of a foreground process")
}
