package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ptiller/driveorg/internal/cache"
	"github.com/ptiller/driveorg/internal/config"
	"github.com/ptiller/driveorg/internal/daemon"
	"github.com/ptiller/driveorg/internal/history"
	"github.com/ptiller/driveorg/internal/logger"
	"github.com/ptiller/driveorg/internal/organizer"
	"github.com/ptiller/driveorg/internal/scheduler"
	"github.com/ptiller/driveorg/internal/server"
	"github.com/ptiller/driveorg/internal/storage/gdrive"
	"github.com/ptiller/driveorg/internal/suggest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := initLogger(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Shutdown()
	log := logger.Get()

	pidPath, err := daemon.PIDPath(cfg.DataDir)
	if err != nil {
		return err
	}
	pidFile := daemon.NewPIDFile(pidPath)
	if err := pidFile.Write(); err != nil {
		return err
	}
	defer pidFile.Remove()

	hist, err := history.NewManager(cfg.DataDir)
	if err != nil {
		return err
	}
	defer hist.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	suggester, err := buildSuggester(ctx, cfg)
	if err != nil {
		return err
	}

	folderCache := cache.New(cache.WithTTL(cfg.Cache.TTL()))
	org := organizer.New(gdrive.Factory{}, folderCache, suggester,
		organizer.WithNameMatch(cfg.Resolve.NameMatch()),
		organizer.WithLogger(log),
	)

	if cfg.Cache.SweepSeconds > 0 {
		sweep, err := scheduler.NewIntervalScheduler(
			scheduler.Config{Interval: cfg.Cache.SweepInterval()},
			scheduler.SweepFunc(folderCache.Sweep),
		)
		if err != nil {
			return err
		}
		if err := sweep.Start(ctx); err != nil {
			return err
		}
		defer sweep.Stop()
	}

	srv := server.New(org, hist, cfg.Server, cfg.Scan)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func initLogger(cfg *config.Config) error {
	return logger.Init(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		File: logger.FileConfig{
			Enabled:    cfg.Log.File != "",
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSize,
			MaxAgeDays: cfg.Log.MaxAge,
			MaxBackups: cfg.Log.Backups,
			Compress:   cfg.Log.Compress,
		},
	})
}

func buildSuggester(ctx context.Context, cfg *config.Config) (suggest.Suggester, error) {
	if cfg.Suggest.Provider == "gemini" {
		gemini, err := suggest.NewGemini(ctx, cfg.Suggest.GeminiAPIKey, cfg.Suggest.Model,
			cfg.Suggest.ConfidenceThreshold)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	}
	return suggest.Heuristic{}, nil
}
