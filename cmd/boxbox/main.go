package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/boxbox/internal/briefing"
	claudebriefing "github.com/vbonduro/boxbox/internal/briefing/claude"
	ollamabriefing "github.com/vbonduro/boxbox/internal/briefing/ollama"
	"github.com/vbonduro/boxbox/internal/config"
	"github.com/vbonduro/boxbox/internal/db"
	"github.com/vbonduro/boxbox/internal/logging"
	"github.com/vbonduro/boxbox/internal/photostore/local"
	"github.com/vbonduro/boxbox/internal/service"
	"github.com/vbonduro/boxbox/internal/store"
	"github.com/vbonduro/boxbox/internal/web"
	"github.com/vbonduro/boxbox/internal/web/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if err := run(cfg, logger); err != nil {
		logger.Error("boxbox stopped with error", "error", err)
		cleanup()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	dsn := cfg.DatabaseURL
	if cfg.DBDriver == db.DriverSQLite {
		dsn = db.SQLiteDSN(cfg.DBPath)
	}

	database, err := db.Open(cfg.DBDriver, dsn)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	portraits, err := local.NewLocalPhotoStore(cfg.PortraitPath)
	if err != nil {
		return err
	}

	memberStore := store.NewMemberStore(database)
	server := web.NewServer(web.Services{
		Cars:        service.NewCarService(store.NewCarStore(database), logger),
		Members:     service.NewMemberService(memberStore, portraits, logger),
		Performance: service.NewPerformanceService(memberStore, newBriefer(cfg, logger), logger),
	}, templates.FS, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newBriefer returns nil when briefings are disabled.
func newBriefer(cfg *config.Config, logger *slog.Logger) briefing.Briefer {
	switch cfg.BriefingBackend {
	case config.BriefingClaude:
		logger.Info("using Claude briefing backend", "model", cfg.ClaudeModel)
		return claudebriefing.NewClaudeBriefer(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.ClaudeBaseURL)
	case config.BriefingOllama:
		logger.Info("using Ollama briefing backend", "model", cfg.OllamaModel)
		return ollamabriefing.NewOllamaBriefer(cfg.OllamaHost, cfg.OllamaModel)
	default:
		logger.Info("briefings disabled")
		return nil
	}
}
