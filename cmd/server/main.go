package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/chaisthra/vibetrack/internal"
	"github.com/chaisthra/vibetrack/internal/api"
	"github.com/chaisthra/vibetrack/internal/auth"
	"github.com/chaisthra/vibetrack/internal/config"
	"github.com/chaisthra/vibetrack/internal/llm"
	"github.com/chaisthra/vibetrack/internal/storage"
	"github.com/chaisthra/vibetrack/internal/voice"
)

func main() {
	cfg := config.Load()

	var zl *zap.Logger
	var err error
	if cfg.Env == "development" {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()
	logger := internal.NewZapLogger(zl.Sugar())

	var repos storage.Repositories
	switch cfg.StorageBackend {
	case "postgres":
		repos, err = storage.NewPostgresRepositories(cfg.PostgresDSN, logger)
	default:
		repos, err = storage.NewFileRepositories(cfg.DataDir, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	groq := llm.NewClient(cfg.GroqURL, cfg.GroqAPIKey, cfg.GroqModel, cfg.Categories, cfg.DefaultCategory, logger)

	app := &api.Application{
		Log:         logger,
		Cfg:         cfg,
		Repos:       repos,
		JWT:         auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL),
		LLM:         groq,
		Chat:        groq,
		Voice:       voice.NewTranscriptClient(cfg.ElevenLabsURL, logger),
		SessionSlot: voice.NewSessionManager(),
	}

	r := api.NewRouter(app)
	logger.Infof("listening on %s (storage=%s)", cfg.Addr, cfg.StorageBackend)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
