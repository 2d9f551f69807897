package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/RaphMerc007/WeCook/internal/blob"
	"github.com/RaphMerc007/WeCook/internal/config"
	"github.com/RaphMerc007/WeCook/internal/httpserver"
	"github.com/RaphMerc007/WeCook/internal/storage"
	"github.com/RaphMerc007/WeCook/internal/storage/memory"
	"github.com/RaphMerc007/WeCook/internal/storage/mongodb"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("FATAL failed to build logger: %v", err)
	}
	defer logger.Sync()

	printStartupBanner(logger, cfg)

	var store storage.Storage
	if cfg.MongoURI == "" {
		logger.Info("MONGODB_URI not set, using in-memory storage")
		store = memory.New()
	} else {
		store = mongodb.New(cfg.MongoURI, cfg.MongoDatabase, logger)
	}
	defer store.Close()

	blobs, err := blob.New(cfg)
	if err != nil {
		logger.Fatal("failed to initialize blob store", zap.Error(err))
	}

	server := httpserver.New(cfg, store, blobs, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == "local" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}

// printStartupBanner logs a one-time summary of the resolved configuration.
// No secrets are printed, only set/not-set indicators.
func printStartupBanner(logger *zap.Logger, cfg *config.Config) {
	logger.Info("========== WeCook API ==========",
		zap.String("env", cfg.Env),
		zap.Int("port", cfg.Port),
		zap.String("storage", storageMode(cfg)),
		zap.String("blob_mode", cfg.BlobMode),
		zap.String("auth_mode", cfg.AuthMode),
		zap.Bool("auth_required", cfg.AuthRequired),
		zap.Strings("cors_origins", cfg.CORSAllowedOrigins),
		zap.Int("rate_limit_rps", cfg.RateLimitRPS),
		zap.String("jwt_secret", secretStatus(cfg.JWTSecret)))
}

func storageMode(cfg *config.Config) string {
	if cfg.MongoURI == "" {
		return "memory"
	}
	return "mongodb/" + cfg.MongoDatabase
}

func secretStatus(secret string) string {
	if secret == "" || secret == "change_me" {
		return "default"
	}
	return "set"
}
