package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/reyvanevan/saas-admin-gateway/internal/api"
	"github.com/reyvanevan/saas-admin-gateway/internal/core/service"
	"github.com/reyvanevan/saas-admin-gateway/internal/infrastructure/config"
	mongodb "github.com/reyvanevan/saas-admin-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/reyvanevan/saas-admin-gateway/internal/infrastructure/db/redis"
	"github.com/reyvanevan/saas-admin-gateway/internal/infrastructure/identity"
	"github.com/reyvanevan/saas-admin-gateway/internal/infrastructure/queue"
	"github.com/reyvanevan/saas-admin-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Admin Gateway API
// @version 1.0
// @description Session and access-control gateway for the multi-tenant admin dashboard.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, disconnect, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	gateway := identity.NewProvider(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokens := redisdb.NewTokenStore(rdb, cfg.RefreshTokenTTL)
	sessions := redisdb.NewSessionRepository(rdb, cfg.SessionTTL)

	manager := service.NewManager(gateway, tokens, sessions, dispatcher, log)

	e := api.NewRouter(manager, db, rdb, cfg.SessionCookie, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("admin gateway started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}
	if err := disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect error")
	}

	log.Info().Msg("admin gateway stopped")
}
