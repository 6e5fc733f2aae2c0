// @title        Offers API
// @version      1.0
// @description  Discount offers catalogue with user and admin roles.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/offerhub/offers-api/internal/api"
	"github.com/offerhub/offers-api/internal/core/ports"
	"github.com/offerhub/offers-api/internal/core/service"
	mongodb "github.com/offerhub/offers-api/internal/infrastructure/db/mongo"
	redisdb "github.com/offerhub/offers-api/internal/infrastructure/db/redis"
	"github.com/offerhub/offers-api/internal/pkg/config"
	"github.com/offerhub/offers-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	// The offer list cache is optional.
	var (
		rdb   *goredis.Client
		cache ports.OfferCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		cache = redisdb.NewOfferCache(rdb, cfg.Redis.CacheTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("offer cache enabled")
	}

	authService := service.NewAuthService(
		mongodb.NewUserRepository(db),
		cfg.JWTSecret,
		service.AuthOptions{TokenTTL: cfg.TokenTTL, BcryptCost: cfg.BcryptCost},
		logger.Component("auth"),
	)
	offerService := service.NewOfferService(
		mongodb.NewOfferRepository(db),
		cache,
		logger.Component("offers"),
	)

	if cfg.Admin.SeedAdmin() {
		if _, err := authService.CreateAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin account")
		}
	}

	routerCfg := api.RouterConfig{
		Auth:       authService,
		Verifier:   authService,
		Offers:     offerService,
		Mongo:      mongoClient,
		CORSOrigin: cfg.CORSOrigin,
		Logger:     logger.Component("http"),
	}
	if rdb != nil {
		routerCfg.Redis = rdb
	}
	e := api.NewRouter(routerCfg)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during http shutdown")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error disconnecting mongodb")
	}

	log.Info().Msg("server gracefully stopped")
}
