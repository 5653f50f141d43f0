package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskloop/todo-api/internal/api"
	"github.com/taskloop/todo-api/internal/core/ports"
	mongodb "github.com/taskloop/todo-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/taskloop/todo-api/internal/infrastructure/db/redis"
	"github.com/taskloop/todo-api/internal/infrastructure/storage"
	"github.com/taskloop/todo-api/internal/pkg/config"
	"github.com/taskloop/todo-api/internal/pkg/mail"
	"github.com/taskloop/todo-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Taskloop To-Do API
// @version      1.0
// @description  REST API for a personal to-do list application with per-user task isolation.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewTaskRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("task index creation failed")
	}

	// --- Redis (optional: login throttling degrades gracefully) ---
	var rdb *redis.Client
	rdb, err = redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// --- Avatar storage ---
	avatars, err := storage.NewAvatarStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("avatar storage init failed")
	}

	// --- Welcome mailer (optional) ---
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		m, err := mail.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
		if err != nil {
			log.Fatal().Err(err).Msg("mailer init failed")
		}
		mailer = m
	}

	e := api.NewRouter(db, rdb, avatars, mailer, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
