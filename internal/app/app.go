// Package app is the composition root: it assembles the session core and
// the local UI shell from environment configuration. Every service instance
// is constructed exactly once here and passed by reference downstream;
// wiring mistakes fail at startup.
package app

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pawconnect/platform/internal/api"
	"github.com/pawconnect/platform/internal/authstub"
	"github.com/pawconnect/platform/internal/core/ports"
	"github.com/pawconnect/platform/internal/core/service"
	"github.com/pawconnect/platform/internal/infrastructure/authapi"
	mongodb "github.com/pawconnect/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/pawconnect/platform/internal/infrastructure/db/redis"
	"github.com/pawconnect/platform/internal/infrastructure/storage"
	"github.com/pawconnect/platform/internal/pkg/config"
	"github.com/pawconnect/platform/pkg/logger"
)

// Build assembles the client application: session store, Auth API client,
// session manager, and router. Init has already run on the returned manager,
// so guards render definite decisions from the first request. The cleanup
// function releases the Redis connection when one was opened.
func Build(ctx context.Context) (*echo.Echo, func(), error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	var (
		store   ports.SessionStore
		rdb     *goredis.Client
		cleanup = func() {}
	)
	switch cfg.SessionStore {
	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		rdb = client
		store = redisdb.NewSessionStore(client, log)
		cleanup = func() { _ = client.Close() }
	case "file":
		store = storage.NewFileStore(cfg.SessionFile, log)
	default:
		return nil, nil, fmt.Errorf("app: unknown session store %q", cfg.SessionStore)
	}

	sessions, err := service.NewSessionManager(store, authapi.NewClient(cfg.AuthAPIURL, log), log)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("app: %w", err)
	}
	sessions.Init(ctx)

	return api.NewRouter(sessions, rdb, log), cleanup, nil
}

// BuildAuthStub assembles the development Auth API stub backed by MongoDB,
// for running the client against a persistent local backend.
func BuildAuthStub(ctx context.Context) (*echo.Echo, func(), error) {
	cfg := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, fmt.Errorf("app: %w", err)
	}

	e := authstub.NewServer(authstub.NewMongoRepository(db), cfg.Stub.JWTSecret, cfg.Stub.TokenTTL)
	cleanup := func() { _ = client.Disconnect(context.Background()) }
	return e, cleanup, nil
}
