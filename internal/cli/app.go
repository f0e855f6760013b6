package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/askanything/board/internal/core/ports"
	"github.com/askanything/board/internal/core/service"
	"github.com/askanything/board/internal/core/store"
	"github.com/askanything/board/internal/infrastructure/config"
	"github.com/askanything/board/internal/infrastructure/kv/memory"
	"github.com/askanything/board/internal/infrastructure/kv/mongo"
	"github.com/askanything/board/internal/infrastructure/kv/redis"
	"github.com/askanything/board/internal/infrastructure/kv/sqlite"
	"github.com/askanything/board/pkg/logger"
)

// app is a loaded board: configuration, backend, store and service.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	kv      ports.KVStore
	pinger  ports.Pinger
	store   *store.Store
	service *service.BoardService
	close   func(context.Context) error
}

// openApp loads configuration, connects the configured backend and loads the
// board state from it. Callers must call close.
func openApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg, err := config.Load(ctx, opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	log := logger.Init(logger.Options{Level: level, Pretty: cfg.LogPretty, Env: cfg.Env})

	a := &app{cfg: cfg, log: log}
	if err := a.connect(ctx); err != nil {
		return nil, err
	}

	a.store = store.New(a.kv, uuid.NewString, time.Now, logger.For("store"))
	if err := a.store.Load(ctx); err != nil {
		_ = a.close(ctx)
		return nil, fmt.Errorf("load board: %w", err)
	}
	a.service = service.NewBoardService(a.store, uuid.NewString, time.Now, logger.For("service"))

	u, _ := a.store.User()
	log.Info().
		Str("backend", cfg.Backend).
		Str("user_id", u.ID).
		Int("questions", len(a.store.Questions())).
		Int("answers", len(a.store.Answers())).
		Msg("board loaded")
	return a, nil
}

func (a *app) connect(ctx context.Context) error {
	cfg := a.cfg
	switch cfg.Backend {
	case config.BackendMemory:
		kv := memory.New()
		a.kv, a.pinger = kv, kv
		a.close = func(context.Context) error { return nil }

	case config.BackendSQLite:
		kv, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		a.kv, a.pinger = kv, kv
		a.close = func(context.Context) error { return kv.Close() }

	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		kv := redis.NewStore(client, cfg.Redis.Prefix)
		a.kv, a.pinger = kv, kv
		a.close = func(context.Context) error { return kv.Close() }

	case config.BackendMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		kv := mongo.NewStore(db, cfg.Mongo.Collection)
		a.kv, a.pinger = kv, kv
		a.close = client.Disconnect

	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	a.log.Debug().Str("backend", cfg.Backend).Msg("backend connected")
	return nil
}

func (a *app) shutdown(ctx context.Context) {
	if err := a.close(ctx); err != nil {
		a.log.Error().Err(err).Msg("error closing backend")
	}
}
