package main

import (
	"context"
	"database/sql"
	"fmt"

	"gage_backend/internal/config"
	"gage_backend/internal/logger"
	"gage_backend/internal/repository"
	"gage_backend/internal/repository/db"
	"gage_backend/internal/secrets"
	"gage_backend/internal/service"
)

// app is the wired dependency graph shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	creds    secrets.Credentials
	conn     *sql.DB
	repos    *repository.Repository
	services *service.Service
	closers  []func() error
}

// bootstrap loads config, resolves secrets, opens the warehouse and wires
// repositories and services. Callers must call close.
func bootstrap(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigDir, opts.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	log.Infow("config loaded", "config", cfg.String())

	provider, err := secrets.NewProvider(cfg.Secrets)
	if err != nil {
		return nil, err
	}
	creds, err := secrets.Resolve(ctx, provider, cfg.Warehouse.Driver)
	if err != nil {
		return nil, err
	}

	conn, err := db.Open(cfg.Warehouse, creds)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	a := &app{cfg: cfg, log: log, creds: creds, conn: conn}
	a.closers = append(a.closers, conn.Close)

	sessions, err := a.openSessions(ctx)
	if err != nil {
		_ = a.close()
		return nil, err
	}

	a.repos = repository.NewRepository(conn, db.NewDialect(cfg.Warehouse), cfg.Warehouse.QueryTimeout, sessions)
	a.services = service.NewService(a.repos, service.AuthSettings{
		SigningKey: []byte(creds.JWTSecret),
		TokenTTL:   cfg.Auth.TokenTTL,
	})
	return a, nil
}

// openSessions picks the revocation store: Redis when configured, else memory.
func (a *app) openSessions(ctx context.Context) (repository.SessionRepo, error) {
	sc := a.cfg.Sessions
	if sc.RedisAddr == "" {
		a.log.Infow("sessions.redis_addr not set; revoked tokens kept in memory")
		return repository.NewSessionMemory(), nil
	}
	rdb, err := repository.NewRedisClient(ctx, sc.RedisAddr, sc.RedisPassword, sc.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", sc.RedisAddr, err)
	}
	a.closers = append(a.closers, rdb.Close)
	return repository.NewSessionRedis(rdb), nil
}

func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
