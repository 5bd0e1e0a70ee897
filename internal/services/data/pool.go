// Package data is the fabric's reference data collaborator (SPEC_FULL
// §6.9): a minimal Postgres-backed store for exactly the envelope-level
// persistence the core depends on — idempotency keys, and the
// likes/matches/messages tables needed to exercise the §4.8 race and
// idempotent-send obligations deterministically. Profile/media/user
// records are int-id-free passthrough tables serving the thin adaptor
// edges (SPEC_FULL §6.11); scoring, discovery, and moderation business
// logic are not reintroduced here.
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps a pgxpool.Pool, grounded on the teacher's
// internal/infra/postgres/pool.go.
type Pool struct {
	pool *pgxpool.Pool
}

type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

func NewPool(ctx context.Context, databaseURL string, cfg PoolConfig) (*Pool, error) {
	const op = "data.NewPool"

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse config: %w", op, err)
	}
	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		config.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: create pool: %w", op, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}
	return &Pool{pool: pool}, nil
}

func (p *Pool) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }
func (p *Pool) Close()                         { p.pool.Close() }
func (p *Pool) Raw() *pgxpool.Pool             { return p.pool }
