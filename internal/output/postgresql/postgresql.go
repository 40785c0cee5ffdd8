package postgresql

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/liftedinit/minichain/internal/block"
)

//go:embed migrations/*
var migrationsFS embed.FS

type PostgresOutputHandler struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

// DB returns a database/sql view of the pool for consumers such as the
// metrics collectors.
func (h *PostgresOutputHandler) DB() *sql.DB {
	return h.db
}

func NewPostgresOutputHandler(ctx context.Context, connString string, maxConcurrency uint) (*PostgresOutputHandler, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	if maxConcurrency > math.MaxInt32 {
		return nil, fmt.Errorf("max concurrency exceeds maximum int32 value")
	}
	config.MaxConns = int32(maxConcurrency)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	handler := &PostgresOutputHandler{
		pool: pool,
		db:   stdlib.OpenDBFromPool(pool),
	}

	// Run migrations. This is idempotent.
	if err = handler.runMigrations(); err != nil {
		handler.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return handler, nil
}

// GetLatestBlock returns the index and hash of the highest exported block, or
// nil when nothing has been exported yet.
func (h *PostgresOutputHandler) GetLatestBlock(ctx context.Context) (*block.Block, error) {
	var b block.Block
	var id int64
	err := h.pool.QueryRow(ctx, `
		SELECT id, hash
		FROM api.blocks
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&id, &b.Hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No rows found
		}
		return nil, fmt.Errorf("failed to get the latest block: %w", err)
	}
	b.Index = uint64(id)
	return &b, nil
}

// WriteBlock upserts b and replaces its transactions in a single database
// transaction.
func (h *PostgresOutputHandler) WriteBlock(ctx context.Context, b *block.Block) error {
	if b.Index > math.MaxInt64 || b.Nonce > math.MaxInt64 {
		return fmt.Errorf("block %d does not fit a BIGINT column", b.Index)
	}

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal block %d: %w", b.Index, err)
	}

	tx, err := h.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Ensure rollback if commit is not reached

	_, err = tx.Exec(ctx, `
		INSERT INTO api.blocks (id, timestamp, previous_hash, hash, nonce, data) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			timestamp = EXCLUDED.timestamp,
			previous_hash = EXCLUDED.previous_hash,
			hash = EXCLUDED.hash,
			nonce = EXCLUDED.nonce,
			data = EXCLUDED.data;
	`, int64(b.Index), b.Timestamp, b.PreviousHash, b.Hash, int64(b.Nonce), data)
	if err != nil {
		return fmt.Errorf("failed to write block %d: %w", b.Index, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM api.transactions WHERE block_id = $1`, int64(b.Index))
	if err != nil {
		return fmt.Errorf("failed to clear transactions of block %d: %w", b.Index, err)
	}

	for i, t := range b.Transactions {
		_, err = tx.Exec(ctx, `
			INSERT INTO api.transactions (block_id, position, sender, receiver, amount) VALUES ($1, $2, $3, $4, $5);
		`, int64(b.Index), i, t.Sender, t.Receiver, t.Amount)
		if err != nil {
			return fmt.Errorf("failed to write transaction %d of block %d: %w", i, b.Index, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (h *PostgresOutputHandler) runMigrations() error {
	slog.Info("Running PostgreSQL migrations...")

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(h.pool), &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	// Run migrations
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (h *PostgresOutputHandler) Close() error {
	slog.Info("Closing PostgreSQL connection pool")
	if err := h.db.Close(); err != nil {
		slog.Warn("Failed to close database handle", "error", err)
	}
	h.pool.Close()
	slog.Info("PostgreSQL connection pool closed")
	return nil
}
