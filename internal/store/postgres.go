// Package store provides the PostgreSQL-backed credential store.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfigueredo/amazon-sp-proxy/internal/credentials"
)

const defaultPoolSize = 10

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresStore implements credentials.Store using pgxpool
// (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// Pool sizes below 1 fall back to the default.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := poolConfig(connString, poolSize)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func poolConfig(connString string, poolSize int) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize < 1 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(poolSize)

	return cfg, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Get retrieves the credential record for a user.
func (s *PostgresStore) Get(ctx context.Context, userID string) (*credentials.Record, error) {
	rec := &credentials.Record{}
	err := s.pool.QueryRow(ctx, queryGetCredentials, userID).Scan(
		&rec.UserID,
		&rec.AccessToken,
		&rec.RefreshToken,
		&rec.ExpiresAt,
		&rec.MarketplaceDomain,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, credentials.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying credentials: %w", err)
	}
	return rec, nil
}

// Insert persists a new credential record. A unique violation on user_id
// maps to credentials.ErrDuplicate.
func (s *PostgresStore) Insert(ctx context.Context, rec *credentials.Record) error {
	args := pgx.NamedArgs{
		"user_id":            rec.UserID,
		"access_token":       rec.AccessToken,
		"refresh_token":      rec.RefreshToken,
		"expires_at":         rec.ExpiresAt,
		"marketplace_domain": rec.MarketplaceDomain,
	}

	_, err := s.pool.Exec(ctx, queryInsertCredentials, args)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return credentials.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("inserting credentials: %w", err)
	}
	return nil
}

// Update applies a token update and returns the record as stored.
func (s *PostgresStore) Update(
	ctx context.Context,
	userID string,
	upd credentials.TokenUpdate,
) (*credentials.Record, error) {
	rec := &credentials.Record{}
	err := s.pool.QueryRow(ctx, queryUpdateCredentialTokens,
		userID, upd.AccessToken, upd.RefreshToken, upd.ExpiresAt,
	).Scan(
		&rec.UserID,
		&rec.AccessToken,
		&rec.RefreshToken,
		&rec.ExpiresAt,
		&rec.MarketplaceDomain,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, credentials.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating credentials: %w", err)
	}
	return rec, nil
}

// Delete removes the credential record for a user. Deleting an absent
// record is not an error.
func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.pool.Exec(ctx, queryDeleteCredentials, userID); err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}
