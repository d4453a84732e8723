package db

import (
	"context"

	"github.com/gnames/taxodrift/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages a PostgreSQL connection pool used by exports.
// Exporters take the pool for GORM migrations and CopyFrom bulk loads.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pool, nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)
}
