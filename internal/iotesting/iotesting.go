// Package iotesting provides shared helpers for integration tests that
// need PostgreSQL.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/gnames/taxodrift/internal/iodb"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/db"
)

// TestDatabaseName is the database name used for all integration tests.
// This ensures tests never accidentally run against production databases.
const TestDatabaseName = "taxodrift_test"

// Config returns default settings with database credentials taken from
// TAXODRIFT_DATABASE_* environment variables. The database name is
// always TestDatabaseName.
func Config() *config.Config {
	cfg := config.New()
	var opts []config.Option
	if s := os.Getenv("TAXODRIFT_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("TAXODRIFT_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("TAXODRIFT_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("TAXODRIFT_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)
	return cfg
}

// Operator connects to the test database. The test is skipped in short
// mode or when PostgreSQL is not reachable.
func Operator(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	op := iodb.NewPgxOperator()
	if err := op.Connect(context.Background(), &cfg.Database); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { op.Close() })
	return op
}
