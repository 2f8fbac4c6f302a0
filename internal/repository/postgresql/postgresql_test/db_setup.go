package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storeanalytics/sales-dashboard-go/internal/pkg/database"
)

// schemaDDL is the slice of the point-of-sale schema the reports read.
var schemaDDL = []string{
	`CREATE TABLE user_the_best (id integer PRIMARY KEY, name text)`,
	`CREATE TABLE cash_history (id integer PRIMARY KEY, store_id integer NOT NULL, opened_by integer)`,
	`CREATE TABLE balance_history (id serial PRIMARY KEY, cash_history_id integer NOT NULL)`,
	`CREATE TABLE sales (
		id integer PRIMARY KEY,
		cash_history_id integer NOT NULL,
		created_at timestamp NOT NULL,
		type integer NOT NULL DEFAULT 0,
		abstract_sale boolean NOT NULL DEFAULT false,
		cpf_used_club boolean NOT NULL DEFAULT false
	)`,
	`CREATE TABLE sale_items (
		id serial PRIMARY KEY,
		sale_id integer NOT NULL,
		name text NOT NULL,
		created_at timestamp NOT NULL DEFAULT now()
	)`,
}

// TestDatabaseSetup owns a throwaway schema on the test database.
type TestDatabaseSetup struct {
	Admin  *pgxpool.Pool
	Handle *database.Handle
	Schema string
}

// NewTestDatabase creates a fresh schema and a Handle whose connections use
// it as search_path. It returns (nil, nil) when TEST_DATABASE_URL is unset.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	admin, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	schema := fmt.Sprintf("sales_dashboard_test_%d", time.Now().UnixNano())
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	for _, stmt := range schemaDDL {
		if _, err := admin.Exec(ctx, "SET search_path TO "+schema+";"+stmt); err != nil {
			admin.Close()
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	handle := database.NewHandle(dsn+sep+"search_path="+schema, database.PoolOptions{MaxConns: 4})

	return &TestDatabaseSetup{Admin: admin, Handle: handle, Schema: schema}, nil
}

// Exec runs statements inside the test schema.
func (t *TestDatabaseSetup) Exec(ctx context.Context, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := t.Admin.Exec(ctx, "SET search_path TO "+t.Schema+";"+stmt); err != nil {
			return fmt.Errorf("failed to exec %q: %w", stmt, err)
		}
	}
	return nil
}

// Close drops the schema and closes both pools.
func (t *TestDatabaseSetup) Close() {
	t.Handle.Close()
	_, _ = t.Admin.Exec(context.Background(), "DROP SCHEMA "+t.Schema+" CASCADE")
	t.Admin.Close()
}
