package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrClosed = errors.New("database handle is closed")

type DB struct {
	*pgxpool.Pool
}

type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

func NewPostgreSQLDB(ctx context.Context, dsn string, opts PoolOptions) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		config.MinConns = opts.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

// BeginReadOnly opens a REPEATABLE READ, READ ONLY transaction so a series of
// report queries observes one snapshot.
func (db *DB) BeginReadOnly(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Handle is the process-wide database resource. The pool is opened on the
// first Get and reused afterwards; a failed open is not cached so the next
// interaction tries again. Close releases the pool and makes later Gets fail.
type Handle struct {
	dsn  string
	opts PoolOptions

	mu     sync.Mutex
	db     *DB
	closed bool
}

func NewHandle(dsn string, opts PoolOptions) *Handle {
	return &Handle{dsn: dsn, opts: opts}
}

func (h *Handle) Get(ctx context.Context) (*DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.db != nil {
		return h.db, nil
	}

	db, err := NewPostgreSQLDB(ctx, h.dsn, h.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	h.db = db
	return db, nil
}

// Close is safe to call more than once and before the first Get.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		h.db.Close()
		h.db = nil
	}
	h.closed = true
}
