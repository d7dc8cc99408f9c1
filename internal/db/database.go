// Package db provide shared, pooled access to PostgreSQL database.
package db

//
// database.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/config"
)

var errDatabaseClosed = errors.New("database is closed")

// Database is process-wide database handle: connection pool and query interface bound to it.
type Database struct {
	conf    config.DBConfig
	queries *Queries

	// pool and db are nil after Shutdown
	mu   sync.RWMutex
	pool *pgxpool.Pool
	db   *sqlx.DB

	queryDuration *prometheus.HistogramVec
}

// NewDatabaseI create Database from config.Settings registered in injector.
func NewDatabaseI(i do.Injector) (*Database, error) {
	settings, err := do.Invoke[config.Settings](i)
	if err != nil {
		return nil, aerr.Wrapf(err, "get settings failed").WithTag(aerr.InternalError)
	}

	conf, err := config.LoadDBConfig(settings)
	if err != nil {
		return nil, aerr.Wrapf(err, "load database configuration failed")
	}

	return Open(conf)
}

// Open create connection pool for `conf`. Connections are established on first use.
func Open(conf config.DBConfig) (*Database, error) {
	logger := log.Logger.With().Str("mod", "db").Logger()
	logger.Debug().Msgf("creating connection pool; %s", conf)

	poolconf, err := pgxpool.ParseConfig(conf.ConnString())
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrInvalidConf, err, "parse pool configuration failed").
			WithMeta("db", conf.String())
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolconf)
	if err != nil {
		return nil, aerr.Wrapf(err, "create connection pool failed").WithTag(aerr.InternalError).
			WithMeta("db", conf.String())
	}

	sqldb := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")

	return &Database{
		conf:    conf,
		pool:    pool,
		db:      sqldb,
		queries: NewQueries(sqldb),
	}, nil
}

// Config return configuration used to create pool.
func (d *Database) Config() config.DBConfig {
	return d.conf
}

func (d *Database) Pool() *pgxpool.Pool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.pool
}

func (d *Database) DB() *sqlx.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.db
}

// handles return pool and db; fail with ErrDatabase when database is already closed.
func (d *Database) handles() (*pgxpool.Pool, *sqlx.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.pool == nil || d.db == nil {
		return nil, nil, aerr.ApplyFor(aerr.ErrDatabase, errDatabaseClosed).WithMeta("db", d.conf.String())
	}

	return d.pool, d.db, nil
}

// Queries return query interface bound to pool; each call may use other connection.
func (d *Database) Queries() *Queries {
	return d.queries
}

// Ping acquire connection from pool and check it.
func (d *Database) Ping(ctx context.Context) error {
	pool, _, err := d.handles()
	if err != nil {
		return err
	}

	if err := pool.Ping(ctx); err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "ping database failed").WithMeta("db", d.conf.String())
	}

	return nil
}

// Shutdown close database. Called by samber/do.
func (d *Database) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pool == nil {
		return nil
	}

	logger := log.Ctx(ctx)
	logger.Debug().Str("mod", "db").Msg("closing database...")

	var err error
	if d.db != nil {
		err = d.db.Close()
		d.db = nil
	}

	d.pool.Close()
	d.pool = nil

	if err != nil {
		return aerr.Wrapf(err, "close db error")
	}

	logger.Debug().Str("mod", "db").Msg("database closed")

	return nil
}

// RegisterMetrics add database stats collector and, when `queryTime`, query duration histogram
// to `reg`.
func (d *Database) RegisterMetrics(reg prometheus.Registerer, queryTime bool) error {
	_, sqldb, err := d.handles()
	if err != nil {
		return err
	}

	if err := reg.Register(collectors.NewDBStatsCollector(sqldb.DB, d.conf.Database)); err != nil {
		return aerr.Wrapf(err, "register db stats collector failed").WithTag(aerr.InternalError)
	}

	if !queryTime {
		return nil
	}

	hist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Tracks the latencies for database query.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2, 5},
		},
		[]string{"caller"},
	)

	if err := reg.Register(hist); err != nil {
		return aerr.Wrapf(err, "register query duration histogram failed").WithTag(aerr.InternalError)
	}

	d.queryDuration = hist

	return nil
}

// RegisterMetrics resolve Database from injector and register its metrics.
func RegisterMetrics(i do.Injector, reg prometheus.Registerer, queryTime bool) error {
	database, err := do.Invoke[*Database](i)
	if err != nil {
		return aerr.Wrapf(err, "get database failed")
	}

	return database.RegisterMetrics(reg, queryTime)
}

func (d *Database) observeQueryDuration(start time.Time) {
	if d.queryDuration == nil {
		return
	}

	const skipFrames = 3

	rpc := make([]uintptr, 1)
	if n := runtime.Callers(skipFrames, rpc); n < 1 {
		return
	}

	frame, _ := runtime.CallersFrames(rpc).Next()
	if frame.PC == 0 {
		return
	}

	d.queryDuration.WithLabelValues(frame.Function).Observe(time.Since(start).Seconds())
}

//------------------------------------------------------------------------------

// InConnectionR run `fun` with queries bound to single connection; return `fun` result.
func InConnectionR[T any](ctx context.Context, d *Database, fun func(*Queries) (T, error)) (T, error) {
	start := time.Now()
	defer d.observeQueryDuration(start)

	_, sqldb, err := d.handles()
	if err != nil {
		return *new(T), err
	}

	conn, err := sqldb.Connx(ctx)
	if err != nil {
		return *new(T), aerr.ApplyFor(aerr.ErrDatabase, err, "open connection failed")
	}

	defer closeConn(ctx, conn)

	return fun(NewQueries(conn))
}

// InTransaction run `fun` in transaction; rollback when `fun` fail.
func InTransaction(ctx context.Context, d *Database, fun func(*Queries) error) error {
	start := time.Now()
	defer d.observeQueryDuration(start)

	_, err := inTransaction(ctx, d, func(q *Queries) (struct{}, error) {
		return struct{}{}, fun(q)
	})

	return err
}

// InTransactionR run `fun` in transaction; return `fun` result.
func InTransactionR[T any](ctx context.Context, d *Database, fun func(*Queries) (T, error)) (T, error) {
	start := time.Now()
	defer d.observeQueryDuration(start)

	return inTransaction(ctx, d, fun)
}

func inTransaction[T any](ctx context.Context, d *Database, fun func(*Queries) (T, error)) (T, error) {
	_, sqldb, err := d.handles()
	if err != nil {
		return *new(T), err
	}

	tx, err := sqldb.BeginTxx(ctx, nil)
	if err != nil {
		return *new(T), aerr.ApplyFor(aerr.ErrDatabase, err, "begin tx failed")
	}

	res, err := fun(NewQueries(tx))
	if err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return res, aerr.ApplyFor(aerr.ErrDatabase, errors.Join(err, rerr), "rollback tx failed")
		}

		return res, err
	}

	if err := tx.Commit(); err != nil {
		return res, aerr.ApplyFor(aerr.ErrDatabase, err, "commit tx failed")
	}

	return res, nil
}

func closeConn(ctx context.Context, conn *sqlx.Conn) {
	if err := conn.Close(); err != nil {
		logger := log.Ctx(ctx)
		logger.Error().Err(err).Str("mod", "db").Msg("close connection failed")
	}
}
