package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// DSN returns the postgres connection URI for the config.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.Name)
}

func NewDB(cfg DBConfig) (*sql.DB, error) {
	return connectDB(cfg.DSN(), cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.MaxIdleTime)
}

// connectDB connects to the database and returns the connection
func connectDB(URI string, maxOpenConns int, maxIdleConns int, maxIdleTime time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", URI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// CloseDB closes the database connection
func CloseDB(db *sql.DB) error {
	return db.Close()
}

// Migrate applies (up) or reverts (down) every migration found at source, e.g. "file://migrations".
func Migrate(source, dsn string, up bool) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	defer m.Close()

	if up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// UniqueViolation reports whether err is a unique constraint error on the named constraint.
func UniqueViolation(err error, constraint string) bool {
	return pqErrorIs(err, pqUniqueViolation, constraint)
}

// ForeignKeyViolation reports whether err is a foreign key constraint error on the named constraint.
func ForeignKeyViolation(err error, constraint string) bool {
	return pqErrorIs(err, pqForeignKeyViolation, constraint)
}

func pqErrorIs(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code && pqErr.Constraint == constraint
	}

	return false
}

// Rollback is used in deferred calls; it ignores sql.ErrTxDone after a successful commit.
func Rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}

// CountPastEnd fills in the total for a page requested past the last one.
// COUNT(*) OVER() is read from returned rows, so an empty page at a non-zero
// offset runs countQuery instead.
func CountPastEnd(ctx context.Context, db *sql.DB, returned, offset, total int, countQuery string, args ...any) (int, error) {
	if returned > 0 || offset == 0 {
		return total, nil
	}

	err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}
