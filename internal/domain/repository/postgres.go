package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sqlx.DB
}

// NewPostgresRepository opens and pings a PostgreSQL pool for connStr.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresRepository{DB: db}, nil
}

func (r *PostgresRepository) Close() error {
	return r.DB.Close()
}
