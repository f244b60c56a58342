package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/config"
	"github.com/admissible-dev/admissible-demo/shared/logger"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Storage struct {
	db *sql.DB
}

func New(cfg *config.Config) (*Storage, error) {
	pg := cfg.Public.Activity.Pg
	logger.Log.Info("connecting to db", "host", pg.Host, "port", pg.Port, "dbname", pg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db}, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	pg := cfg.Public.Activity.Pg
	port := pg.Port
	if port == 0 {
		port = 5432
	}
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pg.Host, port, cfg.Private.PgUser, cfg.Private.PgPassword, pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
