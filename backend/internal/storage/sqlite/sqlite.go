package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Storage persists activity in a single SQLite file.
type Storage struct {
	db *sql.DB
}

// Open opens path and creates the schema. ":memory:" is accepted for tests.
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// every connection to :memory: is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Cleanup() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) SaveActivity(ctx context.Context, event domain.ActivityEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, subject, kind, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		event.Id.String(), event.Subject, string(event.Kind), event.Status, event.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *Storage) Activity(ctx context.Context, subject []byte, limit int) ([]domain.ActivityEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, kind, status, created_at
		 FROM activity
		 WHERE subject = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		subject, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var (
			ev        domain.ActivityEvent
			id        string
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&id, &ev.Subject, &kind, &ev.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if ev.Id, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse activity id: %w", err)
		}
		ev.Kind = domain.ActivityKind(kind)
		ev.CreatedAt = time.UnixMilli(createdAt).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return events, nil
}

func (s *Storage) DeleteActivityBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM activity WHERE created_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("delete activity: %w", err)
	}
	return res.RowsAffected()
}
