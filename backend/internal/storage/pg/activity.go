package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/domain"
)

func (s *Storage) SaveActivity(ctx context.Context, event domain.ActivityEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity (id, subject, kind, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, event.Id, event.Subject, string(event.Kind), event.Status, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// Activity returns the newest events for subject.
func (s *Storage) Activity(ctx context.Context, subject []byte, limit int) ([]domain.ActivityEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, kind, status, created_at
		FROM activity
		WHERE subject = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var ev domain.ActivityEvent
		var kind string
		if err := rows.Scan(&ev.Id, &ev.Subject, &kind, &ev.Status, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		ev.Kind = domain.ActivityKind(kind)
		ev.CreatedAt = ev.CreatedAt.UTC()
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity: %w", err)
	}
	return events, nil
}

// DeleteActivityBefore removes events created before the cutoff.
func (s *Storage) DeleteActivityBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM activity WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete activity: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted activity: %w", err)
	}
	return deleted, nil
}
