package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/domain"
)

// DefaultCapacity bounds how many events the store keeps in total.
const DefaultCapacity = 10_000

// Storage keeps activity in process memory. Oldest events are dropped once
// capacity is reached.
type Storage struct {
	mu       sync.RWMutex
	events   []domain.ActivityEvent
	capacity int
}

func New(capacity int) *Storage {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Storage{capacity: capacity}
}

func (s *Storage) SaveActivity(ctx context.Context, event domain.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) >= s.capacity {
		s.events = s.events[len(s.events)-s.capacity+1:]
	}
	event.Subject = bytes.Clone(event.Subject)
	s.events = append(s.events, event)
	return nil
}

func (s *Storage) Activity(ctx context.Context, subject []byte, limit int) ([]domain.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ActivityEvent
	for _, ev := range s.events {
		if bytes.Equal(ev.Subject, subject) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Storage) DeleteActivityBefore(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.CreatedAt.Before(before) {
			continue
		}
		kept = append(kept, ev)
	}
	deleted := int64(len(s.events) - len(kept))
	clear(s.events[len(kept):])
	s.events = kept
	return deleted, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Storage) Cleanup() error {
	return nil
}
