package service

import (
	"context"
	"fmt"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/crypto"
	"github.com/admissible-dev/admissible-demo/shared/domain"
	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/google/uuid"
)

const MaxActivityLimit = 50

type ActivityService interface {
	Record(ctx context.Context, email domain.Email, kind domain.ActivityKind, status int)
	Recent(ctx context.Context, email domain.Email, limit int) ([]domain.ActivityEvent, error)
}

type ActivityStorage interface {
	SaveActivity(ctx context.Context, event domain.ActivityEvent) error
	Activity(ctx context.Context, subject []byte, limit int) ([]domain.ActivityEvent, error)
	Ping(ctx context.Context) error
}

type Activity struct {
	storage ActivityStorage
	hasher  *crypto.SubjectHasher
	now     func() time.Time
}

// NewActivity takes the base64 subject key. An empty key still hashes, but
// subjects become guessable from a list of addresses.
func NewActivity(storage ActivityStorage, key string) (*Activity, error) {
	hasher, err := crypto.NewSubjectHasher(key)
	if err != nil {
		return nil, fmt.Errorf("activity key: %w", err)
	}
	if !hasher.Keyed() {
		logger.Log.Warn("activity key is empty, activity subjects are unkeyed hashes")
	}
	return &Activity{storage: storage, hasher: hasher, now: time.Now}, nil
}

// Subject is the stored form of an email address.
func (a *Activity) Subject(email domain.Email) []byte {
	return a.hasher.Hash(email)
}

// Record stores an event. It never fails the request that caused it.
func (a *Activity) Record(ctx context.Context, email domain.Email, kind domain.ActivityKind, status int) {
	if email == "" {
		return
	}
	event := domain.ActivityEvent{
		Id:        uuid.New(),
		Subject:   a.Subject(email),
		Kind:      kind,
		Status:    status,
		CreatedAt: a.now().UTC(),
	}
	if err := a.storage.SaveActivity(ctx, event); err != nil {
		logger.Log.Error("saving activity event", "kind", kind, "error", err)
	}
}

// Recent returns the newest events for email, newest first.
func (a *Activity) Recent(ctx context.Context, email domain.Email, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 || limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	events, err := a.storage.Activity(ctx, a.Subject(email), limit)
	if err != nil {
		return nil, fmt.Errorf("loading activity: %w", err)
	}
	return events, nil
}

func (a *Activity) Ping(ctx context.Context) error {
	return a.storage.Ping(ctx)
}
