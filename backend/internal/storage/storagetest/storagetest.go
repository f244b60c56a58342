// Package storagetest holds behaviour every activity store must share.
package storagetest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Store interface {
	SaveActivity(ctx context.Context, event domain.ActivityEvent) error
	Activity(ctx context.Context, subject []byte, limit int) ([]domain.ActivityEvent, error)
	DeleteActivityBefore(ctx context.Context, before time.Time) (int64, error)
	Ping(ctx context.Context) error
}

func event(subject string, kind domain.ActivityKind, status int, at time.Time) domain.ActivityEvent {
	return domain.ActivityEvent{
		Id:        uuid.New(),
		Subject:   []byte(subject),
		Kind:      kind,
		Status:    status,
		CreatedAt: at,
	}
}

// Run exercises store. Subjects are prefixed with t.Name() so a shared
// database can be reused across runs.
func Run(t *testing.T, store Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, store.Ping(ctx))
	})

	t.Run("newest first and limited", func(t *testing.T) {
		subject := t.Name() + "/alice"
		kinds := []domain.ActivityKind{domain.ActivityInit, domain.ActivityOtp, domain.ActivityHello}
		for i, kind := range kinds {
			require.NoError(t, store.SaveActivity(ctx, event(subject, kind, http.StatusOK, base.Add(time.Duration(i)*time.Minute))))
		}

		got, err := store.Activity(ctx, []byte(subject), 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, domain.ActivityHello, got[0].Kind)
		assert.Equal(t, domain.ActivityOtp, got[1].Kind)
		assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
		assert.Equal(t, []byte(subject), got[0].Subject)
	})

	t.Run("subjects are isolated", func(t *testing.T) {
		alice := t.Name() + "/alice"
		bob := t.Name() + "/bob"
		require.NoError(t, store.SaveActivity(ctx, event(alice, domain.ActivityInit, http.StatusOK, base)))
		require.NoError(t, store.SaveActivity(ctx, event(bob, domain.ActivityOtp, http.StatusUnauthorized, base)))

		got, err := store.Activity(ctx, []byte(bob), 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.ActivityOtp, got[0].Kind)
		assert.Equal(t, http.StatusUnauthorized, got[0].Status)
		assert.False(t, got[0].Succeeded())
	})

	t.Run("unknown subject is empty", func(t *testing.T) {
		got, err := store.Activity(ctx, []byte(t.Name()+"/nobody"), 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("id round trips", func(t *testing.T) {
		ev := event(t.Name()+"/carol", domain.ActivityHello, http.StatusOK, base)
		require.NoError(t, store.SaveActivity(ctx, ev))

		got, err := store.Activity(ctx, ev.Subject, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ev.Id, got[0].Id)
	})
	t.Run("delete before cutoff", func(t *testing.T) {
		subject := t.Name() + "/dave"
		old := base.AddDate(-1, 0, 0)
		require.NoError(t, store.SaveActivity(ctx, event(subject, domain.ActivityInit, http.StatusOK, old)))
		require.NoError(t, store.SaveActivity(ctx, event(subject, domain.ActivityOtp, http.StatusOK, old.Add(time.Hour))))
		require.NoError(t, store.SaveActivity(ctx, event(subject, domain.ActivityHello, http.StatusOK, base)))

		deleted, err := store.DeleteActivityBefore(ctx, old.Add(2*time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, deleted, int64(2))

		got, err := store.Activity(ctx, []byte(subject), 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.ActivityHello, got[0].Kind)
	})
}
