package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/republicadrc/memberkit/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	newSession := func(lifetime time.Duration) *session.Session {
		return session.NewSession(uuid.NewString(), uuid.New(), lifetime)
	}

	t.Run("put get delete", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		t.Cleanup(store.Close)

		s := newSession(time.Hour)
		require.NoError(t, store.Put(context.Background(), s))

		got, err := store.Get(context.Background(), s.Token)
		require.NoError(t, err)
		require.Equal(t, s.UserID, got.UserID)

		require.NoError(t, store.Delete(context.Background(), s.Token))
		_, err = store.Get(context.Background(), s.Token)
		require.ErrorIs(t, err, session.ErrNotFound)

		// Deleting again is fine.
		require.NoError(t, store.Delete(context.Background(), s.Token))
	})

	t.Run("get returns a copy", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		t.Cleanup(store.Close)

		s := newSession(time.Hour)
		require.NoError(t, store.Put(context.Background(), s))

		got, err := store.Get(context.Background(), s.Token)
		require.NoError(t, err)
		got.UserID = uuid.New()

		again, err := store.Get(context.Background(), s.Token)
		require.NoError(t, err)
		require.Equal(t, s.UserID, again.UserID)
	})

	t.Run("delete expired", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(0)
		t.Cleanup(store.Close)

		stale := newSession(-time.Minute)
		fresh := newSession(time.Hour)
		require.NoError(t, store.Put(context.Background(), stale))
		require.NoError(t, store.Put(context.Background(), fresh))

		require.NoError(t, store.DeleteExpired(context.Background()))

		_, err := store.Get(context.Background(), stale.Token)
		require.ErrorIs(t, err, session.ErrNotFound)

		_, err = store.Get(context.Background(), fresh.Token)
		require.NoError(t, err)
	})

	t.Run("janitor evicts expired", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(10 * time.Millisecond)
		t.Cleanup(store.Close)

		stale := newSession(-time.Minute)
		require.NoError(t, store.Put(context.Background(), stale))

		require.Eventually(t, func() bool {
			_, err := store.Get(context.Background(), stale.Token)
			return err != nil
		}, time.Second, 10*time.Millisecond)
	})
}
