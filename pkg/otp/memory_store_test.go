package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	challenge := func(email string) *Challenge {
		return &Challenge{
			Email:     email,
			Code:      "654321",
			Purpose:   PurposeSignup,
			ExpiresAt: time.Now().Add(10 * time.Minute),
			CreatedAt: time.Now(),
		}
	}

	t.Run("upsert and get", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		require.NoError(t, store.Upsert(context.Background(), challenge("a@example.com")))

		got, err := store.Get(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.Equal(t, "654321", got.Code)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		require.NoError(t, store.Upsert(context.Background(), challenge("a@example.com")))

		got, err := store.Get(context.Background(), "a@example.com")
		require.NoError(t, err)
		got.Code = "tampered"

		again, err := store.Get(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.Equal(t, "654321", again.Code)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		require.NoError(t, store.Upsert(context.Background(), challenge("a@example.com")))

		replacement := challenge("a@example.com")
		replacement.Code = "111111"
		require.NoError(t, store.Upsert(context.Background(), replacement))

		got, err := store.Get(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.Equal(t, "111111", got.Code)
	})

	t.Run("mark verified", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		require.NoError(t, store.Upsert(context.Background(), challenge("a@example.com")))
		require.NoError(t, store.MarkVerified(context.Background(), "a@example.com"))

		got, err := store.Get(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.True(t, got.Verified)

		require.ErrorIs(t, store.MarkVerified(context.Background(), "missing@example.com"), ErrNotFound)
	})

	t.Run("increment attempts", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		require.NoError(t, store.Upsert(context.Background(), challenge("a@example.com")))

		n, err := store.IncrementAttempts(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.Equal(t, 1, n)

		n, err = store.IncrementAttempts(context.Background(), "a@example.com")
		require.NoError(t, err)
		require.Equal(t, 2, n)

		_, err = store.IncrementAttempts(context.Background(), "missing@example.com")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		require.NoError(t, store.Upsert(context.Background(), challenge("a@example.com")))
		require.NoError(t, store.Delete(context.Background(), "a@example.com"))
		require.NoError(t, store.Delete(context.Background(), "a@example.com"))

		_, err := store.Get(context.Background(), "a@example.com")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("janitor evicts expired", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore(WithCleanupInterval(10 * time.Millisecond))
		t.Cleanup(store.Close)

		expired := challenge("old@example.com")
		expired.ExpiresAt = time.Now().Add(-time.Second)
		require.NoError(t, store.Upsert(context.Background(), expired))
		require.NoError(t, store.Upsert(context.Background(), challenge("fresh@example.com")))

		require.Eventually(t, func() bool {
			_, err := store.Get(context.Background(), "old@example.com")
			return err != nil
		}, time.Second, 10*time.Millisecond)

		_, err := store.Get(context.Background(), "fresh@example.com")
		require.NoError(t, err)
	})
}
