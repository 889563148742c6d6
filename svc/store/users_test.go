package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserDocMapping(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		doc := userDoc{
			ID:         id.String(),
			Email:      "user@example.com",
			Name:       "User",
			AvatarURL:  "https://cdn.example.com/a.png",
			ExternalID: "google-123",
			AuthMethod: "external",
			Role:       "user",
			CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
		}

		user, err := doc.toUser()
		require.NoError(t, err)
		require.Equal(t, id, user.ID)
		require.Equal(t, doc.Email, user.Email)
		require.Equal(t, doc.Name, user.Name)
		require.Equal(t, doc.AvatarURL, user.AvatarURL)
		require.Equal(t, doc.ExternalID, user.ExternalID)
		require.Equal(t, doc.AuthMethod, user.AuthMethod)
		require.Equal(t, doc.Role, user.Role)
		require.Equal(t, doc.CreatedAt, user.CreatedAt)
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		doc := userDoc{ID: "not-a-uuid", Email: "user@example.com"}
		user, err := doc.toUser()
		require.Error(t, err)
		require.Nil(t, user)
	})
}
