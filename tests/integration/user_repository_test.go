package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circlepe/backend/internal/domain/identity"
	"github.com/circlepe/backend/internal/domain/shared"
	"github.com/circlepe/backend/internal/infrastructure/persistence"
)

// TestUserRepository_Integration exercises account persistence, including
// the lockout state machine, against a real PostgreSQL database.
func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("Save and FindByEmail lowercases the address", func(t *testing.T) {
		user, err := identity.NewUser("Admin@Example.com", "s3cret-pass", identity.RoleAdmin)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", found.Email)
		assert.Equal(t, identity.RoleAdmin, found.Role)
		assert.True(t, found.VerifyPassword("s3cret-pass"))
		assert.False(t, found.VerifyPassword("wrong"))
	})

	t.Run("lock state survives a round trip", func(t *testing.T) {
		user, err := identity.NewUser("viewer@example.com", "another-pass", identity.RoleViewer)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))

		for i := 0; i < 3; i++ {
			user.RecordLoginFailure(3, 15*time.Minute)
		}
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.UserStatusLocked, found.Status)
		assert.Equal(t, 3, found.FailedAttempts)
		require.NotNil(t, found.LockedUntil)
		assert.True(t, found.IsLocked())

		require.NoError(t, found.Unlock())
		require.NoError(t, repo.Save(ctx, found))

		unlocked, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.UserStatusActive, unlocked.Status)
		assert.Zero(t, unlocked.FailedAttempts)
		assert.Nil(t, unlocked.LockedUntil)
	})

	t.Run("ExistsByEmail and Delete", func(t *testing.T) {
		user, err := identity.NewUser("temp@example.com", "temp-pass-123", identity.RoleViewer)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, user))

		exists, err := repo.ExistsByEmail(ctx, "temp@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.Delete(ctx, user.ID))

		_, err = repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
