package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	repo := NewFollowRepository(testDB)
	ctx := context.Background()

	alice := createTestUser(t, "follow_alice")
	bob := createTestUser(t, "follow_bob")
	carol := createTestUser(t, "follow_carol")

	t.Run("Create is idempotent at the row level", func(t *testing.T) {
		created, err := repo.Create(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, created)

		// Second insert hits the unique (follower, followee) index and
		// reports that nothing was written.
		created, err = repo.Create(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := repo.Exists(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, ok, "follow edges are directed")
	})

	t.Run("Followers and Following", func(t *testing.T) {
		_, err := repo.Create(ctx, carol.ID, bob.ID)
		require.NoError(t, err)

		followers, err := repo.Followers(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, followers, 2)

		following, err := repo.Following(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, bob.Username, following[0].Username)
	})

	t.Run("Counts", func(t *testing.T) {
		followers, following, err := repo.Counts(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), followers)
		assert.Equal(t, int64(0), following)
	})

	t.Run("Delete reports missing edge", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		ok, err := repo.Exists(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
