package repository

import (
	"context"
	"sync"
	"testing"

	"creativeapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_StateMachine(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	t.Run("first follow creates the edge", func(t *testing.T) {
		change, err := repo.Follow(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, change.Created)
		assert.Empty(t, change.Previous)
		assert.Equal(t, models.FollowStatusFollowing, change.Edge.Status)
	})

	t.Run("second follow reuses the edge", func(t *testing.T) {
		change, err := repo.Follow(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.False(t, change.Created)
		assert.Equal(t, models.FollowStatusFollowing, change.Previous)

		var count int64
		require.NoError(t, db.Model(&models.FollowLog{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unfollow stamps unfollowed_on", func(t *testing.T) {
		change, err := repo.Transition(ctx, b.ID, a.ID, models.FollowStatusUnfollowed)
		require.NoError(t, err)
		assert.Equal(t, models.FollowStatusFollowing, change.Previous)

		edge, err := repo.Get(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.FollowStatusUnfollowed, edge.Status)
		assert.NotNil(t, edge.UnfollowedOn)

		followers, err := repo.ListFollowerSlugs(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, followers)
	})

	t.Run("refollow after unfollow", func(t *testing.T) {
		change, err := repo.Follow(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.False(t, change.Created)
		assert.Equal(t, models.FollowStatusUnfollowed, change.Previous)
		assert.Equal(t, models.FollowStatusFollowing, change.Edge.Status)
	})

	t.Run("transition without edge", func(t *testing.T) {
		_, err := repo.Transition(ctx, a.ID, b.ID, models.FollowStatusUnfollowed)
		assert.True(t, models.IsCode(err, models.CodeEdgeNotFound))
	})
}

func TestFollowRepository_Block(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	change, err := repo.Block(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, change.Created)
	assert.Equal(t, models.FollowStatusBlocked, change.Edge.Status)
	assert.NotNil(t, change.Edge.BlockedOn)

	followers, following, err := repo.Counts(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, followers)
	assert.Zero(t, following)
}

func TestFollowRepository_ListsAndCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "a")
	b := createUser(t, db, "b")
	c := createUser(t, db, "c")

	_, err := repo.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = repo.Follow(ctx, a.ID, c.ID)
	require.NoError(t, err)
	_, err = repo.Follow(ctx, c.ID, a.ID)
	require.NoError(t, err)
	_, err = repo.Transition(ctx, a.ID, c.ID, models.FollowStatusUnfollowed)
	require.NoError(t, err)

	followers, err := repo.ListFollowerSlugs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, followers)

	following, err := repo.ListFollowingSlugs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, following)

	nFollowers, nFollowing, err := repo.Counts(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nFollowers)
	assert.Equal(t, int64(1), nFollowing)
}

func TestFollowRepository_ConcurrentFollowKeepsOneEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Follow(ctx, b.ID, a.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&models.FollowLog{}).Where("user_id = ? AND followed_by_id = ?", b.ID, a.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowRepository_EdgesCascadeWithUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "a")
	b := createUser(t, db, "b")
	_, err := repo.Follow(ctx, b.ID, a.ID)
	require.NoError(t, err)

	require.NoError(t, NewUserRepository(db).Delete(ctx, a.ID))

	_, err = repo.Get(ctx, b.ID, a.ID)
	assert.True(t, models.IsCode(err, models.CodeEdgeNotFound))
}
