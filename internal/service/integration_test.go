package service

import (
	"context"
	"fmt"
	"testing"

	"creativeapp/internal/database"
	"creativeapp/internal/models"
	"creativeapp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type services struct {
	db        *gorm.DB
	users     *UserService
	follows   *FollowService
	skills    *SkillService
	showcases *ShowcaseService
	comments  *CommentService
}

func newSQLiteServices(t *testing.T) *services {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	showcaseRepo := repository.NewShowcaseRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	return &services{
		db:        db,
		users:     NewUserService(userRepo, bcrypt.MinCost),
		follows:   NewFollowService(repository.NewFollowRepository(db), userRepo),
		skills:    NewSkillService(skillRepo),
		showcases: NewShowcaseService(showcaseRepo, userRepo, skillRepo, voteRepo),
		comments:  NewCommentService(repository.NewCommentRepository(db), showcaseRepo, userRepo, voteRepo),
	}
}

func (s *services) mustUser(t *testing.T, slug string) *models.User {
	t.Helper()
	u, err := s.users.CreateUser(context.Background(), CreateUserInput{
		Email: slug + "@example.com", Password: "password1", Slug: slug,
	})
	require.NoError(t, err)
	return u
}

func TestIntegration_FollowScenario(t *testing.T) {
	s := newSQLiteServices(t)
	ctx := context.Background()
	s.mustUser(t, "a")
	s.mustUser(t, "b")

	res, err := s.follows.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "Follow Successful", res.Message())

	res, err = s.follows.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "Refollow successful", res.Message())

	res, err = s.follows.Unfollow(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "UnFollow Successful", res.Message())

	followers, err := s.follows.GetFollowers(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, followers)

	res, err = s.follows.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRefollowed, res.Outcome)

	var edges int64
	require.NoError(t, s.db.Model(&models.FollowLog{}).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)

	_, err = s.follows.Follow(ctx, "a", "a")
	assert.True(t, models.IsCode(err, models.CodeSelfReference))
}

func TestIntegration_ShowcaseLifecycle(t *testing.T) {
	s := newSQLiteServices(t)
	ctx := context.Background()
	owner := s.mustUser(t, "owner")
	fan := s.mustUser(t, "fan")

	skill, err := s.skills.CreateSkill(ctx, "Photography", &owner.ID)
	require.NoError(t, err)

	showcase, err := s.showcases.CreateShowcase(ctx, "owner", ShowcaseInput{Title: "Golden Hour", SkillID: skill.ID})
	require.NoError(t, err)
	assert.Equal(t, "golden-hour", showcase.Slug)

	comment, err := s.comments.AddComment(ctx, "fan", showcase.Slug, "stunning")
	require.NoError(t, err)
	reply, err := s.comments.ReplyToComment(ctx, "owner", comment.ID, "thanks!")
	require.NoError(t, err)

	_, err = s.showcases.Upvote(ctx, "fan", showcase.Slug)
	require.NoError(t, err)
	again, err := s.showcases.Upvote(ctx, "fan", showcase.Slug)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	_, err = s.showcases.Upvote(ctx, "owner", showcase.Slug)
	require.NoError(t, err)
	voters, err := s.showcases.Voters(ctx, showcase.Slug)
	require.NoError(t, err)
	assert.Equal(t, []models.UserID{owner.ID, fan.ID}, voters)
	removed, err := s.showcases.RemoveUpvote(ctx, "owner", showcase.Slug)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed.Count)
	_, err = s.comments.UpvoteComment(ctx, "owner", comment.ID)
	require.NoError(t, err)
	_, err = s.comments.UpvoteReply(ctx, "fan", reply.ID)
	require.NoError(t, err)

	tree, err := s.comments.ListComments(ctx, showcase.Slug)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, int64(1), tree[0].VoteCount)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, int64(1), tree[0].Replies[0].VoteCount)

	err = s.users.DeleteUser(ctx, "owner")
	assert.True(t, models.IsCode(err, models.CodeConflict), "owner with showcases cannot be deleted")

	require.NoError(t, s.showcases.DeleteShowcase(ctx, "owner", showcase.Slug))
	for _, table := range []string{"comments", "reply_comments", "showcase_voters", "comment_voters", "reply_voters"} {
		var count int64
		require.NoError(t, s.db.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}

	require.NoError(t, s.users.DeleteUser(ctx, "owner"))
	_, err = s.users.GetBySlug(ctx, "owner")
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = s.users.Authenticate(ctx, fan.Email, "password1")
	assert.NoError(t, err)
}

func TestIntegration_InactiveUserPersists(t *testing.T) {
	s := newSQLiteServices(t)
	ctx := context.Background()

	inactive := false
	created, err := s.users.CreateUser(ctx, CreateUserInput{
		Email: "dormant@example.com", Password: "password1", Slug: "dormant", IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	reloaded, err := s.users.GetBySlug(ctx, "dormant")
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)

	_, err = s.users.Authenticate(ctx, "dormant@example.com", "password1")
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))

	active := s.mustUser(t, "awake")
	reloaded, err = s.users.GetBySlug(ctx, active.Slug)
	require.NoError(t, err)
	assert.True(t, reloaded.IsActive)
}
