package service

import (
	"context"
	"testing"

	"creativeapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type showcaseFixture struct {
	svc      *ShowcaseService
	owner    *models.User
	staff    *models.User
	stranger *models.User
	showcase *models.Showcase
	votes    *voteRepoStub
	deleted  []uint
	created  []*models.Showcase
}

func newShowcaseFixture() *showcaseFixture {
	f := &showcaseFixture{
		owner:    &models.User{ID: 1, Slug: "owner"},
		staff:    &models.User{ID: 2, Slug: "mod", IsStaff: true},
		stranger: &models.User{ID: 3, Slug: "stranger"},
		votes:    newVoteRepoStub(),
	}
	f.showcase = &models.Showcase{ID: 10, Title: "Portrait", Slug: "portrait", UserID: f.owner.ID, SkillID: 5}
	skill := &models.Skill{ID: 5, Name: "Painting"}

	showcases := &showcaseRepoStub{
		getBySlugFn: func(_ context.Context, slug string) (*models.Showcase, error) {
			if slug == f.showcase.Slug {
				return f.showcase, nil
			}
			return nil, models.NewNotFoundError("Showcase", slug)
		},
		slugExistsFn: func(_ context.Context, slug string) (bool, error) {
			return slug == f.showcase.Slug, nil
		},
		createFn: func(_ context.Context, s *models.Showcase) error {
			s.ID = 11
			f.created = append(f.created, s)
			return nil
		},
		updateFn: func(context.Context, *models.Showcase) error { return nil },
		deleteFn: func(_ context.Context, id uint) error {
			f.deleted = append(f.deleted, id)
			return nil
		},
		listByUserFn: func(context.Context, models.UserID, int, int) ([]models.Showcase, error) {
			return []models.Showcase{*f.showcase}, nil
		},
	}
	skills := &skillRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Skill, error) {
			if id == skill.ID {
				return skill, nil
			}
			return nil, models.NewNotFoundError("Skill", id)
		},
	}
	users := &userRepoStub{getBySlugFn: usersBySlug(f.owner, f.staff, f.stranger)}
	f.svc = NewShowcaseService(showcases, users, skills, f.votes)
	return f
}

func TestShowcaseService_Create(t *testing.T) {
	f := newShowcaseFixture()
	ctx := context.Background()

	showcase, err := f.svc.CreateShowcase(ctx, "owner", ShowcaseInput{Title: "  Portrait ", SkillID: 5})
	require.NoError(t, err)
	assert.Equal(t, "Portrait", showcase.Title)
	assert.NotEqual(t, "portrait", showcase.Slug, "taken slug gets a suffix")
	assert.Contains(t, showcase.Slug, "portrait-")
	assert.Equal(t, f.owner.ID, showcase.UserID)

	_, err = f.svc.CreateShowcase(ctx, "owner", ShowcaseInput{Title: "x", SkillID: 99})
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = f.svc.CreateShowcase(ctx, "owner", ShowcaseInput{Title: "x"})
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = f.svc.CreateShowcase(ctx, "owner", ShowcaseInput{Title: "this title is far too long to fit in fifty characters", SkillID: 5})
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = f.svc.CreateShowcase(ctx, "ghost", ShowcaseInput{Title: "x", SkillID: 5})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Len(t, f.created, 1)
}

func TestShowcaseService_Permissions(t *testing.T) {
	f := newShowcaseFixture()
	ctx := context.Background()

	_, err := f.svc.UpdateShowcase(ctx, "stranger", "portrait", ShowcaseInput{Title: "Mine now", SkillID: 5})
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))

	updated, err := f.svc.UpdateShowcase(ctx, "owner", "portrait", ShowcaseInput{Title: "Self portrait", SkillID: 5})
	require.NoError(t, err)
	assert.Equal(t, "Self portrait", updated.Title)
	assert.Equal(t, "portrait", updated.Slug)

	err = f.svc.DeleteShowcase(ctx, "stranger", "portrait")
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))
	require.NoError(t, f.svc.DeleteShowcase(ctx, "mod", "portrait"))
	require.NoError(t, f.svc.DeleteShowcase(ctx, "owner", "portrait"))
	assert.Equal(t, []uint{10, 10}, f.deleted)
}

func TestShowcaseService_Votes(t *testing.T) {
	f := newShowcaseFixture()
	ctx := context.Background()

	change, err := f.svc.Upvote(ctx, "stranger", "portrait")
	require.NoError(t, err)
	assert.True(t, change.Changed)
	assert.Equal(t, int64(1), change.Count)
	assert.Equal(t, models.VoteTargetShowcase, change.Target)

	change, err = f.svc.Upvote(ctx, "stranger", "portrait")
	require.NoError(t, err)
	assert.False(t, change.Changed)
	assert.Equal(t, int64(1), change.Count)

	_, err = f.svc.Upvote(ctx, "mod", "portrait")
	require.NoError(t, err)

	voters, err := f.svc.Voters(ctx, "portrait")
	require.NoError(t, err)
	assert.Equal(t, []models.UserID{2, 3}, voters)

	got, err := f.svc.GetShowcase(ctx, "portrait")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.VoteCount)

	listed, err := f.svc.ListUserShowcases(ctx, "owner", 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(2), listed[0].VoteCount)

	change, err = f.svc.RemoveUpvote(ctx, "stranger", "portrait")
	require.NoError(t, err)
	assert.True(t, change.Changed)
	assert.Equal(t, int64(1), change.Count)

	change, err = f.svc.RemoveUpvote(ctx, "stranger", "portrait")
	require.NoError(t, err)
	assert.False(t, change.Changed)
}
