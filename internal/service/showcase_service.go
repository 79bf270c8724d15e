package service

import (
	"context"
	"log/slog"
	"strings"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"
	"creativeapp/internal/repository"
	"creativeapp/internal/validation"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// ShowcaseInput carries the editable showcase fields.
type ShowcaseInput struct {
	Title       string
	Description *string
	Content     *string
	SkillID     uint
}

// Validate checks the title and skill.
func (in ShowcaseInput) Validate() error {
	return ozzo.ValidateStruct(&in,
		ozzo.Field(&in.Title, ozzo.Required.Error("title is required"), ozzo.RuneLength(1, 50)),
		ozzo.Field(&in.SkillID, ozzo.Required.Error("skill is required")),
	)
}

// ShowcaseService provides showcase business logic.
type ShowcaseService struct {
	showcaseRepo repository.ShowcaseRepository
	userRepo     repository.UserRepository
	skillRepo    repository.SkillRepository
	voteRepo     repository.VoteRepository
}

// NewShowcaseService returns a new ShowcaseService.
func NewShowcaseService(
	showcaseRepo repository.ShowcaseRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
	voteRepo repository.VoteRepository,
) *ShowcaseService {
	return &ShowcaseService{
		showcaseRepo: showcaseRepo,
		userRepo:     userRepo,
		skillRepo:    skillRepo,
		voteRepo:     voteRepo,
	}
}

// CreateShowcase publishes a showcase owned by ownerSlug.
func (s *ShowcaseService) CreateShowcase(ctx context.Context, ownerSlug string, in ShowcaseInput) (showcase *models.Showcase, err error) {
	ctx, span := startSpan(ctx, "ShowcaseService", "CreateShowcase")
	defer func() { observability.EndSpan(span, err) }()

	in.Title = strings.TrimSpace(in.Title)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	owner, err := userBySlug(ctx, s.userRepo, ownerSlug)
	if err != nil {
		return nil, err
	}
	skill, err := s.skillRepo.GetByID(ctx, in.SkillID)
	if err != nil {
		return nil, err
	}

	slug, err := validation.UniqueSlug(ctx, validation.Slugify(in.Title, "showcase"), s.showcaseRepo.SlugExists)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	showcase = &models.Showcase{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		UserID:      owner.ID,
		SkillID:     skill.ID,
		Slug:        slug,
	}
	if err := s.showcaseRepo.Create(ctx, showcase); err != nil {
		return nil, err
	}
	showcase.User = owner
	showcase.Skill = skill

	observability.Logger.InfoContext(ctx, "showcase created",
		slog.String("slug", showcase.Slug),
		slog.String("owner", owner.Slug),
	)
	return showcase, nil
}

// GetShowcase returns the showcase with its vote count.
func (s *ShowcaseService) GetShowcase(ctx context.Context, slug string) (*models.Showcase, error) {
	showcase, err := s.showcaseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if showcase.VoteCount, err = s.voteRepo.Count(ctx, models.VoteTargetShowcase, showcase.ID); err != nil {
		return nil, err
	}
	return showcase, nil
}

// UpdateShowcase edits a showcase. Only the owner may do so. The slug is
// kept so existing links stay valid.
func (s *ShowcaseService) UpdateShowcase(ctx context.Context, actorSlug, slug string, in ShowcaseInput) (*models.Showcase, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}
	actor, err := userBySlug(ctx, s.userRepo, actorSlug)
	if err != nil {
		return nil, err
	}
	showcase, err := s.showcaseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if showcase.UserID != actor.ID {
		return nil, models.NewUnauthorizedError("Only the owner can edit this showcase")
	}
	if in.SkillID != showcase.SkillID {
		skill, err := s.skillRepo.GetByID(ctx, in.SkillID)
		if err != nil {
			return nil, err
		}
		showcase.Skill = skill
	}

	showcase.Title = in.Title
	showcase.Description = in.Description
	showcase.Content = in.Content
	showcase.SkillID = in.SkillID
	if err := s.showcaseRepo.Update(ctx, showcase); err != nil {
		return nil, err
	}
	return showcase, nil
}

// DeleteShowcase removes a showcase with its comments, replies and votes.
// The owner and staff may delete.
func (s *ShowcaseService) DeleteShowcase(ctx context.Context, actorSlug, slug string) error {
	actor, err := userBySlug(ctx, s.userRepo, actorSlug)
	if err != nil {
		return err
	}
	showcase, err := s.showcaseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if showcase.UserID != actor.ID && !actor.IsStaff {
		return models.NewUnauthorizedError("Only the owner or staff can delete this showcase")
	}
	return s.showcaseRepo.Delete(ctx, showcase.ID)
}

// ListUserShowcases returns userSlug's showcases, newest first.
func (s *ShowcaseService) ListUserShowcases(ctx context.Context, userSlug string, limit, offset int) ([]models.Showcase, error) {
	user, err := userBySlug(ctx, s.userRepo, userSlug)
	if err != nil {
		return nil, err
	}
	showcases, err := s.showcaseRepo.ListByUser(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.withVoteCounts(ctx, showcases)
}

// ListSkillShowcases returns the showcases tagged with skillID, newest first.
func (s *ShowcaseService) ListSkillShowcases(ctx context.Context, skillID uint, limit, offset int) ([]models.Showcase, error) {
	if _, err := s.skillRepo.GetByID(ctx, skillID); err != nil {
		return nil, err
	}
	showcases, err := s.showcaseRepo.ListBySkill(ctx, skillID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.withVoteCounts(ctx, showcases)
}

func (s *ShowcaseService) withVoteCounts(ctx context.Context, showcases []models.Showcase) ([]models.Showcase, error) {
	ids := make([]uint, len(showcases))
	for i := range showcases {
		ids[i] = showcases[i].ID
	}
	counts, err := s.voteRepo.Counts(ctx, models.VoteTargetShowcase, ids)
	if err != nil {
		return nil, err
	}
	for i := range showcases {
		showcases[i].VoteCount = counts[showcases[i].ID]
	}
	return showcases, nil
}

// Upvote adds voterSlug to the showcase's voter set.
func (s *ShowcaseService) Upvote(ctx context.Context, voterSlug, slug string) (*VoteChange, error) {
	return s.vote(ctx, voterSlug, slug, true)
}

// RemoveUpvote takes voterSlug out of the showcase's voter set.
func (s *ShowcaseService) RemoveUpvote(ctx context.Context, voterSlug, slug string) (*VoteChange, error) {
	return s.vote(ctx, voterSlug, slug, false)
}

func (s *ShowcaseService) vote(ctx context.Context, voterSlug, slug string, add bool) (*VoteChange, error) {
	voter, err := userBySlug(ctx, s.userRepo, voterSlug)
	if err != nil {
		return nil, err
	}
	showcase, err := s.showcaseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return applyVote(ctx, s.voteRepo, models.VoteTargetShowcase, showcase.ID, voter.ID, add)
}

// Voters returns the ids of users who upvoted the showcase, ascending.
func (s *ShowcaseService) Voters(ctx context.Context, slug string) ([]models.UserID, error) {
	showcase, err := s.showcaseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.voteRepo.ListVoters(ctx, models.VoteTargetShowcase, showcase.ID)
}
