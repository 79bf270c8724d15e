package service

import (
	"context"
	"log/slog"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"
	"creativeapp/internal/repository"
)

// FollowOutcome names what a follow-graph call did to the edge.
type FollowOutcome string

const (
	OutcomeFollowed   FollowOutcome = "followed"
	OutcomeRefollowed FollowOutcome = "refollowed"
	OutcomeUnfollowed FollowOutcome = "unfollowed"
	OutcomeBlocked    FollowOutcome = "blocked"
)

// FollowResult is the typed result of Follow, Unfollow and BlockFollower.
// Previous is empty when the edge did not exist before the call.
type FollowResult struct {
	Outcome  FollowOutcome
	Previous models.FollowStatus
	Edge     *models.FollowLog
}

// Message returns the user-facing confirmation for the outcome.
func (r *FollowResult) Message() string {
	switch r.Outcome {
	case OutcomeFollowed:
		return "Follow Successful"
	case OutcomeRefollowed:
		return "Refollow successful"
	case OutcomeUnfollowed:
		return "UnFollow Successful"
	case OutcomeBlocked:
		return "Block Successful"
	}
	return ""
}

// Changed reports whether the edge status differs from before the call.
func (r *FollowResult) Changed() bool {
	return r.Edge == nil || r.Previous != r.Edge.Status
}

// AlreadyInState is true when the edge already had the requested status.
func (r *FollowResult) AlreadyInState() bool {
	return !r.Changed()
}

// FollowCounts holds the number of active edges on each side of a user.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// FollowService implements the follow graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// resolvePair looks up both users and rejects self references.
func (s *FollowService) resolvePair(ctx context.Context, actorSlug, targetSlug, selfMsg string) (*models.User, *models.User, error) {
	actor, err := userBySlug(ctx, s.userRepo, actorSlug)
	if err != nil {
		return nil, nil, err
	}
	target, err := userBySlug(ctx, s.userRepo, targetSlug)
	if err != nil {
		return nil, nil, err
	}
	if actor.ID == target.ID {
		return nil, nil, models.NewSelfReferenceError(selfMsg)
	}
	return actor, target, nil
}

// Follow makes actorSlug follow targetSlug. A new edge yields
// OutcomeFollowed; an existing edge in any status yields OutcomeRefollowed.
func (s *FollowService) Follow(ctx context.Context, actorSlug, targetSlug string) (result *FollowResult, err error) {
	ctx, span := startSpan(ctx, "FollowService", "Follow")
	defer func() { observability.EndSpan(span, err) }()

	actor, target, err := s.resolvePair(ctx, actorSlug, targetSlug, "Cannot follow oneself")
	if err != nil {
		return nil, err
	}

	change, err := s.followRepo.Follow(ctx, target.ID, actor.ID)
	if err != nil {
		return nil, err
	}

	result = &FollowResult{Outcome: OutcomeRefollowed, Previous: change.Previous, Edge: change.Edge}
	if change.Created {
		result.Outcome = OutcomeFollowed
	}
	s.record(ctx, result, actor, target)
	return result, nil
}

// Unfollow stops actorSlug following targetSlug. It never creates an edge.
func (s *FollowService) Unfollow(ctx context.Context, actorSlug, targetSlug string) (result *FollowResult, err error) {
	ctx, span := startSpan(ctx, "FollowService", "Unfollow")
	defer func() { observability.EndSpan(span, err) }()

	actor, target, err := s.resolvePair(ctx, actorSlug, targetSlug, "Cannot unfollow oneself")
	if err != nil {
		return nil, err
	}

	change, err := s.followRepo.Transition(ctx, target.ID, actor.ID, models.FollowStatusUnfollowed)
	if err != nil {
		return nil, err
	}

	result = &FollowResult{Outcome: OutcomeUnfollowed, Previous: change.Previous, Edge: change.Edge}
	s.record(ctx, result, actor, target)
	return result, nil
}

// BlockFollower is the moderation action that marks followerSlug's edge to
// targetSlug as blocked, creating the edge if needed.
func (s *FollowService) BlockFollower(ctx context.Context, targetSlug, followerSlug string) (result *FollowResult, err error) {
	ctx, span := startSpan(ctx, "FollowService", "BlockFollower")
	defer func() { observability.EndSpan(span, err) }()

	follower, target, err := s.resolvePair(ctx, followerSlug, targetSlug, "Cannot block oneself")
	if err != nil {
		return nil, err
	}

	change, err := s.followRepo.Block(ctx, target.ID, follower.ID)
	if err != nil {
		return nil, err
	}

	result = &FollowResult{Outcome: OutcomeBlocked, Previous: change.Previous, Edge: change.Edge}
	s.record(ctx, result, follower, target)
	return result, nil
}

func (s *FollowService) record(ctx context.Context, result *FollowResult, actor, target *models.User) {
	ctx = observability.WithUserID(ctx, uint(actor.ID))
	observability.FollowTransitions.WithLabelValues(string(result.Outcome)).Inc()
	observability.Logger.InfoContext(ctx, "follow edge updated",
		slog.String("actor", actor.Slug),
		slog.String("target", target.Slug),
		slog.String("outcome", string(result.Outcome)),
		slog.String("previous", string(result.Previous)),
	)
}

// GetFollowers returns the slugs of users currently following slug.
func (s *FollowService) GetFollowers(ctx context.Context, slug string) ([]string, error) {
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowerSlugs(ctx, user.ID)
}

// GetFollowedUsers returns the slugs of users slug currently follows.
func (s *FollowService) GetFollowedUsers(ctx context.Context, slug string) ([]string, error) {
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowingSlugs(ctx, user.ID)
}

// GetFollowCounts returns active follower and following counts for slug.
func (s *FollowService) GetFollowCounts(ctx context.Context, slug string) (FollowCounts, error) {
	user, err := userBySlug(ctx, s.userRepo, slug)
	if err != nil {
		return FollowCounts{}, err
	}
	followers, following, err := s.followRepo.Counts(ctx, user.ID)
	if err != nil {
		return FollowCounts{}, err
	}
	return FollowCounts{Followers: followers, Following: following}, nil
}
