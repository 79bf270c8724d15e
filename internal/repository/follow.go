package repository

import (
	"context"
	"errors"
	"time"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EdgeChange reports the state of a follow edge after a mutation.
// Previous is empty when the edge was created by the call.
type EdgeChange struct {
	Edge     *models.FollowLog
	Previous models.FollowStatus
	Created  bool
}

// FollowRepository defines persistence operations for follow edges.
// target is the followed user, actor the follower.
type FollowRepository interface {
	Follow(ctx context.Context, target, actor models.UserID) (*EdgeChange, error)
	Transition(ctx context.Context, target, actor models.UserID, status models.FollowStatus) (*EdgeChange, error)
	Block(ctx context.Context, target, actor models.UserID) (*EdgeChange, error)
	Get(ctx context.Context, target, actor models.UserID) (*models.FollowLog, error)
	ListFollowerSlugs(ctx context.Context, userID models.UserID) ([]string, error)
	ListFollowingSlugs(ctx context.Context, userID models.UserID) ([]string, error)
	Counts(ctx context.Context, userID models.UserID) (followers int64, following int64, err error)
}

type followRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
	now func() time.Time
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db, log: observability.NewRepoLogger("follow_logs"), now: time.Now}
}

var followPairColumns = []clause.Column{{Name: "user_id"}, {Name: "followed_by_id"}}

// Follow creates the edge in state following, or moves an existing edge
// back to following. The insert uses ON CONFLICT DO NOTHING so concurrent
// callers never produce a second row for the pair.
func (r *followRepository) Follow(ctx context.Context, target, actor models.UserID) (*EdgeChange, error) {
	return r.upsert(ctx, target, actor, models.FollowStatusFollowing, "follow")
}

// Block is Follow with the blocked status.
func (r *followRepository) Block(ctx context.Context, target, actor models.UserID) (*EdgeChange, error) {
	return r.upsert(ctx, target, actor, models.FollowStatusBlocked, "block")
}

func (r *followRepository) upsert(ctx context.Context, target, actor models.UserID, status models.FollowStatus, op string) (*EdgeChange, error) {
	defer observability.TrackQuery(op, "follow_logs")()

	var change *EdgeChange
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := r.now()
		edge := &models.FollowLog{UserID: target, FollowedByID: actor}
		edge.Transition(status, now)

		res := tx.Clauses(clause.OnConflict{Columns: followPairColumns, DoNothing: true}).
			Omit(clause.Associations).
			Create(edge)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			change = &EdgeChange{Edge: edge, Created: true}
			return nil
		}

		existing, err := r.transition(tx, target, actor, status, now)
		if err != nil {
			return err
		}
		change = existing
		return nil
	})
	if err != nil {
		r.log.LogError(ctx, err, op)
		return nil, translateError(err, "FollowLog", actor)
	}

	r.log.LogUpdate(ctx, map[string]interface{}{
		"user_id":        target,
		"followed_by_id": actor,
		"status":         status,
		"created":        change.Created,
	})
	return change, nil
}

// Transition moves an existing edge to status. It never creates a row.
func (r *followRepository) Transition(ctx context.Context, target, actor models.UserID, status models.FollowStatus) (*EdgeChange, error) {
	defer observability.TrackQuery("transition", "follow_logs")()

	var change *EdgeChange
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		change, err = r.transition(tx, target, actor, status, r.now())
		return err
	})
	if err != nil {
		if models.IsCode(err, models.CodeEdgeNotFound) {
			return nil, err
		}
		r.log.LogError(ctx, err, "transition")
		return nil, translateError(err, "FollowLog", actor)
	}

	r.log.LogUpdate(ctx, map[string]interface{}{
		"user_id":        target,
		"followed_by_id": actor,
		"status":         status,
	})
	return change, nil
}

func (r *followRepository) transition(tx *gorm.DB, target, actor models.UserID, status models.FollowStatus, now time.Time) (*EdgeChange, error) {
	var edge models.FollowLog
	if err := tx.Where("user_id = ? AND followed_by_id = ?", target, actor).First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewEdgeNotFoundError()
		}
		return nil, err
	}

	previous := edge.Status
	edge.Transition(status, now)

	updates := map[string]interface{}{"status": string(edge.Status), "updated_on": now}
	switch status {
	case models.FollowStatusUnfollowed:
		updates["unfollowed_on"] = now
	case models.FollowStatusBlocked:
		updates["blocked_on"] = now
	}
	if err := tx.Model(&models.FollowLog{}).Where("id = ?", edge.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	edge.UpdatedOn = now

	return &EdgeChange{Edge: &edge, Previous: previous}, nil
}

func (r *followRepository) Get(ctx context.Context, target, actor models.UserID) (*models.FollowLog, error) {
	var edge models.FollowLog
	err := r.db.WithContext(ctx).Where("user_id = ? AND followed_by_id = ?", target, actor).First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewEdgeNotFoundError()
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

// ListFollowerSlugs returns the slugs of users currently following userID.
func (r *followRepository) ListFollowerSlugs(ctx context.Context, userID models.UserID) ([]string, error) {
	return r.pluckSlugs(ctx, "follow_logs.followed_by_id", "follow_logs.user_id", userID)
}

// ListFollowingSlugs returns the slugs of users userID currently follows.
func (r *followRepository) ListFollowingSlugs(ctx context.Context, userID models.UserID) ([]string, error) {
	return r.pluckSlugs(ctx, "follow_logs.user_id", "follow_logs.followed_by_id", userID)
}

func (r *followRepository) pluckSlugs(ctx context.Context, joinColumn, filterColumn string, userID models.UserID) ([]string, error) {
	defer observability.TrackQuery("list", "follow_logs")()

	slugs := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.FollowLog{}).
		Joins("JOIN users ON users.id = "+joinColumn).
		Where(filterColumn+" = ? AND follow_logs.status = ?", userID, models.FollowStatusFollowing).
		Order("follow_logs.followed_on ASC, follow_logs.id ASC").
		Pluck("users.slug", &slugs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return slugs, nil
}

func (r *followRepository) Counts(ctx context.Context, userID models.UserID) (int64, int64, error) {
	defer observability.TrackQuery("count", "follow_logs")()

	var followers, following int64
	base := r.db.WithContext(ctx).Model(&models.FollowLog{})
	if err := base.Session(&gorm.Session{}).
		Where("user_id = ? AND status = ?", userID, models.FollowStatusFollowing).
		Count(&followers).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("followed_by_id = ? AND status = ?", userID, models.FollowStatusFollowing).
		Count(&following).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return followers, following, nil
}
