package repository

import (
	"context"
	"fmt"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository stores the three voter sets. Every method takes the
// VoteTarget naming which set it works on.
type VoteRepository interface {
	Add(ctx context.Context, target models.VoteTarget, targetID uint, voter models.UserID) (bool, error)
	Remove(ctx context.Context, target models.VoteTarget, targetID uint, voter models.UserID) (bool, error)
	Has(ctx context.Context, target models.VoteTarget, targetID uint, voter models.UserID) (bool, error)
	Count(ctx context.Context, target models.VoteTarget, targetID uint) (int64, error)
	Counts(ctx context.Context, target models.VoteTarget, targetIDs []uint) (map[uint]int64, error)
	ListVoters(ctx context.Context, target models.VoteTarget, targetID uint) ([]models.UserID, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

type voteTable struct {
	name   string
	column string
	model  interface{}
	row    func(targetID uint, voter models.UserID) interface{}
}

var voteTables = map[models.VoteTarget]voteTable{
	models.VoteTargetShowcase: {
		name: "showcase_voters", column: "showcase_id", model: &models.ShowcaseVote{},
		row: func(id uint, voter models.UserID) interface{} {
			return &models.ShowcaseVote{ShowcaseID: id, UserID: voter}
		},
	},
	models.VoteTargetComment: {
		name: "comment_voters", column: "comment_id", model: &models.CommentVote{},
		row: func(id uint, voter models.UserID) interface{} {
			return &models.CommentVote{CommentID: id, UserID: voter}
		},
	},
	models.VoteTargetReply: {
		name: "reply_voters", column: "reply_id", model: &models.ReplyVote{},
		row: func(id uint, voter models.UserID) interface{} {
			return &models.ReplyVote{ReplyID: id, UserID: voter}
		},
	},
}

func tableFor(target models.VoteTarget) (voteTable, error) {
	t, ok := voteTables[target]
	if !ok {
		return voteTable{}, models.NewValidationError(fmt.Sprintf("unknown vote target %q", target))
	}
	return t, nil
}

// Add puts voter into the set and reports whether it was absent before.
func (r *voteRepository) Add(ctx context.Context, target models.VoteTarget, targetID uint, voter models.UserID) (bool, error) {
	t, err := tableFor(target)
	if err != nil {
		return false, err
	}
	defer observability.TrackQuery("create", t.name)()

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(t.row(targetID, voter))
	if res.Error != nil {
		if isForeignKeyError(res.Error) {
			return false, models.NewNotFoundError(string(target), targetID)
		}
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Remove takes voter out of the set and reports whether it was present.
func (r *voteRepository) Remove(ctx context.Context, target models.VoteTarget, targetID uint, voter models.UserID) (bool, error) {
	t, err := tableFor(target)
	if err != nil {
		return false, err
	}
	defer observability.TrackQuery("delete", t.name)()

	res := r.db.WithContext(ctx).
		Where(t.column+" = ? AND user_id = ?", targetID, voter).
		Delete(t.model)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *voteRepository) Has(ctx context.Context, target models.VoteTarget, targetID uint, voter models.UserID) (bool, error) {
	t, err := tableFor(target)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(t.model).
		Where(t.column+" = ? AND user_id = ?", targetID, voter).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *voteRepository) Count(ctx context.Context, target models.VoteTarget, targetID uint) (int64, error) {
	t, err := tableFor(target)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(t.model).Where(t.column+" = ?", targetID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Counts returns the set size for each id. Ids without votes map to zero.
func (r *voteRepository) Counts(ctx context.Context, target models.VoteTarget, targetIDs []uint) (map[uint]int64, error) {
	t, err := tableFor(target)
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(targetIDs))
	if len(targetIDs) == 0 {
		return counts, nil
	}
	for _, id := range targetIDs {
		counts[id] = 0
	}
	defer observability.TrackQuery("count", t.name)()

	var rows []struct {
		TargetID uint
		Total    int64
	}
	err = r.db.WithContext(ctx).Model(t.model).
		Select(t.column+" AS target_id, COUNT(*) AS total").
		Where(t.column+" IN ?", targetIDs).
		Group(t.column).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}

func (r *voteRepository) ListVoters(ctx context.Context, target models.VoteTarget, targetID uint) ([]models.UserID, error) {
	t, err := tableFor(target)
	if err != nil {
		return nil, err
	}
	voters := []models.UserID{}
	err = r.db.WithContext(ctx).Model(t.model).
		Where(t.column+" = ?", targetID).
		Order("user_id ASC").
		Pluck("user_id", &voters).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return voters, nil
}
