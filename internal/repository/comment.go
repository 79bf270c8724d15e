package repository

import (
	"context"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines persistence operations for comments and their replies.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByShowcase(ctx context.Context, showcaseID uint) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error

	CreateReply(ctx context.Context, reply *models.ReplyComment) error
	GetReplyByID(ctx context.Context, id uint) (*models.ReplyComment, error)
	UpdateReply(ctx context.Context, reply *models.ReplyComment) error
	DeleteReply(ctx context.Context, id uint) error
}

type commentRepository struct {
	db       *gorm.DB
	log      *observability.RepoLogger
	replyLog *observability.RepoLogger
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{
		db:       db,
		log:      observability.NewRepoLogger("comments"),
		replyLog: observability.NewRepoLogger("reply_comments"),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", "comments")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return translateError(err, "Comment", comment.ShowcaseID)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"comment_id": comment.ID, "showcase_id": comment.ShowcaseID})
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, translateError(err, "Comment", id)
	}
	return &comment, nil
}

// ListByShowcase returns the showcase's comments with replies, oldest first.
func (r *commentRepository) ListByShowcase(ctx context.Context, showcaseID uint) ([]models.Comment, error) {
	defer observability.TrackQuery("list", "comments")()

	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("reply_comments.created_at ASC, reply_comments.id ASC")
		}).
		Preload("Replies.User").
		Where("showcase_id = ?", showcaseID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return translateError(err, "Comment", comment.ID)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"comment_id": comment.ID})
	return nil
}

// Delete removes the comment; replies and votes cascade.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "comments")()

	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "delete")
		return translateError(res.Error, "Comment", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"comment_id": id})
	return nil
}

func (r *commentRepository) CreateReply(ctx context.Context, reply *models.ReplyComment) error {
	defer observability.TrackQuery("create", "reply_comments")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(reply).Error; err != nil {
		r.replyLog.LogError(ctx, err, "create")
		return translateError(err, "Reply", reply.CommentID)
	}
	r.replyLog.LogCreate(ctx, map[string]interface{}{"reply_id": reply.ID, "comment_id": reply.CommentID})
	return nil
}

func (r *commentRepository) GetReplyByID(ctx context.Context, id uint) (*models.ReplyComment, error) {
	var reply models.ReplyComment
	if err := r.db.WithContext(ctx).Preload("User").First(&reply, id).Error; err != nil {
		return nil, translateError(err, "Reply", id)
	}
	return &reply, nil
}

func (r *commentRepository) UpdateReply(ctx context.Context, reply *models.ReplyComment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(reply).Error; err != nil {
		r.replyLog.LogError(ctx, err, "update")
		return translateError(err, "Reply", reply.ID)
	}
	r.replyLog.LogUpdate(ctx, map[string]interface{}{"reply_id": reply.ID})
	return nil
}

func (r *commentRepository) DeleteReply(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "reply_comments")()

	res := r.db.WithContext(ctx).Delete(&models.ReplyComment{}, id)
	if res.Error != nil {
		r.replyLog.LogError(ctx, res.Error, "delete")
		return translateError(res.Error, "Reply", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Reply", id)
	}
	r.replyLog.LogDelete(ctx, map[string]interface{}{"reply_id": id})
	return nil
}
