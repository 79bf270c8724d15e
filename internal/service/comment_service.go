package service

import (
	"context"
	"strings"

	"creativeapp/internal/models"
	"creativeapp/internal/observability"
	"creativeapp/internal/repository"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// CommentService provides comment and reply business logic. Comments are
// two levels deep: a reply cannot itself be replied to.
type CommentService struct {
	commentRepo  repository.CommentRepository
	showcaseRepo repository.ShowcaseRepository
	userRepo     repository.UserRepository
	voteRepo     repository.VoteRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	showcaseRepo repository.ShowcaseRepository,
	userRepo repository.UserRepository,
	voteRepo repository.VoteRepository,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		showcaseRepo: showcaseRepo,
		userRepo:     userRepo,
		voteRepo:     voteRepo,
	}
}

func normalizeBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	return body, invalid(ozzo.Validate(body, ozzo.Required.Error("comment body is required")))
}

// AddComment posts a first-level comment on a showcase.
func (s *CommentService) AddComment(ctx context.Context, authorSlug, showcaseSlug, body string) (comment *models.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService", "AddComment")
	defer func() { observability.EndSpan(span, err) }()

	body, err = normalizeBody(body)
	if err != nil {
		return nil, err
	}
	author, err := userBySlug(ctx, s.userRepo, authorSlug)
	if err != nil {
		return nil, err
	}
	showcase, err := s.showcaseRepo.GetBySlug(ctx, showcaseSlug)
	if err != nil {
		return nil, err
	}

	comment = &models.Comment{Body: body, ShowcaseID: showcase.ID, UserID: author.ID}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = author
	return comment, nil
}

// ReplyToComment answers a first-level comment.
func (s *CommentService) ReplyToComment(ctx context.Context, authorSlug string, commentID uint, body string) (reply *models.ReplyComment, err error) {
	ctx, span := startSpan(ctx, "CommentService", "ReplyToComment")
	defer func() { observability.EndSpan(span, err) }()

	body, err = normalizeBody(body)
	if err != nil {
		return nil, err
	}
	author, err := userBySlug(ctx, s.userRepo, authorSlug)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	reply = &models.ReplyComment{Body: body, CommentID: comment.ID, UserID: author.ID}
	if err := s.commentRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	reply.User = author
	return reply, nil
}

// ListComments returns the showcase's comment tree, oldest first, with
// vote counts on every node.
func (s *CommentService) ListComments(ctx context.Context, showcaseSlug string) ([]models.Comment, error) {
	showcase, err := s.showcaseRepo.GetBySlug(ctx, showcaseSlug)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByShowcase(ctx, showcase.ID)
	if err != nil {
		return nil, err
	}

	commentIDs := make([]uint, 0, len(comments))
	var replyIDs []uint
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		for _, r := range c.Replies {
			replyIDs = append(replyIDs, r.ID)
		}
	}

	commentCounts, err := s.voteRepo.Counts(ctx, models.VoteTargetComment, commentIDs)
	if err != nil {
		return nil, err
	}
	replyCounts, err := s.voteRepo.Counts(ctx, models.VoteTargetReply, replyIDs)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		comments[i].VoteCount = commentCounts[comments[i].ID]
		for j := range comments[i].Replies {
			comments[i].Replies[j].VoteCount = replyCounts[comments[i].Replies[j].ID]
		}
	}
	return comments, nil
}

// UpdateComment edits a comment body. Only the author may do so.
func (s *CommentService) UpdateComment(ctx context.Context, actorSlug string, commentID uint, body string) (*models.Comment, error) {
	body, err := normalizeBody(body)
	if err != nil {
		return nil, err
	}
	actor, err := userBySlug(ctx, s.userRepo, actorSlug)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.ID {
		return nil, models.NewUnauthorizedError("Only the author can edit this comment")
	}
	comment.Body = body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateReply edits a reply body. Only the author may do so.
func (s *CommentService) UpdateReply(ctx context.Context, actorSlug string, replyID uint, body string) (*models.ReplyComment, error) {
	body, err := normalizeBody(body)
	if err != nil {
		return nil, err
	}
	actor, err := userBySlug(ctx, s.userRepo, actorSlug)
	if err != nil {
		return nil, err
	}
	reply, err := s.commentRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply.UserID != actor.ID {
		return nil, models.NewUnauthorizedError("Only the author can edit this reply")
	}
	reply.Body = body
	if err := s.commentRepo.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// canModerate reports whether actor may remove content written by authorID
// under showcaseID.
func (s *CommentService) canModerate(ctx context.Context, actor *models.User, authorID models.UserID, showcaseID uint) (bool, error) {
	if actor.ID == authorID || actor.IsStaff {
		return true, nil
	}
	showcase, err := s.showcaseRepo.GetByID(ctx, showcaseID)
	if err != nil {
		return false, err
	}
	return showcase.UserID == actor.ID, nil
}

// DeleteComment removes a comment and its replies. The author, the
// showcase owner and staff may delete.
func (s *CommentService) DeleteComment(ctx context.Context, actorSlug string, commentID uint) error {
	actor, err := userBySlug(ctx, s.userRepo, actorSlug)
	if err != nil {
		return err
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	ok, err := s.canModerate(ctx, actor, comment.UserID, comment.ShowcaseID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewUnauthorizedError("You cannot delete this comment")
	}
	return s.commentRepo.Delete(ctx, comment.ID)
}

// DeleteReply removes a reply under the same rules as DeleteComment.
func (s *CommentService) DeleteReply(ctx context.Context, actorSlug string, replyID uint) error {
	actor, err := userBySlug(ctx, s.userRepo, actorSlug)
	if err != nil {
		return err
	}
	reply, err := s.commentRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	comment, err := s.commentRepo.GetByID(ctx, reply.CommentID)
	if err != nil {
		return err
	}
	ok, err := s.canModerate(ctx, actor, reply.UserID, comment.ShowcaseID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewUnauthorizedError("You cannot delete this reply")
	}
	return s.commentRepo.DeleteReply(ctx, reply.ID)
}

// UpvoteComment adds voterSlug to the comment's voter set.
func (s *CommentService) UpvoteComment(ctx context.Context, voterSlug string, commentID uint) (*VoteChange, error) {
	return s.voteComment(ctx, voterSlug, commentID, true)
}

// RemoveCommentVote takes voterSlug out of the comment's voter set.
func (s *CommentService) RemoveCommentVote(ctx context.Context, voterSlug string, commentID uint) (*VoteChange, error) {
	return s.voteComment(ctx, voterSlug, commentID, false)
}

func (s *CommentService) voteComment(ctx context.Context, voterSlug string, commentID uint, add bool) (*VoteChange, error) {
	voter, err := userBySlug(ctx, s.userRepo, voterSlug)
	if err != nil {
		return nil, err
	}
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return applyVote(ctx, s.voteRepo, models.VoteTargetComment, commentID, voter.ID, add)
}

// UpvoteReply adds voterSlug to the reply's voter set.
func (s *CommentService) UpvoteReply(ctx context.Context, voterSlug string, replyID uint) (*VoteChange, error) {
	return s.voteReply(ctx, voterSlug, replyID, true)
}

// RemoveReplyVote takes voterSlug out of the reply's voter set.
func (s *CommentService) RemoveReplyVote(ctx context.Context, voterSlug string, replyID uint) (*VoteChange, error) {
	return s.voteReply(ctx, voterSlug, replyID, false)
}

func (s *CommentService) voteReply(ctx context.Context, voterSlug string, replyID uint, add bool) (*VoteChange, error) {
	voter, err := userBySlug(ctx, s.userRepo, voterSlug)
	if err != nil {
		return nil, err
	}
	if _, err := s.commentRepo.GetReplyByID(ctx, replyID); err != nil {
		return nil, err
	}
	return applyVote(ctx, s.voteRepo, models.VoteTargetReply, replyID, voter.ID, add)
}
