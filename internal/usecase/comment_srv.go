package usecase

import (
	"context"
	"fmt"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"
	"yamdb/pkg/apperr"
	"yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	Create(ctx context.Context, actor Actor, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, actor Actor, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, actor Actor, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, reviewID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	data := response.MapSlice(comments, response.CommentToResponse)
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.find(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, actor Actor, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if err := validateRequest(s.log, "Create comment", req); err != nil {
		return nil, err
	}

	review, err := s.review(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if review.AuthorID == actor.ID {
		s.log.Warn("Self comment rejected",
			zap.String("review_id", reviewID.String()),
			zap.String("author_id", actor.ID.String()))
		return nil, apperr.ErrSelfComment
	}

	text := utils.SanitizeText(req.Text)
	if text == "" {
		return nil, apperr.Invalid("comment text is empty")
	}

	comment := &entity.Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		logFailure(s.log, "Failed to create comment", err, zap.String("review_id", reviewID.String()))
		return nil, err
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID.String()))

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, actor Actor, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if err := validateRequest(s.log, "Update comment", req); err != nil {
		return nil, err
	}

	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.find(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !actor.CanModify(comment.AuthorID) {
		s.log.Warn("Comment update denied",
			zap.String("comment_id", commentID.String()),
			zap.String("actor_id", actor.ID.String()))
		return nil, apperr.Forbidden("only the author or a moderator can edit this comment")
	}

	text := utils.SanitizeText(req.Text)
	if text == "" {
		return nil, apperr.Invalid("comment text is empty")
	}
	comment.Text = text

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		logFailure(s.log, "Failed to update comment", err, zap.String("comment_id", commentID.String()))
		return nil, err
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor Actor, titleID, reviewID, commentID uuid.UUID) error {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return err
	}

	comment, err := s.find(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	if !actor.CanModify(comment.AuthorID) {
		s.log.Warn("Comment delete denied",
			zap.String("comment_id", commentID.String()),
			zap.String("actor_id", actor.ID.String()))
		return apperr.Forbidden("only the author or a moderator can delete this comment")
	}

	if err := s.repo.Comment.Delete(ctx, commentID); err != nil {
		logFailure(s.log, "Failed to delete comment", err, zap.String("comment_id", commentID.String()))
		return err
	}

	return nil
}

// review loads the parent review, which must belong to titleID.
func (s *commentService) review(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperr.NotFound("review", fmt.Sprintf("%s of title %s", reviewID, titleID))
	}
	return review, nil
}

func (s *commentService) find(ctx context.Context, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	comment, err := s.repo.Comment.FindByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperr.NotFound("comment", commentID.String())
	}
	return comment, nil
}
