package usecase

import (
	"context"
	"fmt"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"
	"yamdb/pkg/apperr"
	"yamdb/pkg/cache"
	"yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	List(ctx context.Context, titleID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	Create(ctx context.Context, actor Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, actor Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, actor Actor, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo    *repository.Repository
	ratings cache.RatingCache
	log     *zap.Logger
}

func NewReviewService(repo *repository.Repository, ratings cache.RatingCache, log *zap.Logger) ReviewService {
	if ratings == nil {
		ratings = cache.NewNopRatingCache()
	}
	return &reviewService{
		repo:    repo,
		ratings: ratings,
		log:     log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) List(ctx context.Context, titleID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, titleID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Review.CountByTitleID(ctx, titleID)
	if err != nil {
		return nil, err
	}

	data := response.MapSlice(reviews, response.ReviewToResponse)
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.find(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, actor Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(s.log, "Create review", req); err != nil {
		return nil, err
	}

	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, actor.ID, titleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.Warn("Duplicate review",
			zap.String("author_id", actor.ID.String()),
			zap.String("title_id", titleID.String()))
		return nil, apperr.AlreadyExists("review", "by this author for this title")
	}

	text := utils.SanitizeText(req.Text)
	if text == "" {
		return nil, apperr.Invalid("review text is empty")
	}

	review := &entity.Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		logFailure(s.log, "Failed to create review", err,
			zap.String("author_id", actor.ID.String()),
			zap.String("title_id", titleID.String()))
		return nil, err
	}

	s.ratings.Invalidate(ctx, titleID)
	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID.String()),
		zap.Int("score", review.Score),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, actor Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(s.log, "Update review", req); err != nil {
		return nil, err
	}

	review, err := s.find(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !actor.CanModify(review.AuthorID) {
		s.log.Warn("Review update denied",
			zap.String("review_id", reviewID.String()),
			zap.String("actor_id", actor.ID.String()))
		return nil, apperr.Forbidden("only the author or a moderator can edit this review")
	}

	if text := utils.SanitizeTextPtr(req.Text); text != nil {
		if *text == "" {
			return nil, apperr.Invalid("review text is empty")
		}
		review.Text = *text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		logFailure(s.log, "Failed to update review", err, zap.String("review_id", reviewID.String()))
		return nil, err
	}

	s.ratings.Invalidate(ctx, titleID)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, actor Actor, titleID, reviewID uuid.UUID) error {
	review, err := s.find(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !actor.CanModify(review.AuthorID) {
		s.log.Warn("Review delete denied",
			zap.String("review_id", reviewID.String()),
			zap.String("actor_id", actor.ID.String()))
		return apperr.Forbidden("only the author or a moderator can delete this review")
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		logFailure(s.log, "Failed to delete review", err, zap.String("review_id", reviewID.String()))
		return err
	}

	s.ratings.Invalidate(ctx, titleID)
	s.log.Info("Review deleted", zap.String("review_id", reviewID.String()))
	return nil
}

func (s *reviewService) ensureTitle(ctx context.Context, titleID uuid.UUID) error {
	exists, err := s.repo.Title.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("title", titleID.String())
	}
	return nil
}

func (s *reviewService) find(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperr.NotFound("review", fmt.Sprintf("%s of title %s", reviewID, titleID))
	}
	return review, nil
}
