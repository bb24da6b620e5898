package usecase

import (
	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/pkg/apperr"
	"yamdb/pkg/cache"
	"yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(repo *repository.Repository, ratings cache.RatingCache, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Title:    NewTitleService(repo, ratings, log),
		Review:   NewReviewService(repo, ratings, log),
		Comment:  NewCommentService(repo, log),
	}
}

// Actor is the authenticated user performing a write.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

// CanModify reports whether the actor may edit or delete content written
// by authorID.
func (a Actor) CanModify(authorID uuid.UUID) bool {
	return a.ID == authorID || a.Role.CanModerate()
}

// validateRequest runs the struct validator and wraps failures in an
// apperr.ValidationError.
func validateRequest(log *zap.Logger, op string, req any) error {
	errs := utils.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}

	log.Warn(op+" validation failed", zap.Any("errors", errs))
	return &apperr.ValidationError{
		Fields:  errs,
		Summary: utils.FormatValidationErrors(errs),
	}
}

// logFailure logs client errors at Warn and everything else at Error.
func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if apperr.IsClientError(err) {
		log.Warn(msg, fields...)
		return
	}
	log.Error(msg, fields...)
}
