package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

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

type TitleService interface {
	List(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error)
	Create(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// MeanScore returns the rounded mean review score of the title; the
	// rating is nil while the title has no reviews.
	MeanScore(ctx context.Context, id uuid.UUID) (*response.RatingResponse, error)
}

type titleService struct {
	repo    *repository.Repository
	ratings cache.RatingCache
	log     *zap.Logger
}

func NewTitleService(repo *repository.Repository, ratings cache.RatingCache, log *zap.Logger) TitleService {
	if ratings == nil {
		ratings = cache.NewNopRatingCache()
	}
	return &titleService{
		repo:    repo,
		ratings: ratings,
		log:     log.With(zap.String("service", "title")),
	}
}

func (s *titleService) List(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	filter := entity.TitleFilter{
		CategorySlug: utils.OptionalString(req.Category),
		GenreSlug:    utils.OptionalString(req.Genre),
		Name:         utils.OptionalString(strings.TrimSpace(req.Name)),
		Year:         req.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Title.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.attachGenres(ctx, titles...); err != nil {
		return nil, err
	}

	data := response.MapSlice(titles, response.TitleToResponse)
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *titleService) Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error) {
	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, apperr.NotFound("title", id.String())
	}

	if err := s.attachGenres(ctx, title); err != nil {
		return nil, err
	}

	resp := response.TitleToResponse(title)
	return &resp, nil
}

func (s *titleService) Create(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if err := validateRequest(s.log, "Create title", req); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        strings.TrimSpace(req.Name),
		Year:        *req.Year,
		Description: utils.SanitizeText(req.Description),
		Category:    category,
		Genres:      genres,
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.repo.Title.Create(ctx, title, genreIDs(genres)); err != nil {
		logFailure(s.log, "Failed to create title", err, zap.String("name", title.Name))
		return nil, err
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	resp := response.TitleToResponse(title)
	return &resp, nil
}

func (s *titleService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if err := validateRequest(s.log, "Update title", req); err != nil {
		return nil, err
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, apperr.NotFound("title", id.String())
	}

	if req.Name != nil {
		title.Name = strings.TrimSpace(*req.Name)
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if description := utils.SanitizeTextPtr(req.Description); description != nil {
		title.Description = *description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.Category = category
		title.CategoryID = nil
		if category != nil {
			title.CategoryID = &category.ID
		}
	}

	var newGenreIDs []uuid.UUID
	if req.Genres != nil {
		genres, err := s.resolveGenres(ctx, *req.Genres)
		if err != nil {
			return nil, err
		}
		newGenreIDs = genreIDs(genres)
	}

	title.UpdatedAt = time.Now()
	if err := s.repo.Title.Update(ctx, title, newGenreIDs); err != nil {
		logFailure(s.log, "Failed to update title", err, zap.String("title_id", id.String()))
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Title.Delete(ctx, id); err != nil {
		logFailure(s.log, "Failed to delete title", err, zap.String("title_id", id.String()))
		return err
	}

	s.ratings.Invalidate(ctx, id)
	s.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}

func (s *titleService) MeanScore(ctx context.Context, id uuid.UUID) (*response.RatingResponse, error) {
	rating, version, ok := s.ratings.Get(ctx, id)
	if ok {
		return &response.RatingResponse{TitleID: id.String(), Rating: rating}, nil
	}

	rating, err := s.repo.Title.MeanScore(ctx, id)
	if err != nil {
		logFailure(s.log, "Failed to compute mean score", err, zap.String("title_id", id.String()))
		return nil, err
	}

	s.ratings.Set(ctx, id, version, rating)
	return &response.RatingResponse{TitleID: id.String(), Rating: rating}, nil
}

// resolveCategory maps a slug to its category; an empty slug means none.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	if slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		s.log.Warn("Unknown category", zap.String("slug", slug))
		return nil, apperr.Invalid("unknown category %q", slug)
	}
	return category, nil
}

// resolveGenres maps slugs to genres, ignoring duplicates. Any unknown slug
// fails the whole request.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	unique := make([]string, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}

	if len(genres) != len(unique) {
		found := make(map[string]bool, len(genres))
		for _, genre := range genres {
			found[genre.Slug] = true
		}
		var missing []string
		for _, slug := range unique {
			if !found[slug] {
				missing = append(missing, slug)
			}
		}
		sort.Strings(missing)
		s.log.Warn("Unknown genres", zap.Strings("slugs", missing))
		return nil, apperr.Invalid("unknown genre(s): %s", strings.Join(missing, ", "))
	}

	return genres, nil
}

func (s *titleService) attachGenres(ctx context.Context, titles ...*entity.Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(titles))
	for _, title := range titles {
		ids = append(ids, title.ID)
	}

	byTitle, err := s.repo.Genre.FindByTitleIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, title := range titles {
		title.Genres = byTitle[title.ID]
	}
	return nil
}

// genreIDs never returns nil, so an empty genre list still replaces links.
func genreIDs(genres []*entity.Genre) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(genres))
	for _, genre := range genres {
		ids = append(ids, genre.ID)
	}
	return ids
}
