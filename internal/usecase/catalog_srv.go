package usecase

import (
	"context"
	"strings"
	"time"

	"yamdb/internal/data/entity"
	"yamdb/internal/data/repository"
	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	List(ctx context.Context, search string, page request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogEntryResponse], error)
	Create(ctx context.Context, req *request.CatalogEntryRequest) (*response.CatalogEntryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
	log  *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) List(ctx context.Context, search string, page request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogEntryResponse], error) {
	search = strings.TrimSpace(search)

	categories, err := s.repo.FindAll(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountAll(ctx, search)
	if err != nil {
		return nil, err
	}

	data := response.MapSlice(categories, response.CategoryToResponse)
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *categoryService) Create(ctx context.Context, req *request.CatalogEntryRequest) (*response.CatalogEntryResponse, error) {
	if err := validateRequest(s.log, "Create category", req); err != nil {
		return nil, err
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       strings.TrimSpace(req.Name),
		Slug:       req.Slug,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		logFailure(s.log, "Failed to create category", err, zap.String("slug", req.Slug))
		return nil, err
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))
	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		logFailure(s.log, "Failed to delete category", err, zap.String("slug", slug))
		return err
	}
	return nil
}

type GenreService interface {
	List(ctx context.Context, search string, page request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogEntryResponse], error)
	Create(ctx context.Context, req *request.CatalogEntryRequest) (*response.CatalogEntryResponse, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
	log  *zap.Logger
}

func NewGenreService(repo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) List(ctx context.Context, search string, page request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogEntryResponse], error) {
	search = strings.TrimSpace(search)

	genres, err := s.repo.FindAll(ctx, search, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountAll(ctx, search)
	if err != nil {
		return nil, err
	}

	data := response.MapSlice(genres, response.GenreToResponse)
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *genreService) Create(ctx context.Context, req *request.CatalogEntryRequest) (*response.CatalogEntryResponse, error) {
	if err := validateRequest(s.log, "Create genre", req); err != nil {
		return nil, err
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       strings.TrimSpace(req.Name),
		Slug:       req.Slug,
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		logFailure(s.log, "Failed to create genre", err, zap.String("slug", req.Slug))
		return nil, err
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))
	resp := response.GenreToResponse(genre)
	return &resp, nil
}

// Delete removes the genre; titles lose the link but are kept.
func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		logFailure(s.log, "Failed to delete genre", err, zap.String("slug", slug))
		return err
	}
	return nil
}
