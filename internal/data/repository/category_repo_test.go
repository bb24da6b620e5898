package repository

import (
	"context"
	"errors"
	"testing"

	"yamdb/internal/data/entity"
	"yamdb/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCategory() *entity.Category {
	c := &entity.Category{Name: "Films", Slug: "films"}
	c.ID = uuid.MustParse("9b2e4c9e-2d7c-4d5b-9a34-0d6f2f1d0a01")
	c.CreatedAt = fixedTime
	return c
}

func TestCategoryRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock, nopLogger())
	c := sampleCategory()

	mock.ExpectExec("INSERT INTO categories").
		WithArgs(c.ID, c.Name, c.Slug, c.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Create_DuplicateSlug(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock, nopLogger())
	c := sampleCategory()

	mock.ExpectExec("INSERT INTO categories").
		WithArgs(c.ID, c.Name, c.Slug, c.CreatedAt).
		WillReturnError(pgError(codeUniqueViolation, "categories_slug_key"))

	err := repo.Create(context.Background(), c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrAlreadyExists), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_FindBySlug(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock, nopLogger())
	c := sampleCategory()

	mock.ExpectQuery("FROM categories WHERE slug").
		WithArgs("films").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug", "created_at"}).
			AddRow(c.ID, c.Name, c.Slug, c.CreatedAt))

	got, err := repo.FindBySlug(context.Background(), "films")
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCategoryRepository_FindBySlug_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock, nopLogger())

	mock.ExpectQuery("FROM categories WHERE slug").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindBySlug(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryRepository_FindAllAndCount(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock, nopLogger())
	c := sampleCategory()

	mock.ExpectQuery("FROM categories").
		WithArgs("fil", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug", "created_at"}).
			AddRow(c.ID, c.Name, c.Slug, c.CreatedAt))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("fil").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	list, err := repo.FindAll(context.Background(), "fil", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "films", list[0].Slug)

	total, err := repo.CountAll(context.Background(), "fil")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock, nopLogger())

	mock.ExpectExec("DELETE FROM categories").
		WithArgs("films").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM categories").
		WithArgs("films").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), "films"))

	err := repo.Delete(context.Background(), "films")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
