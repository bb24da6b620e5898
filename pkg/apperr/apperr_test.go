package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NotFound("title", "42"), http.StatusNotFound},
		{"already exists", AlreadyExists("genre", "with slug drama"), http.StatusConflict},
		{"invalid", Invalid("score must be between %d and %d", 1, 10), http.StatusBadRequest},
		{"self comment", ErrSelfComment, http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("edit review"), http.StatusForbidden},
		{"wrapped twice", fmt.Errorf("update review: %w", NotFound("review", "1")), http.StatusNotFound},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "title 42 not found", NotFound("title", "42").Error())
	assert.Equal(t, "category with slug books already exists", AlreadyExists("category", "with slug books").Error())
	assert.Equal(t, "invalid input: bad year", Invalid("bad year").Error())
	assert.Equal(t, "forbidden: delete comment", Forbidden("delete comment").Error())
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"not found hides key", fmt.Errorf("find title: %w", NotFound("title", "7f0c")), "title not found"},
		{"conflict hides constraint", fmt.Errorf("create review for title 1 by 2: %w",
			AlreadyExists("review", "(unique_author_title_pair)")), "review already exists"},
		{"invalid keeps message", fmt.Errorf("resolve: %w", Invalid("unknown category %q", "books")), `unknown category "books"`},
		{"forbidden", Forbidden("delete comment"), "forbidden: delete comment"},
		{"detail stays in logs", New(ErrInvalidInput, "review violates a constraint", "review_score_range"),
			"review violates a constraint"},
		{"bare sentinel", fmt.Errorf("comment: %w", ErrSelfComment), "cannot comment on own review"},
		{"unknown", errors.New("dial tcp 10.0.0.1:5432: refused"), "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicMessage(tt.err))
		})
	}
}

func TestNew_KeepsDetailInError(t *testing.T) {
	err := New(ErrAlreadyExists, "genre already exists", "genres_slug_key")
	assert.Equal(t, "genre already exists (genres_slug_key)", err.Error())
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, "genre already exists", New(ErrAlreadyExists, "genre already exists", "").Error())
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrForbidden))
	assert.True(t, IsClientError(Invalid("x")))
	assert.False(t, IsClientError(errors.New("boom")))
}

func TestValidationError(t *testing.T) {
	var err error = &ValidationError{
		Fields:  map[string]string{"score": "Maximum value is 10"},
		Summary: "score: Maximum value is 10",
	}
	wrapped := fmt.Errorf("create review: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))

	var ve *ValidationError
	if assert.True(t, errors.As(wrapped, &ve)) {
		assert.Equal(t, "Maximum value is 10", ve.Fields["score"])
	}
	assert.Equal(t, "validation failed: score: Maximum value is 10", err.Error())
}
