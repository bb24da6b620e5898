package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"yamdb/internal/data/entity"
	"yamdb/internal/dto/request"
	"yamdb/internal/usecase"
	"yamdb/pkg/apperr"
	"yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CatalogHandler
	Genre    *CatalogHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, db Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCatalogHandler("category", service.Category, log),
		Genre:    NewCatalogHandler("genre", service.Genre, log),
		Title:    NewTitleHandler(service.Title, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
		Health:   NewHealthHandler(db, log),
	}
}

// decodeJSON reads the request body into dst and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// uuidParam parses the named chi URL parameter. A malformed ID cannot match
// any row, so it is answered with 404.
func uuidParam(w http.ResponseWriter, r *http.Request, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseNotFound(w, fmt.Sprintf("%s not found", resource))
		return uuid.Nil, false
	}
	return id, true
}

// actorFrom builds the acting user from the context set by AuthSession.
func actorFrom(w http.ResponseWriter, r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Actor{}, false
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Actor{ID: userID, Role: entity.UserRole(role)}, true
}

func pageFrom(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))
}

// handleServiceError maps a service error onto the response envelope.
// Validation failures carry their field map. Clients get the short public
// message; the wrapped detail stays in the log.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	status := apperr.HTTPStatus(err)

	var validationErr *apperr.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case status >= http.StatusInternalServerError:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")

	default:
		log.Warn(operation+" failed", zap.Error(err), zap.Int("status", status))
		utils.ResponseError(w, status, apperr.PublicMessage(err), nil)
	}
}
