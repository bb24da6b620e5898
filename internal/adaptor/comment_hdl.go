package adaptor

import (
	"net/http"

	"yamdb/internal/dto/request"
	"yamdb/internal/usecase"
	"yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// parents reads the title and review IDs every comment route carries.
func parents(w http.ResponseWriter, r *http.Request) (titleID, reviewID uuid.UUID, ok bool) {
	if titleID, ok = uuidParam(w, r, "titleID", "title"); !ok {
		return
	}
	reviewID, ok = uuidParam(w, r, "reviewID", "review")
	return
}

// List handles GET .../reviews/{reviewID}/comments (public)
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := parents(w, r)
	if !ok {
		return
	}

	comments, err := h.service.List(r.Context(), titleID, reviewID, pageFrom(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// Get handles GET .../comments/{commentID} (public)
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := parents(w, r)
	if !ok {
		return
	}
	commentID, ok := uuidParam(w, r, "commentID", "comment")
	if !ok {
		return
	}

	comment, err := h.service.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// Create handles POST .../reviews/{reviewID}/comments (session)
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	titleID, reviewID, ok := parents(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Create(r.Context(), actor, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", comment)
}

// Update handles PATCH .../comments/{commentID}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	titleID, reviewID, ok := parents(w, r)
	if !ok {
		return
	}
	commentID, ok := uuidParam(w, r, "commentID", "comment")
	if !ok {
		return
	}

	var req request.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Update(r.Context(), actor, titleID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// Delete handles DELETE .../comments/{commentID}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	titleID, reviewID, ok := parents(w, r)
	if !ok {
		return
	}
	commentID, ok := uuidParam(w, r, "commentID", "comment")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, titleID, reviewID, commentID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
