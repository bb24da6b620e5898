package adaptor

import (
	"context"
	"net/http"

	"yamdb/internal/dto/request"
	"yamdb/internal/dto/response"
	"yamdb/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogService is the shape shared by the category and genre services.
type CatalogService interface {
	List(ctx context.Context, search string, page request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogEntryResponse], error)
	Create(ctx context.Context, req *request.CatalogEntryRequest) (*response.CatalogEntryResponse, error)
	Delete(ctx context.Context, slug string) error
}

// CatalogHandler serves either categories or genres; kind names which in
// messages and logs.
type CatalogHandler struct {
	kind    string
	service CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(kind string, service CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		kind:    kind,
		service: service,
		log:     log.With(zap.String("handler", kind)),
	}
}

// List handles GET /api/v1/categories and /api/v1/genres (public).
// ?search= filters by name.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), r.URL.Query().Get("search"), pageFrom(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list "+h.kind)
		return
	}

	utils.ResponseSuccess(w, "success", entries)
}

// Create handles POST (admin)
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CatalogEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create "+h.kind)
		return
	}

	utils.ResponseCreated(w, h.kind+" created successfully", entry)
}

// Delete handles DELETE /{slug} (admin)
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.service.Delete(r.Context(), slug); err != nil {
		handleServiceError(w, h.log, err, "delete "+h.kind)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
