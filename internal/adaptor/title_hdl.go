package adaptor

import (
	"net/http"
	"strconv"

	"yamdb/internal/dto/request"
	"yamdb/internal/usecase"
	"yamdb/pkg/utils"

	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// List handles GET /api/v1/titles (public). Filters: category and genre by
// slug, name by substring, year exact.
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.TitleListRequest{
		PaginatedRequest: pageFrom(r),
		Category:         query.Get("category"),
		Genre:            query.Get("genre"),
		Name:             query.Get("name"),
	}

	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Validation failed", map[string]string{"year": "Must be an integer"})
			return
		}
		req.Year = &year
	}

	titles, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list titles")
		return
	}

	utils.ResponseSuccess(w, "success", titles)
}

// Get handles GET /api/v1/titles/{titleID} (public)
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "titleID", "title")
	if !ok {
		return
	}

	title, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// Rating handles GET /api/v1/titles/{titleID}/rating (public)
func (h *TitleHandler) Rating(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "titleID", "title")
	if !ok {
		return
	}

	rating, err := h.service.MeanScore(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get title rating")
		return
	}

	utils.ResponseSuccess(w, "success", rating)
}

// Create handles POST /api/v1/titles (admin)
func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "Title created successfully", title)
}

// Update handles PATCH /api/v1/titles/{titleID} (admin)
func (h *TitleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "titleID", "title")
	if !ok {
		return
	}

	var req request.UpdateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "Title updated successfully", title)
}

// Delete handles DELETE /api/v1/titles/{titleID} (admin)
func (h *TitleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "titleID", "title")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete title")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
