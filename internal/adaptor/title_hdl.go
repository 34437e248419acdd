package adaptor

import (
	"net/http"

	"review-api/internal/data/entity"
	"review-api/internal/dto/request"
	"review-api/internal/usecase"
	"review-api/pkg/utils"

	"go.uber.org/zap"
)

type TitleHandler struct {
	service  usecase.TitleService
	pageSize int
	log      *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, pageSize int, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service:  service,
		pageSize: pageSize,
		log:      log.With(zap.String("handler", "title")),
	}
}

// List handles GET /api/v1/titles?genre=&category=&year=&name=
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := entity.TitleFilter{
		GenreSlug:    query.Get("genre"),
		CategorySlug: query.Get("category"),
		NameContains: query.Get("name"),
	}
	if raw := query.Get("year"); raw != "" {
		filter.Year = utils.ParseOptionalInt(raw)
		if filter.Year == nil {
			utils.ResponseBadRequest(w, "validation failed", map[string]string{"year": "Must be an integer"})
			return
		}
	}

	titles, err := h.service.List(r.Context(), filter, pageRequest(r, h.pageSize))
	if err != nil {
		writeError(w, h.log, "list titles", err)
		return
	}

	utils.ResponseSuccess(w, "success", titles)
}

// Get handles GET /api/v1/titles/{title_id}
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	title, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, "get title", err)
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// Rating handles GET /api/v1/titles/{title_id}/rating
func (h *TitleHandler) Rating(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	rating, err := h.service.Rating(r.Context(), id)
	if err != nil {
		writeError(w, h.log, "get rating", err)
		return
	}

	utils.ResponseSuccess(w, "success", map[string]*float64{"rating": rating})
}

// Create handles POST /api/v1/titles
func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title, err := h.service.Create(r.Context(), utils.GetActor(r.Context()), &req)
	if err != nil {
		writeError(w, h.log, "create title", err)
		return
	}

	utils.ResponseCreated(w, "Title created", title)
}

// Update handles PATCH /api/v1/titles/{title_id}
func (h *TitleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	var req request.UpdateTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title, err := h.service.Update(r.Context(), utils.GetActor(r.Context()), id, &req)
	if err != nil {
		writeError(w, h.log, "update title", err)
		return
	}

	utils.ResponseSuccess(w, "Title updated", title)
}

// Delete handles DELETE /api/v1/titles/{title_id}
func (h *TitleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), utils.GetActor(r.Context()), id); err != nil {
		writeError(w, h.log, "delete title", err)
		return
	}

	utils.ResponseNoContent(w)
}
