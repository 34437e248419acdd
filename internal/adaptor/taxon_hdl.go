package adaptor

import (
	"net/http"

	"review-api/internal/dto/request"
	"review-api/internal/usecase"
	"review-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaxonHandler serves /categories and /genres.
type TaxonHandler struct {
	service  usecase.TaxonService
	noun     string
	pageSize int
	log      *zap.Logger
}

func NewTaxonHandler(service usecase.TaxonService, noun string, pageSize int, log *zap.Logger) *TaxonHandler {
	return &TaxonHandler{
		service:  service,
		noun:     noun,
		pageSize: pageSize,
		log:      log.With(zap.String("handler", noun)),
	}
}

func (h *TaxonHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), pageRequest(r, h.pageSize))
	if err != nil {
		writeError(w, h.log, "list "+h.noun, err)
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

func (h *TaxonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TaxonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), utils.GetActor(r.Context()), &req)
	if err != nil {
		writeError(w, h.log, "create "+h.noun, err)
		return
	}

	utils.ResponseCreated(w, "success", item)
}

func (h *TaxonHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req request.RenameTaxonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Rename(r.Context(), utils.GetActor(r.Context()), chi.URLParam(r, "slug"), &req)
	if err != nil {
		writeError(w, h.log, "rename "+h.noun, err)
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

func (h *TaxonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), utils.GetActor(r.Context()), chi.URLParam(r, "slug")); err != nil {
		writeError(w, h.log, "delete "+h.noun, err)
		return
	}

	utils.ResponseNoContent(w)
}
