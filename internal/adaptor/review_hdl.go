package adaptor

import (
	"net/http"

	"review-api/internal/dto/request"
	"review-api/internal/usecase"
	"review-api/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service  usecase.ReviewService
	pageSize int
	log      *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, pageSize int, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		pageSize: pageSize,
		log:      log.With(zap.String("handler", "review")),
	}
}

// List handles GET /api/v1/titles/{title_id}/reviews (public)
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	reviews, err := h.service.List(r.Context(), titleID, pageRequest(r, h.pageSize))
	if err != nil {
		writeError(w, h.log, "list reviews", err)
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// Get handles GET /api/v1/titles/{title_id}/reviews/{review_id} (public)
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "review_id", "review")
	if !ok {
		return
	}

	review, err := h.service.Get(r.Context(), titleID, reviewID)
	if err != nil {
		writeError(w, h.log, "get review", err)
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// Create handles POST /api/v1/titles/{title_id}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.Create(r.Context(), utils.GetActor(r.Context()), titleID, &req)
	if err != nil {
		writeError(w, h.log, "create review", err)
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// Update handles PATCH /api/v1/titles/{title_id}/reviews/{review_id} (author, moderator, admin)
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	titleID, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "review_id", "review")
	if !ok {
		return
	}

	var req request.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.Update(r.Context(), utils.GetActor(r.Context()), titleID, reviewID, &req)
	if err != nil {
		writeError(w, h.log, "update review", err)
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// Delete handles DELETE /api/v1/titles/{title_id}/reviews/{review_id} (author, moderator, admin)
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID, ok := uuidParam(w, r, "title_id", "title")
	if !ok {
		return
	}
	reviewID, ok := uuidParam(w, r, "review_id", "review")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), utils.GetActor(r.Context()), titleID, reviewID); err != nil {
		writeError(w, h.log, "delete review", err)
		return
	}

	utils.ResponseNoContent(w)
}
