package adaptor

import (
	"net/http"

	"review-api/internal/dto/request"
	"review-api/internal/usecase"
	"review-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service  usecase.CommentService
	pageSize int
	log      *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, pageSize int, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service:  service,
		pageSize: pageSize,
		log:      log.With(zap.String("handler", "comment")),
	}
}

// reviewPath reads {title_id} and {review_id}.
func reviewPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID uuid.UUID, ok bool) {
	if titleID, ok = uuidParam(w, r, "title_id", "title"); !ok {
		return
	}
	reviewID, ok = uuidParam(w, r, "review_id", "review")
	return
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	comments, err := h.service.List(r.Context(), titleID, reviewID, pageRequest(r, h.pageSize))
	if err != nil {
		writeError(w, h.log, "list comments", err)
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}
	commentID, ok := uuidParam(w, r, "comment_id", "comment")
	if !ok {
		return
	}

	comment, err := h.service.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeError(w, h.log, "get comment", err)
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Create(r.Context(), utils.GetActor(r.Context()), titleID, reviewID, &req)
	if err != nil {
		writeError(w, h.log, "create comment", err)
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}
	commentID, ok := uuidParam(w, r, "comment_id", "comment")
	if !ok {
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Update(r.Context(), utils.GetActor(r.Context()), titleID, reviewID, commentID, &req)
	if err != nil {
		writeError(w, h.log, "update comment", err)
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}
	commentID, ok := uuidParam(w, r, "comment_id", "comment")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), utils.GetActor(r.Context()), titleID, reviewID, commentID); err != nil {
		writeError(w, h.log, "delete comment", err)
		return
	}

	utils.ResponseNoContent(w)
}
