package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"review-api/internal/dto/request"
	"review-api/internal/usecase"
	"review-api/pkg/apperr"
	"review-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *TaxonHandler
	Genre    *TaxonHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	pageSize := config.App.PageSize

	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, pageSize, log),
		Category: NewTaxonHandler(service.Category, "category", pageSize, log),
		Genre:    NewTaxonHandler(service.Genre, "genre", pageSize, log),
		Title:    NewTitleHandler(service.Title, pageSize, log),
		Review:   NewReviewHandler(service.Review, pageSize, log),
		Comment:  NewCommentHandler(service.Comment, pageSize, log),
	}
}

// decodeJSON reads the request body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// uuidParam parses a path parameter; an unparseable id cannot exist, so it is a 404.
func uuidParam(w http.ResponseWriter, r *http.Request, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseNotFound(w, what+" not found")
		return uuid.Nil, false
	}
	return id, true
}

func pageRequest(r *http.Request, defaultPerPage int) request.PaginatedRequest {
	query := r.URL.Query()
	req := request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), defaultPerPage),
		defaultPerPage,
	)
	req.Search = query.Get("search")
	return req
}

// writeError maps an error kind onto its HTTP status.
func writeError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	msg := apperr.MessageOf(err)

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		log.Warn(operation+" validation failed",
			zap.String("fields", utils.FormatValidationErrors(apperr.FieldsOf(err))),
			zap.Error(err))
		utils.ResponseBadRequest(w, msg, apperr.FieldsOf(err))

	case apperr.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, msg)

	case apperr.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case apperr.KindAuth:
		log.Warn(operation+" failed - "+msg, zap.Error(err))
		switch {
		case errors.Is(err, apperr.ErrAuthenticationRequired):
			utils.ResponseUnauthorized(w, msg)
		case errors.Is(err, apperr.ErrInvalidConfirmationCode):
			utils.ResponseBadRequest(w, msg, map[string]string{"confirmation_code": "Invalid or expired code"})
		default:
			utils.ResponseForbidden(w, msg)
		}

	case apperr.KindDependency:
		log.Error(operation+" failed - dependency unavailable", zap.Error(err))
		utils.ResponseUnavailable(w, msg)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
