package adaptor

import (
	"net/http"

	"review-api/internal/dto/request"
	"review-api/internal/usecase"
	"review-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service  usecase.UserService
	pageSize int
	log      *zap.Logger
}

func NewUserHandler(service usecase.UserService, pageSize int, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		pageSize: pageSize,
		log:      log.With(zap.String("handler", "user")),
	}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetMe(r.Context(), utils.GetActor(r.Context()))
	if err != nil {
		writeError(w, h.log, "get profile", err)
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// UpdateMe handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateMe(r.Context(), utils.GetActor(r.Context()), &req)
	if err != nil {
		writeError(w, h.log, "update profile", err)
		return
	}

	utils.ResponseSuccess(w, "Profile updated", user)
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context(), utils.GetActor(r.Context()), pageRequest(r, h.pageSize))
	if err != nil {
		writeError(w, h.log, "list users", err)
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Create(r.Context(), utils.GetActor(r.Context()), &req)
	if err != nil {
		writeError(w, h.log, "create user", err)
		return
	}

	utils.ResponseCreated(w, "User created", user)
}

// Get handles GET /api/v1/users/{username}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), utils.GetActor(r.Context()), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, h.log, "get user", err)
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// Update handles PATCH /api/v1/users/{username}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), utils.GetActor(r.Context()), chi.URLParam(r, "username"), &req)
	if err != nil {
		writeError(w, h.log, "update user", err)
		return
	}

	utils.ResponseSuccess(w, "User updated", user)
}

// Delete handles DELETE /api/v1/users/{username}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), utils.GetActor(r.Context()), chi.URLParam(r, "username")); err != nil {
		writeError(w, h.log, "delete user", err)
		return
	}

	utils.ResponseNoContent(w)
}
