package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/user-api/internal/api/shared"
	"github.com/phrazzld/user-api/internal/platform/logger"
	"github.com/phrazzld/user-api/internal/service"
)

// UserHandler handles the /users endpoints.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With("component", "user_handler"),
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	message := MsgListUsers
	if len(users) == 0 {
		message = MsgListUsersEmpty
	}
	shared.RespondWithEnvelope(w, r, http.StatusOK, message, users)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, MsgUserFound, user)
}

// CreateUser handles POST /users. The body must already have passed
// middleware.ValidateBody[UserRequest].
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.requestBody(w, r)
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Name, req.Email, req.Age)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusCreated, MsgUserCreated, user)
}

// UpdateUser handles PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.requestBody(w, r)
	if !ok {
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), chi.URLParam(r, "id"), req.Name, req.Email, req.Age)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, MsgUserUpdated, user)
}

// DeleteUser handles DELETE /users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithEnvelope(w, r, http.StatusOK, fmt.Sprintf(MsgUserDeleted, user.Name), nil)
}

// Health handles GET /health
func (h *UserHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Ping(r.Context()); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("UNAVAILABLE"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *UserHandler) requestBody(w http.ResponseWriter, r *http.Request) (UserRequest, bool) {
	req, ok := shared.ValidatedBody[UserRequest](r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Error("user request reached handler without validation", "path", r.URL.Path)
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgFieldsMalformed, nil)
		return UserRequest{}, false
	}
	return req, true
}
