package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Routes returns a router serving the user resource, to be mounted at /user.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Head("/", h.HasUsers)
	r.Post("/", h.CreateUser)
	r.Get("/", h.ListUsers)
	r.Get("/{id}", h.GetUser)
	r.Patch("/{id}", h.PatchUser)
	r.Put("/{id}", h.ReplaceUser)
	r.Delete("/{id}", h.DeleteUser)
	return r
}

// HasUsers handles HEAD /user: 200 when any user exists, 204 otherwise.
func (h *UserHandler) HasUsers(w http.ResponseWriter, r *http.Request) {
	exists, err := h.userService.HasUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check users")
		return
	}

	if exists {
		shared.RespondWithStatus(w, http.StatusOK)
		return
	}
	shared.RespondWithStatus(w, http.StatusNoContent)
}

// CreateUser handles POST /user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in domain.UserInput
	if !decodeBody(w, r, &in) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	log.Debug("user created", slog.Int("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// ListUsers handles GET /user
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch users")
		return
	}

	if users == nil {
		users = []domain.User{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// GetUser handles GET /user/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, MsgUserNotFound, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// PatchUser handles PATCH /user/{id}. Only non-empty fields are applied.
func (h *UserHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, MsgUserNotFound, log)
	if !ok {
		return
	}

	var in domain.UserInput
	if !decodeBody(w, r, &in) {
		return
	}

	user, err := h.userService.PatchUser(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	log.Debug("user patched", slog.Int("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ReplaceUser handles PUT /user/{id}. The body is checked before the id, so
// an incomplete body is a 400 even for an id that cannot exist.
func (h *UserHandler) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in domain.UserInput
	if !decodeValidBody(w, r, &in) {
		return
	}

	id, ok := handlePathID(w, r, MsgUserNotFound, log)
	if !ok {
		return
	}

	user, err := h.userService.ReplaceUser(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	log.Debug("user replaced", slog.Int("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// DeleteUser handles DELETE /user/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, MsgUserNotFound, log)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	log.Debug("user deleted", slog.Int("user_id", id))
	shared.RespondWithMessage(w, r, http.StatusOK, "User deleted successfully")
}
