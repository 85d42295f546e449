package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
	"github.com/fareops/catalog-engine/pkg/models"
	"github.com/fareops/catalog-engine/pkg/services"
)

// UsersHandler handles backend user account endpoints.
type UsersHandler struct {
	users  services.UserService
	cfg    *config.Config
	logger *zap.Logger
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users services.UserService, cfg *config.Config, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{users: users, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.Create)
	mux.HandleFunc("GET /api/users", h.List)
	mux.HandleFunc("GET /api/users/{id}", h.Get)
	mux.HandleFunc("PATCH /api/users/{id}", h.Update)
	mux.HandleFunc("DELETE /api/users/{id}", h.Delete)
	mux.HandleFunc("POST /api/users/{id}/reactivate", h.Reactivate)
	mux.HandleFunc("GET /api/users/{id}/profile", h.Profile)
}

type userRequest struct {
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	UserType    string     `json:"user_type"`
	AirlineID   *uuid.UUID `json:"airline_id"`
}

// profileResponse tags the concrete profile shape so clients can decode the
// variant without sniffing fields.
type profileResponse struct {
	Type    string             `json:"type"`
	Profile models.UserProfile `json:"profile"`
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	user, err := h.users.Create(r.Context(), services.CreateUserInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		UserType:    req.UserType,
		AirlineID:   req.AirlineID,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusCreated, user); err != nil {
		h.logger.Error("Failed to encode user response", zap.Error(err))
	}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values, h.cfg.Listing)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	airlineID, err := queryUUID(values, "airline_id")
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	criteria := services.UserCriteria{
		EmailContains:  values.Get("email"),
		UserType:       values.Get("user_type"),
		AirlineID:      airlineID,
		IncludeDeleted: queryBool(values, "include_deleted"),
	}

	result, err := h.users.List(r.Context(), criteria, page)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode user page", zap.Error(err))
	}
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to encode user response", zap.Error(err))
	}
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	user, err := h.users.Update(r.Context(), id, services.UpdateUserInput{
		DisplayName: req.DisplayName,
		UserType:    req.UserType,
		AirlineID:   req.AirlineID,
	})
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to encode user response", zap.Error(err))
	}
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.users.Reactivate(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	profile, err := h.users.GetProfile(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	resp := profileResponse{Profile: profile}
	switch profile.(type) {
	case models.AdminProfile:
		resp.Type = models.UserTypeAdmin
	case models.CarrierAgentProfile:
		resp.Type = models.UserTypeCarrierAgent
	case models.AnalystProfile:
		resp.Type = models.UserTypeAnalyst
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode profile response", zap.Error(err))
	}
}
