package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/mvracar/scribe/internal/apperr"
	"github.com/mvracar/scribe/internal/domain"
	"github.com/mvracar/scribe/internal/service"
	"github.com/mvracar/scribe/internal/transport/http/middleware"
	"github.com/mvracar/scribe/pkg/validator"
)

type UserHandler struct {
	users *service.UserService
	log   *slog.Logger
}

func NewUserHandler(users *service.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Request bodies arrive wrapped in a "user" envelope, responses leave
// the same way.
type registerRequest struct {
	User service.RegisterInput `json:"user"`
}

type loginRequest struct {
	User service.LoginInput `json:"user"`
}

type updateRequest struct {
	User service.UpdateInput `json:"user"`
}

type userResponse struct {
	User *domain.AuthenticatedUser `json:"user"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, apperr.Fields{"body": {"can not be parsed"}})
		return
	}

	if errs := validator.ValidateRegister(req.User.Email, req.User.Username, req.User.Password); errs.HasErrors() {
		writeErrors(w, http.StatusUnprocessableEntity, apperr.Fields(errs))
		return
	}

	user, err := h.users.Register(r.Context(), req.User)
	if err != nil {
		h.renderError(w, "register", err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, apperr.Fields{"body": {"can not be parsed"}})
		return
	}

	if errs := validator.ValidateLogin(req.User.Email, req.User.Password); errs.HasErrors() {
		writeErrors(w, http.StatusUnprocessableEntity, apperr.Fields(errs))
		return
	}

	user, err := h.users.Login(r.Context(), req.User)
	if err != nil {
		h.renderError(w, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserID(r.Context())
	if !ok || id == uuid.Nil {
		writeErrors(w, http.StatusUnprocessableEntity, apperr.Fields{"id": {"wrong id is given"}})
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.renderError(w, "get current user", err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserID(r.Context())
	if !ok || id == uuid.Nil {
		writeErrors(w, http.StatusUnprocessableEntity, apperr.Fields{"id": {"wrong id is given"}})
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, apperr.Fields{"body": {"can not be parsed"}})
		return
	}

	if errs := validator.ValidateUpdate(req.User.Email, req.User.Username, req.User.Password); errs.HasErrors() {
		writeErrors(w, http.StatusUnprocessableEntity, apperr.Fields(errs))
		return
	}

	user, err := h.users.UpdateByID(r.Context(), id, req.User)
	if err != nil {
		h.renderError(w, "update user", err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// renderError maps a domain *apperr.Error to its status and field map;
// everything else is an infrastructure fault and becomes a 500.
func (h *UserHandler) renderError(w http.ResponseWriter, op string, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		status := http.StatusUnprocessableEntity
		if domainErr.Kind == apperr.Unauthorized {
			status = http.StatusUnauthorized
		}
		writeErrors(w, status, domainErr.Fields)
		return
	}

	h.log.Error(op, "err", err)
	writeErrors(w, http.StatusInternalServerError, apperr.Fields{"server": {"internal error"}})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeErrors(w http.ResponseWriter, status int, fields apperr.Fields) {
	writeJSON(w, status, map[string]any{"errors": fields})
}
