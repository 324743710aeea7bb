package session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	sessionService "github.com/m04kA/SMC-FieldService/internal/service/session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCredentialsMissing = "введите логин и пароль"
	msgWrongCredentials   = "неверный логин или пароль"
	msgNotAuthenticated   = "вход не выполнен"
	msgSessionExpired     = "сессия истекла, войдите снова"
)

type Handler struct {
	manager SessionManager
	logger  Logger
}

func NewHandler(manager SessionManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Login POST /api/v1/session/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	s, err := h.manager.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondAuthError(w, "POST /session/login", err)
		return
	}

	h.logger.Info("POST /session/login - User signed in: user_id=%d", s.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromSession(s))
}

// Register POST /api/v1/session/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /session/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	s, err := h.manager.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		h.respondAuthError(w, "POST /session/register", err)
		return
	}

	h.logger.Info("POST /session/register - User registered: user_id=%d", s.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromSession(s))
}

// Current GET /api/v1/session
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Current()
	if err != nil {
		if errors.Is(err, sessionService.ErrSessionExpired) {
			handlers.RespondUnauthorized(w, msgSessionExpired)
			return
		}
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromSession(s))
}

// Logout DELETE /api/v1/session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Logout(r.Context()); err != nil {
		h.logger.Error("DELETE /session - Failed to logout: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /session - Session cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondAuthError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, sessionService.ErrInvalidCredentials):
		h.logger.Warn("%s - Missing credentials", route)
		handlers.RespondBadRequest(w, msgCredentialsMissing)

	case errors.Is(err, fieldapi.ErrUnauthorized):
		h.logger.Warn("%s - Wrong credentials", route)
		handlers.RespondUnauthorized(w, msgWrongCredentials)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondUpstreamError(w, err)
	}
}
