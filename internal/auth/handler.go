package auth

import (
	"encoding/json"
	"net/http"
	apperrors "rhr/pkg/errors"
	httputil "rhr/pkg/http"
	"rhr/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type SessionHandler struct {
	sessions *Sessions
	log      *logger.Logger
}

func NewSessionHandler(sessions *Sessions, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		log:      log,
	}
}

type sessionRequest struct {
	Email string `json:"email"`
}

type sessionResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// Create issues a session token for the presented identity claim and sets it
// as an http-only cookie. The claim is not authenticated against a user
// store; token possession is what gates the privileged routes.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("A non-empty email claim is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	token, err := h.sessions.Issue(req.Email)
	if err != nil {
		h.log.Error("Failed to issue session token", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to issue session token", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	h.log.Info("Session token issued", "email", req.Email)
	if err := httputil.WriteSuccess(w, sessionResponse{Success: true, Token: token}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

// End clears the session cookie. Already-issued tokens remain valid until
// they expire; there is no server-side revocation list.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	if err := httputil.WriteSuccess(w, sessionResponse{Success: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "End", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/session", h.Create)
	router.POST("/api/v1/session/end", h.End)
}
