package handler

import (
	"net/http"

	"github.com/mukujayCS/Apartment-Hunter/internal/service"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	authSvc *service.AuthService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authSvc *service.AuthService) *SessionHandler {
	return &SessionHandler{authSvc: authSvc}
}

// Create handles POST /v1/auth/session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	resp, err := h.authSvc.CreateSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
