package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/RaphMerc007/WeCook/internal/config"
)

// Handler exposes the dev token endpoint.
type Handler struct {
	config  *config.Config
	service *Service
}

func NewHandler(cfg *config.Config, service *Service) *Handler {
	return &Handler{config: cfg, service: service}
}

type tokenRequest struct {
	UserID string `json:"userId"`
}

// HandleIssueToken handles POST /api/auth/token. Only available with
// AUTH_MODE=dev; production deployments issue tokens elsewhere.
func (h *Handler) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	if h.config.AuthMode != config.AuthModeDev {
		writeError(w, http.StatusNotFound, "not_found", "Token endpoint is disabled")
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "userId is required")
		return
	}

	token, err := h.service.IssueJWT(req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to issue token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
