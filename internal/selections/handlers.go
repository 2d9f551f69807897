package selections

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Handler handles HTTP requests for the selections document.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGet handles GET /api/selections
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch selections")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// HandleReplace handles POST /api/selections
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	var req ReplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	doc, err := h.service.Replace(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save selections")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// HandleQuantityChange handles POST /api/selections/quantity
func (h *Handler) HandleQuantityChange(w http.ResponseWriter, r *http.Request) {
	var req QuantityChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	doc, err := h.service.ApplyQuantityChange(r.Context(), req)
	if err != nil {
		var quotaErr *QuotaExceededError
		switch {
		case errors.As(err, &quotaErr):
			writeError(w, http.StatusConflict, "quota_exceeded", quotaErr.Error())
		case errors.Is(err, ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, ErrClientNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Client not found")
		case errors.Is(err, ErrConflict):
			writeError(w, http.StatusConflict, "conflict", "Selections were modified concurrently")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update selections")
		}
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// HandleClientProjection handles GET /api/selections/client/{id}?date=YYYY-MM-DD
func (h *Handler) HandleClientProjection(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")
	date, err := ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	meals, err := h.service.ForClient(r.Context(), clientID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch client selections")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clientId": clientID,
		"meals":    meals,
	})
}

// HandleTotals handles GET /api/selections/totals?date=YYYY-MM-DD&mealId=
func (h *Handler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	mealID := r.URL.Query().Get("mealId")
	if mealID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "mealId is required")
		return
	}
	date, err := ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	total, err := h.service.TotalForMeal(r.Context(), mealID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to compute total")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mealId": mealID,
		"total":  total,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes an error response in the standard envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
