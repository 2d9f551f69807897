package meals

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RaphMerc007/WeCook/internal/selections"
)

// Handler handles HTTP requests for the meal catalog.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /api/meals?date=YYYY-MM-DD
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := selections.ParseDate(dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		meals, err := h.service.ListForDate(r.Context(), date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch meals")
			return
		}
		writeJSON(w, http.StatusOK, meals)
		return
	}

	meals, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch meals")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// HandleGet handles GET /api/meals/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	meal, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrMealNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Meal not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch meal")
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// HandleImport handles POST /api/meals
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	count, err := h.service.Import(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to import meals")
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{
		Message:    "Meals imported successfully",
		MealsCount: count,
	})
}

// HandleClear handles POST /api/meals/clear
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to clear meals")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "All meals cleared successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

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
