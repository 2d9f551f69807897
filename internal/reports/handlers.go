package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/RaphMerc007/WeCook/internal/selections"
)

// Handler handles GET /api/reports/week?date=YYYY-MM-DD
type Handler struct {
	generator *Generator
}

func NewHandler(generator *Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) HandleWeekReport(w http.ResponseWriter, r *http.Request) {
	date, err := selections.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	pdf, err := h.generator.GenerateWeekPDF(r.Context(), date)
	if err != nil {
		if errors.Is(err, ErrNoSelections) {
			writeError(w, http.StatusNotFound, "not_found", "No selections for that date")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=wecook-%s.pdf", date.Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
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
