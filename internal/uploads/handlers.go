package uploads

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/RaphMerc007/WeCook/internal/config"
)

// Handler handles POST /api/upload.
type Handler struct {
	service *Service
	maxMB   int
}

func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		maxMB:   cfg.UploadMaxMB,
	}
}

// HandleUpload accepts a multipart form with a "file" part containing a JSON
// array of meals.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.maxMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Failed to read uploaded file")
		return
	}

	result, err := h.service.ProcessMealsFile(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, ErrInvalidFile) {
			writeError(w, http.StatusBadRequest, "invalid_request", "Uploaded file is not a JSON array of meals")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to process file")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
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
