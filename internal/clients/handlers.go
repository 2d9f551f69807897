package clients

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Handler handles HTTP requests for clients.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /api/clients
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch clients")
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// HandleGet handles GET /api/clients/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch client")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// HandleCreate handles POST /api/clients
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req UpsertClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	client, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create client")
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// HandleUpdate handles PUT /api/clients/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpsertClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	client, err := h.service.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, ErrClientNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Client not found")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update client")
		}
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// HandleDelete handles DELETE /api/clients/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Client not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
