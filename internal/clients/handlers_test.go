package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/storage"
	"github.com/RaphMerc007/WeCook/internal/storage/memory"
)

func newTestHandler(t *testing.T) (*Handler, *memory.MemoryStorage) {
	t.Helper()
	store := memory.New()
	return NewHandler(NewService(store, zap.NewNop())), store
}

func TestHandleCreate(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"name":"Alice","mealsPerWeek":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var client storage.Client
	if err := json.NewDecoder(w.Body).Decode(&client); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if client.ID == "" {
		t.Error("expected a generated client id")
	}
	if client.Name != "Alice" {
		t.Errorf("expected name=Alice, got %s", client.Name)
	}
	if client.MealsPerWeek != 3 {
		t.Errorf("expected mealsPerWeek=3, got %d", client.MealsPerWeek)
	}
}

func TestHandleCreateValidation(t *testing.T) {
	handler, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{oops`},
		{"missing name", `{"mealsPerWeek":3}`},
		{"zero allowance", `{"name":"Alice","mealsPerWeek":0}`},
		{"negative allowance", `{"name":"Alice","mealsPerWeek":-2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.HandleCreate(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestHandleList(t *testing.T) {
	handler, store := newTestHandler(t)
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob"} {
		if _, err := store.CreateClient(ctx, storage.Client{Name: name, MealsPerWeek: 2}); err != nil {
			t.Fatalf("failed to seed client: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var clients []storage.Client
	if err := json.NewDecoder(w.Body).Decode(&clients); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if clients[0].Name != "Alice" {
		t.Errorf("expected insertion order preserved, got %s first", clients[0].Name)
	}
}

func TestHandleGet(t *testing.T) {
	handler, store := newTestHandler(t)

	created, err := store.CreateClient(context.Background(), storage.Client{Name: "Alice", MealsPerWeek: 2})
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/clients/"+created.ID, nil)
	req.SetPathValue("id", created.ID)
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestHandleGetNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/clients/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleUpdate(t *testing.T) {
	handler, store := newTestHandler(t)

	created, err := store.CreateClient(context.Background(), storage.Client{Name: "Alice", MealsPerWeek: 2})
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	body := `{"name":"Alice Martin","mealsPerWeek":4}`
	req := httptest.NewRequest(http.MethodPut, "/api/clients/"+created.ID, strings.NewReader(body))
	req.SetPathValue("id", created.ID)
	w := httptest.NewRecorder()

	handler.HandleUpdate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	updated, err := store.GetClient(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("failed to read back client: %v", err)
	}
	if updated.Name != "Alice Martin" {
		t.Errorf("expected name=Alice Martin, got %s", updated.Name)
	}
	if updated.MealsPerWeek != 4 {
		t.Errorf("expected mealsPerWeek=4, got %d", updated.MealsPerWeek)
	}
}

func TestHandleUpdateNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/clients/missing", strings.NewReader(`{"name":"X","mealsPerWeek":1}`))
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.HandleUpdate(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleDelete(t *testing.T) {
	handler, store := newTestHandler(t)
	ctx := context.Background()

	created, err := store.CreateClient(ctx, storage.Client{Name: "Alice", MealsPerWeek: 2})
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/"+created.ID, nil)
	req.SetPathValue("id", created.ID)
	w := httptest.NewRecorder()

	handler.HandleDelete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if _, err := store.GetClient(ctx, created.ID); err == nil {
		t.Error("expected client to be gone")
	}
}

func TestHandleDeleteNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.HandleDelete(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
