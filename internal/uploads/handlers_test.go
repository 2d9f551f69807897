package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/config"
	"github.com/RaphMerc007/WeCook/internal/meals"
	"github.com/RaphMerc007/WeCook/internal/storage/memory"
)

func newUploadRequest(t *testing.T, fieldName, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newUploadHandler(t *testing.T) (*Handler, *memory.MemoryStorage) {
	t.Helper()
	store := memory.New()
	mealsService := meals.NewService(store, store, zap.NewNop())
	service := NewService(mealsService, &fakeBlobs{}, zap.NewNop())
	return NewHandler(service, &config.Config{UploadMaxMB: 10}), store
}

func TestHandleUpload(t *testing.T) {
	handler, store := newUploadHandler(t)

	req := newUploadRequest(t, "file", "meals.json", []byte(`[{"id":"m1","name":"Poulet"},{"name":"Saumon"}]`))
	w := httptest.NewRecorder()

	handler.HandleUpload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result Result
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.MealsCount != 2 || result.SavedCount != 2 {
		t.Errorf("expected 2 meals processed, got %+v", result)
	}

	count, _ := store.CountMeals(context.Background())
	if count != 2 {
		t.Errorf("expected 2 meals imported, got %d", count)
	}
}

func TestHandleUploadMissingFile(t *testing.T) {
	handler, _ := newUploadHandler(t)

	req := newUploadRequest(t, "wrong_field", "meals.json", []byte(`[]`))
	w := httptest.NewRecorder()

	handler.HandleUpload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleUploadNonJSONFile(t *testing.T) {
	handler, _ := newUploadHandler(t)

	req := newUploadRequest(t, "file", "meals.csv", []byte("name,price\nPoulet,12.99"))
	w := httptest.NewRecorder()

	handler.HandleUpload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
