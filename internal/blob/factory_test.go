package blob

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	appcfg "github.com/RaphMerc007/WeCook/internal/config"
)

func TestNewLocalMode(t *testing.T) {
	cfg := &appcfg.Config{
		BlobMode:     appcfg.BlobModeLocal,
		BlobLocalDir: filepath.Join(t.TempDir(), "uploads"),
	}

	store, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := store.(*LocalStore); !ok {
		t.Fatalf("expected *LocalStore, got %T", store)
	}
}

func TestNewS3ModeIncompleteConfigFails(t *testing.T) {
	cfg := &appcfg.Config{
		BlobMode: appcfg.BlobModeS3,
		S3:       appcfg.S3Config{Endpoint: "https://s3.example.com"},
	}

	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for incomplete S3 config")
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	key := ObjectKey("meals.json")
	if err := store.PutObject(ctx, key, []byte(`[{"id":"m1"}]`), "application/json"); err != nil {
		t.Fatalf("failed to put object: %v", err)
	}

	data, err := store.GetObject(ctx, key)
	if err != nil {
		t.Fatalf("failed to get object: %v", err)
	}
	if string(data) != `[{"id":"m1"}]` {
		t.Errorf("unexpected object data: %s", data)
	}

	if err := store.DeleteObject(ctx, key); err != nil {
		t.Fatalf("failed to delete object: %v", err)
	}
	if _, err := store.GetObject(ctx, key); err == nil {
		t.Error("expected deleted object to be gone")
	}
}

func TestObjectKeySanitizesFilename(t *testing.T) {
	key := ObjectKey("../etc/passwd")
	if strings.Contains(key, "..") || strings.Contains(key, "/") {
		t.Errorf("expected sanitized key, got %q", key)
	}

	if empty := ObjectKey(""); !strings.HasSuffix(empty, "-upload") {
		t.Errorf("expected fallback name for empty filename, got %q", empty)
	}
}
