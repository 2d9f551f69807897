package uploads

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/meals"
	"github.com/RaphMerc007/WeCook/internal/storage/memory"
)

// fakeBlobs records puts and optionally fails them.
type fakeBlobs struct {
	keys    []string
	failPut bool
}

func (f *fakeBlobs) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	if f.failPut {
		return fmt.Errorf("storage unavailable")
	}
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeBlobs) GetObject(ctx context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("not found")
}

func (f *fakeBlobs) DeleteObject(ctx context.Context, key string) error {
	return nil
}

func newTestService(t *testing.T, blobs *fakeBlobs) (*Service, *memory.MemoryStorage) {
	t.Helper()
	store := memory.New()
	mealsService := meals.NewService(store, store, zap.NewNop())
	return NewService(mealsService, blobs, zap.NewNop()), store
}

func TestProcessMealsFile(t *testing.T) {
	blobs := &fakeBlobs{}
	service, store := newTestService(t, blobs)

	data := []byte(`[{"name":"Poulet Grillé","price":"12.99"},{"id":"m2","name":"Saumon"}]`)
	result, err := service.ProcessMealsFile(context.Background(), "meals.json", data)
	if err != nil {
		t.Fatalf("failed to process file: %v", err)
	}

	if result.MealsCount != 2 {
		t.Errorf("expected mealsCount=2, got %d", result.MealsCount)
	}
	if result.SavedCount != 2 {
		t.Errorf("expected savedCount=2, got %d", result.SavedCount)
	}
	if len(blobs.keys) != 1 {
		t.Fatalf("expected 1 archived object, got %d", len(blobs.keys))
	}
	if result.Filename != blobs.keys[0] {
		t.Errorf("expected result filename to match archived key, got %q vs %q", result.Filename, blobs.keys[0])
	}

	count, err := store.CountMeals(context.Background())
	if err != nil {
		t.Fatalf("failed to count meals: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 meals imported, got %d", count)
	}
}

func TestProcessMealsFileRejectsNonArray(t *testing.T) {
	service, _ := newTestService(t, &fakeBlobs{})

	tests := []struct {
		name string
		data string
	}{
		{"not json", `hello`},
		{"object instead of array", `{"meals":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ProcessMealsFile(context.Background(), "meals.json", []byte(tt.data))
			if !errors.Is(err, ErrInvalidFile) {
				t.Errorf("expected ErrInvalidFile, got %v", err)
			}
		})
	}
}

func TestProcessMealsFileSurvivesArchivalFailure(t *testing.T) {
	blobs := &fakeBlobs{failPut: true}
	service, store := newTestService(t, blobs)

	result, err := service.ProcessMealsFile(context.Background(), "meals.json", []byte(`[{"id":"m1","name":"Poulet"}]`))
	if err != nil {
		t.Fatalf("expected import to survive blob failure, got %v", err)
	}
	if result.SavedCount != 1 {
		t.Errorf("expected savedCount=1, got %d", result.SavedCount)
	}

	count, _ := store.CountMeals(context.Background())
	if count != 1 {
		t.Errorf("expected meal to be imported despite archival failure, got %d", count)
	}
}
