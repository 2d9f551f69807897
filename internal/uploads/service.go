package uploads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/blob"
	"github.com/RaphMerc007/WeCook/internal/meals"
)

var ErrInvalidFile = errors.New("invalid meals file")

// Service processes uploaded meal files: the payload is a JSON array of
// meals exported by the browser extension. The raw file is archived in the
// blob store, then the meals are run through the normal import path.
// Archival failure is logged but does not fail the import.
type Service struct {
	meals *meals.Service
	blobs blob.Store
	log   *zap.Logger
}

func NewService(mealsService *meals.Service, blobs blob.Store, log *zap.Logger) *Service {
	return &Service{
		meals: mealsService,
		blobs: blobs,
		log:   log.Named("uploads"),
	}
}

// Result is the upload reply shape the browser extension expects.
type Result struct {
	Message    string `json:"message"`
	Filename   string `json:"filename"`
	MealsCount int    `json:"mealsCount"`
	SavedCount int    `json:"savedCount"`
}

// ProcessMealsFile archives and imports one uploaded file.
func (s *Service) ProcessMealsFile(ctx context.Context, filename string, data []byte) (*Result, error) {
	var raw []meals.RawMeal
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}

	key := blob.ObjectKey(filename)
	if err := s.blobs.PutObject(ctx, key, data, "application/json"); err != nil {
		s.log.Warn("failed to archive uploaded file",
			zap.String("key", key),
			zap.Error(err))
	}

	saved, err := s.meals.Import(ctx, meals.ImportRequest{Meals: raw})
	if err != nil {
		return nil, err
	}

	s.log.Info("processed meals file",
		zap.String("filename", filename),
		zap.Int("meals", saved))
	return &Result{
		Message:    "File uploaded and processed successfully",
		Filename:   key,
		MealsCount: len(raw),
		SavedCount: saved,
	}, nil
}
