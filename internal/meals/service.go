package meals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/selections"
	"github.com/RaphMerc007/WeCook/internal/storage"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrMealNotFound   = errors.New("meal not found")
)

// Service owns the meal catalog: import/upsert, listing (optionally narrowed
// to one delivery date's selections), and the bulk clear.
type Service struct {
	meals      storage.MealsStorage
	selections storage.SelectionsStorage
	log        *zap.Logger
}

func NewService(meals storage.MealsStorage, sel storage.SelectionsStorage, log *zap.Logger) *Service {
	return &Service{
		meals:      meals,
		selections: sel,
		log:        log.Named("meals"),
	}
}

// List returns every meal in the catalog.
func (s *Service) List(ctx context.Context) ([]storage.Meal, error) {
	return s.meals.ListMeals(ctx)
}

// ListForDate returns the meals selected on the week entry matching the
// given calendar day. No entry, or no selections document at all, yields an
// empty list.
func (s *Service) ListForDate(ctx context.Context, date time.Time) ([]storage.Meal, error) {
	doc, err := s.selections.FindSelections(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return []storage.Meal{}, nil
	}
	if err != nil {
		return nil, err
	}

	quantities := selections.ProjectForDate(doc, date)
	if len(quantities) == 0 {
		return []storage.Meal{}, nil
	}
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	return s.meals.FindMealsByIDs(ctx, ids)
}

// Get returns one meal by id.
func (s *Service) Get(ctx context.Context, id string) (*storage.Meal, error) {
	meal, err := s.meals.GetMeal(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMealNotFound
	}
	return meal, err
}

// Import upserts every meal by id, generating an id when absent. When a date
// is supplied, a new week entry is appended with quantity 1 for each
// imported meal, and totalWeeks grows to cover it. This is the import
// contract the browser extension relies on.
func (s *Service) Import(ctx context.Context, req ImportRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	saved := make([]storage.Meal, 0, len(req.Meals))
	for _, raw := range req.Meals {
		id := raw.ID
		if id == "" {
			id = uuid.New().String()
		}
		meal, err := s.meals.UpsertMeal(ctx, raw.toStorage(id))
		if err != nil {
			return 0, fmt.Errorf("failed to save meal %q: %w", raw.Name, err)
		}
		saved = append(saved, *meal)
	}
	s.log.Info("imported meals", zap.Int("count", len(saved)))

	if req.Date == "" {
		return len(saved), nil
	}

	date, err := selections.ParseDate(req.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	if err := s.appendWeekEntry(ctx, saved, date); err != nil {
		return 0, err
	}
	return len(saved), nil
}

// appendWeekEntry pushes a new week with quantity 1 per imported meal.
func (s *Service) appendWeekEntry(ctx context.Context, saved []storage.Meal, date time.Time) error {
	weekNumber := 1
	doc, err := s.selections.FindSelections(ctx)
	if err == nil {
		weekNumber = len(doc.Selections) + 1
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	entry := storage.WeekEntry{
		WeekNumber: weekNumber,
		Meals:      make(map[string]int, len(saved)),
		Date:       &date,
	}
	for _, meal := range saved {
		entry.Meals[meal.ID] = 1
	}
	if err := s.selections.AppendWeek(ctx, entry, weekNumber); err != nil {
		return err
	}
	s.log.Info("appended week entry for import",
		zap.Time("date", date),
		zap.Int("week_number", weekNumber))
	return nil
}

// Clear removes every meal from the catalog and resets the selections
// document to its seeded single-empty-week state, so no week entry keeps
// referencing deleted meals.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.meals.DeleteAllMeals(ctx); err != nil {
		return err
	}
	if _, err := s.selections.ReplaceSelections(ctx, selections.SeedDocument()); err != nil {
		return fmt.Errorf("failed to reset selections: %w", err)
	}
	s.log.Info("cleared meal catalog and reset selections")
	return nil
}
