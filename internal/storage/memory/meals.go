package memory

import (
	"context"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

func (s *MemoryStorage) ListMeals(ctx context.Context) ([]storage.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meals := make([]storage.Meal, 0, len(s.mealOrder))
	for _, id := range s.mealOrder {
		meals = append(meals, s.meals[id])
	}
	return meals, nil
}

func (s *MemoryStorage) GetMeal(ctx context.Context, id string) (*storage.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meal, ok := s.meals[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &meal, nil
}

func (s *MemoryStorage) FindMealsByIDs(ctx context.Context, ids []string) ([]storage.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	meals := make([]storage.Meal, 0, len(ids))
	for _, id := range s.mealOrder {
		if wanted[id] {
			meals = append(meals, s.meals[id])
		}
	}
	return meals, nil
}

func (s *MemoryStorage) UpsertMeal(ctx context.Context, meal storage.Meal) (*storage.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.meals[meal.ID]; !exists {
		s.mealOrder = append(s.mealOrder, meal.ID)
	}
	s.meals[meal.ID] = meal
	return &meal, nil
}

func (s *MemoryStorage) DeleteAllMeals(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.meals = make(map[string]storage.Meal)
	s.mealOrder = nil
	return nil
}

func (s *MemoryStorage) CountMeals(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.meals)), nil
}
