package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

func (s *MongoStorage) ListMeals(ctx context.Context) ([]storage.Meal, error) {
	coll, err := s.collection(mealsCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer cursor.Close(ctx)

	meals := []storage.Meal{}
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}
	return meals, nil
}

func (s *MongoStorage) GetMeal(ctx context.Context, id string) (*storage.Meal, error) {
	coll, err := s.collection(mealsCollection)
	if err != nil {
		return nil, err
	}

	var meal storage.Meal
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&meal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find meal %s: %w", id, err)
	}
	return &meal, nil
}

func (s *MongoStorage) FindMealsByIDs(ctx context.Context, ids []string) ([]storage.Meal, error) {
	coll, err := s.collection(mealsCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find meals by ids: %w", err)
	}
	defer cursor.Close(ctx)

	meals := []storage.Meal{}
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}
	return meals, nil
}

func (s *MongoStorage) UpsertMeal(ctx context.Context, meal storage.Meal) (*storage.Meal, error) {
	coll, err := s.collection(mealsCollection)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out storage.Meal
	if err := coll.FindOneAndReplace(ctx, bson.M{"id": meal.ID}, meal, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to upsert meal %s: %w", meal.ID, err)
	}
	return &out, nil
}

func (s *MongoStorage) DeleteAllMeals(ctx context.Context) error {
	coll, err := s.collection(mealsCollection)
	if err != nil {
		return err
	}

	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete meals: %w", err)
	}
	return nil
}

func (s *MongoStorage) CountMeals(ctx context.Context) (int64, error) {
	coll, err := s.collection(mealsCollection)
	if err != nil {
		return 0, err
	}

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count meals: %w", err)
	}
	return count, nil
}
