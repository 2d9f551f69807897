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

func (s *MongoStorage) FindSelections(ctx context.Context) (*storage.SelectionDocument, error) {
	coll, err := s.collection(selectionsCollection)
	if err != nil {
		return nil, err
	}

	var doc storage.SelectionDocument
	if err := coll.FindOne(ctx, bson.M{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find selections: %w", err)
	}
	return &doc, nil
}

func (s *MongoStorage) ReplaceSelections(ctx context.Context, doc storage.SelectionDocument) (*storage.SelectionDocument, error) {
	return s.replaceSelections(ctx, doc, bson.M{}, true)
}

func (s *MongoStorage) ReplaceSelectionsIfRevision(ctx context.Context, doc storage.SelectionDocument, expected int64) (*storage.SelectionDocument, error) {
	out, err := s.replaceSelections(ctx, doc, bson.M{"revision": expected}, false)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrRevisionConflict
		}
		return nil, err
	}
	return out, nil
}

// replaceSelections runs a findOneAndUpdate against the singleton document.
// The revision is bumped atomically with the field replacement so readers
// always observe a consistent (document, revision) pair.
func (s *MongoStorage) replaceSelections(ctx context.Context, doc storage.SelectionDocument, filter bson.M, upsert bool) (*storage.SelectionDocument, error) {
	coll, err := s.collection(selectionsCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"totalWeeks":  doc.TotalWeeks,
			"currentWeek": doc.CurrentWeek,
			"selections":  doc.Selections,
		},
		"$inc": bson.M{"revision": int64(1)},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(upsert).
		SetReturnDocument(options.After)

	var out storage.SelectionDocument
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to replace selections: %w", err)
	}
	return &out, nil
}

func (s *MongoStorage) AppendWeek(ctx context.Context, entry storage.WeekEntry, totalWeeks int) error {
	coll, err := s.collection(selectionsCollection)
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"selections": entry},
		"$set":  bson.M{"totalWeeks": totalWeeks},
		"$inc":  bson.M{"revision": int64(1)},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := coll.UpdateOne(ctx, bson.M{}, update, opts); err != nil {
		return fmt.Errorf("failed to append week entry: %w", err)
	}
	return nil
}
