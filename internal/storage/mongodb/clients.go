package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RaphMerc007/WeCook/internal/storage"
	"github.com/google/uuid"
)

func (s *MongoStorage) ListClients(ctx context.Context) ([]storage.Client, error) {
	coll, err := s.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	clients := []storage.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, nil
}

func (s *MongoStorage) GetClient(ctx context.Context, id string) (*storage.Client, error) {
	coll, err := s.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	var client storage.Client
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&client); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", id, err)
	}
	return &client, nil
}

func (s *MongoStorage) CreateClient(ctx context.Context, client storage.Client) (*storage.Client, error) {
	coll, err := s.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	if _, err := coll.InsertOne(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

func (s *MongoStorage) UpdateClient(ctx context.Context, client storage.Client) (*storage.Client, error) {
	coll, err := s.collection(clientsCollection)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var out storage.Client
	if err := coll.FindOneAndReplace(ctx, bson.M{"id": client.ID}, client, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update client %s: %w", client.ID, err)
	}
	return &out, nil
}

func (s *MongoStorage) DeleteClient(ctx context.Context, id string) error {
	coll, err := s.collection(clientsCollection)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
