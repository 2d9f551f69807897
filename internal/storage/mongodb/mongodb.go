package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	connectTimeout = 10 * time.Second
	retryInterval  = 5 * time.Second

	selectionsCollection = "selections"
	mealsCollection      = "meals"
	clientsCollection    = "clients"
)

// MongoStorage implements storage.Storage on a MongoDB database.
//
// The connection is established in the background with a fixed-delay retry
// loop, so the HTTP server can start serving health checks immediately.
// Operations issued before the first successful connect fail with a storage
// error; callers surface that as a generic failure and the loop keeps
// retrying independently.
type MongoStorage struct {
	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database

	uri    string
	dbName string
	log    *zap.Logger
}

// New creates a MongoStorage and starts connecting to uri in the background.
func New(uri, dbName string, log *zap.Logger) *MongoStorage {
	s := &MongoStorage{
		uri:    uri,
		dbName: dbName,
		log:    log.Named("mongodb"),
	}
	go s.connectWithRetry()
	return s
}

func (s *MongoStorage) connectWithRetry() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
		}
		cancel()

		if err == nil {
			s.mu.Lock()
			s.client = client
			s.db = client.Database(s.dbName)
			s.mu.Unlock()
			s.log.Info("connected to MongoDB", zap.String("database", s.dbName))
			return
		}

		s.log.Error("MongoDB connection failed, retrying",
			zap.Error(err),
			zap.Duration("retry_in", retryInterval))
		time.Sleep(retryInterval)
	}
}

// collection returns the named collection, or an error while disconnected.
func (s *MongoStorage) collection(name string) (*mongo.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, fmt.Errorf("mongodb not connected")
	}
	return s.db.Collection(name), nil
}

// Ping reports whether the database is currently reachable.
func (s *MongoStorage) Ping(ctx context.Context) error {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("mongodb not connected")
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (s *MongoStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	s.log.Info("closing MongoDB connection")
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}
