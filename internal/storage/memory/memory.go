package memory

import (
	"context"
	"sync"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

// MemoryStorage is an in-memory implementation of storage.Storage. It backs
// local development without a MongoDB instance and the handler tests.
type MemoryStorage struct {
	mu         sync.RWMutex
	selections *storage.SelectionDocument
	meals      map[string]storage.Meal
	mealOrder  []string
	clients    map[string]storage.Client
	clientIDs  []string
}

// New creates an empty MemoryStorage.
func New() *MemoryStorage {
	return &MemoryStorage{
		meals:   make(map[string]storage.Meal),
		clients: make(map[string]storage.Client),
	}
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

func cloneDocument(doc *storage.SelectionDocument) *storage.SelectionDocument {
	if doc == nil {
		return nil
	}
	out := *doc
	out.Selections = make([]storage.WeekEntry, len(doc.Selections))
	for i, entry := range doc.Selections {
		out.Selections[i] = cloneWeekEntry(entry)
	}
	return &out
}

func cloneWeekEntry(entry storage.WeekEntry) storage.WeekEntry {
	out := entry
	out.Meals = make(map[string]int, len(entry.Meals))
	for id, qty := range entry.Meals {
		out.Meals[id] = qty
	}
	if entry.Date != nil {
		date := *entry.Date
		out.Date = &date
	}
	if entry.Clients != nil {
		out.Clients = make([]storage.ClientSelection, len(entry.Clients))
		for i, cs := range entry.Clients {
			meals := make(map[string]int, len(cs.Meals))
			for id, qty := range cs.Meals {
				meals[id] = qty
			}
			out.Clients[i] = storage.ClientSelection{
				ClientID:   cs.ClientID,
				ClientName: cs.ClientName,
				Meals:      meals,
			}
		}
	}
	return out
}
