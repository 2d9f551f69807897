package memory

import (
	"context"

	"github.com/RaphMerc007/WeCook/internal/storage"
	"github.com/google/uuid"
)

func (s *MemoryStorage) ListClients(ctx context.Context) ([]storage.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]storage.Client, 0, len(s.clientIDs))
	for _, id := range s.clientIDs {
		clients = append(clients, s.clients[id])
	}
	return clients, nil
}

func (s *MemoryStorage) GetClient(ctx context.Context, id string) (*storage.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &client, nil
}

func (s *MemoryStorage) CreateClient(ctx context.Context, client storage.Client) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	if _, exists := s.clients[client.ID]; !exists {
		s.clientIDs = append(s.clientIDs, client.ID)
	}
	s.clients[client.ID] = client
	return &client, nil
}

func (s *MemoryStorage) UpdateClient(ctx context.Context, client storage.Client) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[client.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	s.clients[client.ID] = client
	return &client, nil
}

func (s *MemoryStorage) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.clients, id)
	for i, existing := range s.clientIDs {
		if existing == id {
			s.clientIDs = append(s.clientIDs[:i], s.clientIDs[i+1:]...)
			break
		}
	}
	return nil
}
