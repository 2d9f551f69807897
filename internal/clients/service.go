package clients

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/RaphMerc007/WeCook/internal/storage"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrClientNotFound = errors.New("client not found")
)

// Service owns client records and their weekly meal allowances.
type Service struct {
	clients storage.ClientsStorage
	log     *zap.Logger
}

func NewService(clients storage.ClientsStorage, log *zap.Logger) *Service {
	return &Service{
		clients: clients,
		log:     log.Named("clients"),
	}
}

func (s *Service) List(ctx context.Context) ([]storage.Client, error) {
	return s.clients.ListClients(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*storage.Client, error) {
	client, err := s.clients.GetClient(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	return client, err
}

func (s *Service) Create(ctx context.Context, req UpsertClientRequest) (*storage.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	client, err := s.clients.CreateClient(ctx, storage.Client{
		Name:         req.Name,
		MealsPerWeek: req.MealsPerWeek,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created client", zap.String("client_id", client.ID))
	return client, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertClientRequest) (*storage.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	client, err := s.clients.UpdateClient(ctx, storage.Client{
		ID:           id,
		Name:         req.Name,
		MealsPerWeek: req.MealsPerWeek,
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	return client, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.clients.DeleteClient(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}
