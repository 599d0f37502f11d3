package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delci/zapatos-api/internal/apperrors"
	"github.com/delci/zapatos-api/internal/core/domain"
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
	"github.com/delci/zapatos-api/internal/dto"
	"github.com/delci/zapatos-api/internal/middleware"
)

// ClientService manages the client registry. Mutations serialize through a
// single mutex: the collection is loaded whole, transformed, and replaced
// whole, so there must never be two writers in flight.
type ClientService struct {
	repo portsrepo.ClientRepository
	mu   sync.Mutex
}

func NewClientService(repo portsrepo.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.LoadClients(ctx)
	if err != nil {
		logger.Error("Failed to load clients collection", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID: uuid.NewString(),
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.repo.ReplaceClients(ctx, append(clients, client)); err != nil {
		logger.Error("Failed to save clients collection", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	clients, err := s.repo.LoadClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ClientID == clientID {
			return &clients[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ListClients applies the registry table filters: id fragment, name
// substring (case-insensitive) and phone digits ignoring separators.
func (s *ClientService) ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error) {
	clients, err := s.repo.LoadClients(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if params.ID != "" && !strings.Contains(c.ClientID, params.ID) {
			continue
		}
		if params.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Name)) {
			continue
		}
		if params.Phone != "" && !strings.Contains(stripPhone(c.Phone), stripPhone(params.Phone)) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}

// SearchClients backs the client autocomplete: matches name or phone, capped
// at limit results.
func (s *ClientService) SearchClients(ctx context.Context, query string, limit int) ([]domain.Client, error) {
	clients, err := s.repo.LoadClients(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]domain.Client, 0, limit)
	for _, c := range clients {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(stripPhone(c.Phone), stripPhone(q)) {
			continue
		}
		matches = append(matches, c)
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.LoadClients(ctx)
	if err != nil {
		return nil, err
	}

	for i := range clients {
		if clients[i].ClientID != clientID {
			continue
		}
		if req.Name != nil {
			clients[i].Name = *req.Name
		}
		if req.Phone != nil {
			clients[i].Phone = *req.Phone
		}
		if req.Address != nil {
			clients[i].Address = *req.Address
		}
		clients[i].LastUpdatedAt = time.Now()

		if err := s.repo.ReplaceClients(ctx, clients); err != nil {
			logger.Error("Failed to save clients collection", slog.String("error", err.Error()), slog.String("client_id", clientID))
			return nil, err
		}
		return &clients[i], nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.repo.LoadClients(ctx)
	if err != nil {
		return err
	}

	remaining := make([]domain.Client, 0, len(clients))
	found := false
	for _, c := range clients {
		if c.ClientID == clientID {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return apperrors.ErrNotFound
	}

	if err := s.repo.ReplaceClients(ctx, remaining); err != nil {
		logger.Error("Failed to save clients collection", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return err
	}
	logger.Info("Client deleted", slog.String("client_id", clientID))
	return nil
}

// stripPhone drops the separators people type into phone numbers.
func stripPhone(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.ToLower(s))
}
