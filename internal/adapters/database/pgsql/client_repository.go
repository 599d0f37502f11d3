package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/delci/zapatos-api/internal/core/domain"
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
)

type clientRepository struct {
	store documentStore
}

// NewClientRepository creates a repository for the client registry collection.
func NewClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepository {
	return &clientRepository{store: documentStore{pool: pool, name: collectionClients}}
}

func (r *clientRepository) LoadClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := r.store.load(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) ReplaceClients(ctx context.Context, clients []domain.Client) error {
	return r.store.replace(ctx, clients)
}
