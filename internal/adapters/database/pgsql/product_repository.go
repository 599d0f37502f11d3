package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/delci/zapatos-api/internal/core/domain"
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
)

type productRepository struct {
	store documentStore
}

// NewProductRepository creates a repository for the inventory collection.
func NewProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &productRepository{store: documentStore{pool: pool, name: collectionProducts}}
}

func (r *productRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.store.load(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	return r.store.replace(ctx, products)
}
