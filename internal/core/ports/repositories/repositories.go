// Package repositories defines the persistence ports for the collection
// store. Each collection is a flat document: implementations load it whole
// and replace it whole on every write (last-writer-wins), mirroring the
// storage model the application was built around.
package repositories

import (
	"context"

	"github.com/delci/zapatos-api/internal/core/domain"
)

// ClientRepository persists the client registry collection.
type ClientRepository interface {
	LoadClients(ctx context.Context) ([]domain.Client, error)
	ReplaceClients(ctx context.Context, clients []domain.Client) error
}

// ProductRepository persists the inventory collection.
type ProductRepository interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
	ReplaceProducts(ctx context.Context, products []domain.Product) error
}

// AccountRepository persists the credit-account collection.
type AccountRepository interface {
	LoadAccounts(ctx context.Context) ([]domain.Account, error)
	ReplaceAccounts(ctx context.Context, accounts []domain.Account) error
}

// RepositoryProvider bundles the repositories for service construction.
type RepositoryProvider struct {
	ClientRepo  ClientRepository
	ProductRepo ProductRepository
	AccountRepo AccountRepository
}
