package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full set of pgsql-backed repositories.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:  NewClientRepository(pool),
		ProductRepo: NewProductRepository(pool),
		AccountRepo: NewAccountRepository(pool),
	}
}
