package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/delci/zapatos-api/internal/core/domain"
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
)

type accountRepository struct {
	store documentStore
}

// NewAccountRepository creates a repository for the credit-account collection.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &accountRepository{store: documentStore{pool: pool, name: collectionAccounts}}
}

func (r *accountRepository) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := r.store.load(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) ReplaceAccounts(ctx context.Context, accounts []domain.Account) error {
	return r.store.replace(ctx, accounts)
}
