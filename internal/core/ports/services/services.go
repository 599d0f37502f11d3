// Package services defines the service facades the handlers depend on.
package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/delci/zapatos-api/internal/core/domain"
	"github.com/delci/zapatos-api/internal/dto"
)

// ClientSvcFacade exposes the client registry operations.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error)
	SearchClients(ctx context.Context, query string, limit int) ([]domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
}

// ProductSvcFacade exposes the inventory operations. Discount windows are
// evaluated lazily when products are read, never stored as derived flags.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// AccountSvcFacade exposes the credit-account operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, string, error)
	AddItem(ctx context.Context, accountID string, req dto.AccountItemRequest) (*domain.Account, error)
	RemoveItem(ctx context.Context, accountID string, itemID string) (*domain.Account, error)
	RegisterPayment(ctx context.Context, accountID string, req dto.RegisterPaymentRequest) (*domain.Account, error)
	SetBiweeklyAmount(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error)
}

// ReportingSvcFacade exposes the dashboard summary.
type ReportingSvcFacade interface {
	DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
}

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	Client    ClientSvcFacade
	Product   ProductSvcFacade
	Account   AccountSvcFacade
	Reporting ReportingSvcFacade
}
