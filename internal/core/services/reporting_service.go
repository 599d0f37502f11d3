package services

import (
	"context"
	"log/slog"

	"github.com/delci/zapatos-api/internal/core/domain"
	"github.com/delci/zapatos-api/internal/core/ledger"
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
	"github.com/delci/zapatos-api/internal/middleware"
)

// paymentAlertWindowDays is how far ahead the dashboard warns about
// upcoming due dates.
const paymentAlertWindowDays = 7

// ReportingService computes the dashboard summary across collections.
type ReportingService struct {
	clientRepo  portsrepo.ClientRepository
	productRepo portsrepo.ProductRepository
	accountRepo portsrepo.AccountRepository

	now func() domain.Date
}

func NewReportingService(clientRepo portsrepo.ClientRepository, productRepo portsrepo.ProductRepository, accountRepo portsrepo.AccountRepository) *ReportingService {
	return &ReportingService{
		clientRepo:  clientRepo,
		productRepo: productRepo,
		accountRepo: accountRepo,
		now:         domain.Today,
	}
}

// DashboardSummary counts units in stock, accounts with a pending balance,
// registered clients, and accounts whose next payment is due within the
// alert window (overdue ones included).
func (s *ReportingService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	today := s.now()

	clients, err := s.clientRepo.LoadClients(ctx)
	if err != nil {
		logger.Error("Failed to load clients collection", slog.String("error", err.Error()))
		return nil, err
	}
	products, err := s.productRepo.LoadProducts(ctx)
	if err != nil {
		logger.Error("Failed to load products collection", slog.String("error", err.Error()))
		return nil, err
	}
	accounts, err := s.accountRepo.LoadAccounts(ctx)
	if err != nil {
		logger.Error("Failed to load accounts collection", slog.String("error", err.Error()))
		return nil, err
	}

	summary := domain.DashboardSummary{TotalClients: len(clients)}

	for _, p := range products {
		summary.ProductsInStock += p.TotalStock()
	}

	alertCutoff := today.AddDays(paymentAlertWindowDays)
	for _, a := range accounts {
		status := ledger.DeriveStatus(a.RemainingAmount, a.NextPaymentDate, today)
		if status == domain.AccountPaid {
			continue
		}
		summary.PendingAccounts++
		if a.NextPaymentDate != nil && !a.NextPaymentDate.After(alertCutoff) {
			summary.PaymentAlerts++
		}
	}

	return &summary, nil
}
