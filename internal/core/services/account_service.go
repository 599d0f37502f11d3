package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/delci/zapatos-api/internal/apperrors"
	"github.com/delci/zapatos-api/internal/core/domain"
	"github.com/delci/zapatos-api/internal/core/ledger"
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
	"github.com/delci/zapatos-api/internal/core/pricing"
	"github.com/delci/zapatos-api/internal/dto"
	"github.com/delci/zapatos-api/internal/middleware"
	"github.com/delci/zapatos-api/internal/utils"
	"github.com/delci/zapatos-api/internal/utils/pagination"
)

// AccountService manages credit accounts. All derived fields go through the
// ledger package; this service only resolves products into line items and
// moves whole collections in and out of the store. One mutex serializes the
// load→transform→replace cycle.
type AccountService struct {
	accountRepo portsrepo.AccountRepository
	productRepo portsrepo.ProductRepository
	clientRepo  portsrepo.ClientRepository
	mu          sync.Mutex

	// now is swappable in tests.
	now func() domain.Date
}

func NewAccountService(accountRepo portsrepo.AccountRepository, productRepo portsrepo.ProductRepository, clientRepo portsrepo.ClientRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		now:         domain.Today,
	}
}

// CreateAccount opens an account for a client from an item draft. The
// account is created with zero payments, today's date, a first due date
// defaulting to creation + one installment interval, and derived totals.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	today := s.now()

	client, err := s.findClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, req.Items, today)
	if err != nil {
		return nil, err
	}

	totalAmount, totalProducts := ledger.ComputeTotals(items)

	next := req.NextPaymentDate
	if next == nil {
		d := today.AddDays(ledger.DueIntervalDays)
		next = &d
	}
	if !totalAmount.IsPositive() {
		next = nil
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		ClientID:        client.ClientID,
		ClientName:      client.Name,
		OpenedOn:        today,
		TotalAmount:     totalAmount,
		TotalPaid:       decimal.Zero,
		RemainingAmount: totalAmount,
		TotalProducts:   totalProducts,
		NextPaymentDate: next,
		BiweeklyAmount:  req.BiweeklyAmount,
		Items:           items,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	account.Status = ledger.DeriveStatus(account.RemainingAmount, account.NextPaymentDate, today)

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accountRepo.LoadAccounts(ctx)
	if err != nil {
		logger.Error("Failed to load accounts collection", slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.accountRepo.ReplaceAccounts(ctx, append(accounts, account)); err != nil {
		logger.Error("Failed to save accounts collection", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("client_id", client.ClientID))
	return &account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	accounts, err := s.accountRepo.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].AccountID == accountID {
			return &accounts[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ListAccounts returns a page of accounts, newest first, filtered by status
// and by a query over client name, client ID and account ID. The second
// return value is the cursor for the next page, empty when exhausted.
func (s *AccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, string, error) {
	accounts, err := s.accountRepo.LoadAccounts(ctx)
	if err != nil {
		return nil, "", err
	}
	today := s.now()

	q := strings.ToLower(strings.TrimSpace(params.Query))
	filtered := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		// Status is derived, so filter on the value the caller would see today.
		status := ledger.DeriveStatus(a.RemainingAmount, a.NextPaymentDate, today)
		if params.Status != "" && string(status) != params.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.ClientName), q) &&
			!strings.Contains(strings.ToLower(a.ClientID), q) &&
			!strings.Contains(strings.ToLower(a.AccountID), q) {
			continue
		}
		a.Status = status
		filtered = append(filtered, a)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].OpenedOn.Equal(filtered[j].OpenedOn) {
			return filtered[i].OpenedOn.After(filtered[j].OpenedOn)
		}
		return filtered[i].AccountID > filtered[j].AccountID
	})

	start := 0
	if params.NextToken != "" {
		start, err = s.cursorPosition(filtered, params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page := filtered[start:end]

	nextToken := ""
	if end < len(filtered) && len(page) > 0 {
		last := page[len(page)-1]
		nextToken = pagination.EncodeMultiFieldToken(last.OpenedOn.String(), last.AccountID)
	}
	return page, nextToken, nil
}

// AddItem resolves the product into a line item at today's effective price
// and applies it through the ledger.
func (s *AccountService) AddItem(ctx context.Context, accountID string, req dto.AccountItemRequest) (*domain.Account, error) {
	today := s.now()
	items, err := s.resolveItems(ctx, []dto.AccountItemRequest{req}, today)
	if err != nil {
		return nil, err
	}
	return s.mutateAccount(ctx, accountID, func(account domain.Account) (domain.Account, error) {
		return ledger.AddItem(account, items[0], today), nil
	})
}

// RemoveItem removes a line item; removing an unknown item surfaces
// apperrors.ErrUnknownItem instead of silently doing nothing.
func (s *AccountService) RemoveItem(ctx context.Context, accountID string, itemID string) (*domain.Account, error) {
	today := s.now()
	return s.mutateAccount(ctx, accountID, func(account domain.Account) (domain.Account, error) {
		return ledger.RemoveItem(account, itemID, today)
	})
}

// RegisterPayment validates and applies one installment.
func (s *AccountService) RegisterPayment(ctx context.Context, accountID string, req dto.RegisterPaymentRequest) (*domain.Account, error) {
	today := s.now()
	payment := domain.AccountPayment{
		PaymentID: uuid.NewString(),
		Date:      req.Date,
		Amount:    req.Amount,
	}
	account, err := s.mutateAccount(ctx, accountID, func(account domain.Account) (domain.Account, error) {
		return ledger.RegisterPayment(account, payment, today)
	})
	if err != nil {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Payment applied",
		slog.String("account_id", account.AccountID),
		slog.String("amount", utils.FormatColones(payment.Amount)),
		slog.String("remaining", utils.FormatColones(account.RemainingAmount)))
	return account, nil
}

// SetBiweeklyAmount updates the suggested installment.
func (s *AccountService) SetBiweeklyAmount(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	return s.mutateAccount(ctx, accountID, func(account domain.Account) (domain.Account, error) {
		account.BiweeklyAmount = &amount
		return account, nil
	})
}

// mutateAccount runs one serialized load→transform→replace cycle against a
// single account in the collection.
func (s *AccountService) mutateAccount(ctx context.Context, accountID string, transform func(domain.Account) (domain.Account, error)) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accountRepo.LoadAccounts(ctx)
	if err != nil {
		logger.Error("Failed to load accounts collection", slog.String("error", err.Error()))
		return nil, err
	}

	for i := range accounts {
		if accounts[i].AccountID != accountID {
			continue
		}
		updated, err := transform(accounts[i])
		if err != nil {
			return nil, err
		}
		updated.LastUpdatedAt = time.Now()
		accounts[i] = updated

		if err := s.accountRepo.ReplaceAccounts(ctx, accounts); err != nil {
			logger.Error("Failed to save accounts collection", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, err
		}
		return &updated, nil
	}
	return nil, apperrors.ErrNotFound
}

// resolveItems turns item requests into account line items, capturing the
// effective (already-discounted) unit price at this moment. Original price
// and percentage are only recorded when a discount actually applied.
func (s *AccountService) resolveItems(ctx context.Context, reqs []dto.AccountItemRequest, today domain.Date) ([]domain.AccountItem, error) {
	products, err := s.productRepo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}

	items := make([]domain.AccountItem, 0, len(reqs))
	for _, req := range reqs {
		product, ok := byID[req.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, apperrors.ErrNotFound)
		}

		item := domain.AccountItem{
			ItemID:      uuid.NewString(),
			ProductID:   product.ProductID,
			SKU:         product.SKU,
			Name:        product.Name,
			Quantity:    req.Quantity,
			Category:    product.Category,
			Group:       product.Group,
			Subcategory: product.Subcategory,
		}

		var quote pricing.Quote
		switch product.Category {
		case domain.CategoryShoes:
			variant, ok := product.VariantBySize(req.Size)
			if !ok || variant.Stock <= 0 {
				return nil, fmt.Errorf("%w: size %q is not available for product %s", apperrors.ErrValidation, req.Size, product.ProductID)
			}
			item.Color = product.Color
			item.Size = req.Size
			quote = pricing.VariantQuote(product, variant, today)
		default:
			quote = pricing.ProductQuote(product, today)
		}

		item.UnitPrice = quote.EffectivePrice
		if quote.HasDiscount {
			original := product.Price
			item.OriginalPrice = &original
			item.DiscountPercentage = quote.DiscountPercentage
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *AccountService) findClient(ctx context.Context, clientID string) (*domain.Client, error) {
	clients, err := s.clientRepo.LoadClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ClientID == clientID {
			return &clients[i], nil
		}
	}
	return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
}

// cursorPosition finds where the previous page ended in the freshly
// filtered/sorted listing. A cursor pointing at a since-deleted account
// falls back to the nearest position after it.
func (s *AccountService) cursorPosition(accounts []domain.Account, token string) (int, error) {
	fields, err := pagination.DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (fields)")
	}
	openedOn, err := domain.ParseDate(fields[0])
	if err != nil {
		return 0, err
	}
	lastID := fields[1]

	for i, a := range accounts {
		if a.OpenedOn.Before(openedOn) {
			return i, nil
		}
		if a.OpenedOn.Equal(openedOn) && a.AccountID <= lastID {
			if a.AccountID == lastID {
				return i + 1, nil
			}
			return i, nil
		}
	}
	return len(accounts), nil
}
