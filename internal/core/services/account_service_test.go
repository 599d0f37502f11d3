package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/delci/zapatos-api/internal/apperrors"
	"github.com/delci/zapatos-api/internal/core/domain"
	"github.com/delci/zapatos-api/internal/core/ledger"
	"github.com/delci/zapatos-api/internal/core/services"
	"github.com/delci/zapatos-api/internal/dto"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccounts *MockAccountRepository
	mockProducts *MockProductRepository
	mockClients  *MockClientRepository
	service      *services.AccountService

	client domain.Client
	bag    domain.Product
	shoe   domain.Product
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockProducts = new(MockProductRepository)
	suite.mockClients = new(MockClientRepository)
	suite.service = services.NewAccountService(suite.mockAccounts, suite.mockProducts, suite.mockClients)

	suite.client = domain.Client{
		ClientID: uuid.NewString(),
		Name:     "María Fernández",
		Phone:    "8888-1234",
	}
	suite.bag = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Bolso clásico",
		Category:  domain.CategoryBags,
		Price:     decimal.NewFromInt(1000),
		Group:     domain.GroupBolsosManoHombro,
		Stock:     5,
	}
	suite.shoe = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Sandalia verano",
		Category:  domain.CategoryShoes,
		Price:     decimal.NewFromInt(25000),
		Group:     domain.GroupSandalias,
		Color:     "Negro",
		Sizes: []domain.ShoeSizeVariant{
			{Size: "38", Stock: 2},
			{Size: "39", Stock: 0},
		},
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		ClientID: suite.client.ClientID,
		Items: []dto.AccountItemRequest{
			{ProductID: suite.bag.ProductID, Quantity: 2},
		},
	}

	suite.mockClients.On("LoadClients", ctx).Return([]domain.Client{suite.client}, nil).Once()
	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.bag}, nil).Once()
	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.MatchedBy(func(accounts []domain.Account) bool {
		return len(accounts) == 1
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.client.ClientID, account.ClientID)
	suite.Equal(suite.client.Name, account.ClientName)
	suite.True(decimal.NewFromInt(2000).Equal(account.TotalAmount))
	suite.True(decimal.NewFromInt(2000).Equal(account.RemainingAmount))
	suite.True(account.TotalPaid.IsZero())
	suite.Equal(2, account.TotalProducts)
	suite.Equal(domain.AccountActive, account.Status)
	suite.True(domain.Today().Equal(account.OpenedOn))

	// First due date defaults to one installment interval after opening.
	suite.Require().NotNil(account.NextPaymentDate)
	suite.True(domain.Today().AddDays(ledger.DueIntervalDays).Equal(*account.NextPaymentDate))

	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)

	suite.mockAccounts.AssertExpectations(suite.T())
	suite.mockProducts.AssertExpectations(suite.T())
	suite.mockClients.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ExplicitNextPaymentDate() {
	ctx := context.Background()
	due := domain.Today().AddDays(30)
	req := dto.CreateAccountRequest{
		ClientID:        suite.client.ClientID,
		NextPaymentDate: &due,
		Items: []dto.AccountItemRequest{
			{ProductID: suite.bag.ProductID, Quantity: 1},
		},
	}

	suite.mockClients.On("LoadClients", ctx).Return([]domain.Client{suite.client}, nil).Once()
	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.bag}, nil).Once()
	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account.NextPaymentDate)
	suite.True(due.Equal(*account.NextPaymentDate))

	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CapturesDiscountedPrice() {
	ctx := context.Background()
	start := domain.Today()
	suite.bag.Offer = domain.Offer{
		DiscountPercentage: 20,
		OfferDurationDays:  7,
		OfferStartDate:     &start,
	}
	req := dto.CreateAccountRequest{
		ClientID: suite.client.ClientID,
		Items: []dto.AccountItemRequest{
			{ProductID: suite.bag.ProductID, Quantity: 1},
		},
	}

	suite.mockClients.On("LoadClients", ctx).Return([]domain.Client{suite.client}, nil).Once()
	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.bag}, nil).Once()
	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(account.Items, 1)
	item := account.Items[0]
	suite.True(decimal.NewFromInt(800).Equal(item.UnitPrice), "got %s", item.UnitPrice)
	suite.Require().NotNil(item.OriginalPrice)
	suite.True(decimal.NewFromInt(1000).Equal(*item.OriginalPrice))
	suite.Equal(float64(20), item.DiscountPercentage)
	suite.True(decimal.NewFromInt(800).Equal(account.TotalAmount))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ClientNotFound() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		ClientID: uuid.NewString(),
		Items: []dto.AccountItemRequest{
			{ProductID: suite.bag.ProductID, Quantity: 1},
		},
	}

	suite.mockClients.On("LoadClients", ctx).Return([]domain.Client{}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockAccounts.AssertNotCalled(suite.T(), "ReplaceAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownProduct() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		ClientID: suite.client.ClientID,
		Items: []dto.AccountItemRequest{
			{ProductID: uuid.NewString(), Quantity: 1},
		},
	}

	suite.mockClients.On("LoadClients", ctx).Return([]domain.Client{suite.client}, nil).Once()
	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.bag}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockAccounts.AssertNotCalled(suite.T(), "ReplaceAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ShoeSizeOutOfStock() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		ClientID: suite.client.ClientID,
		Items: []dto.AccountItemRequest{
			{ProductID: suite.shoe.ProductID, Size: "39", Quantity: 1},
		},
	}

	suite.mockClients.On("LoadClients", ctx).Return([]domain.Client{suite.client}, nil).Once()
	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.shoe}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	existing := domain.Account{AccountID: uuid.NewString(), ClientName: "María Fernández"}

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{existing}, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, existing.AccountID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(existing.AccountID, account.AccountID)

	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{}, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestAddItem_MergesExistingLine() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID: uuid.NewString(),
		ClientID:  suite.client.ClientID,
		OpenedOn:  domain.Today(),
		Items: []domain.AccountItem{
			{
				ItemID:    uuid.NewString(),
				ProductID: suite.shoe.ProductID,
				Name:      suite.shoe.Name,
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(25000),
				Category:  domain.CategoryShoes,
				Size:      "38",
			},
		},
		TotalAmount:     decimal.NewFromInt(25000),
		RemainingAmount: decimal.NewFromInt(25000),
		TotalProducts:   1,
		Status:          domain.AccountActive,
	}

	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.shoe}, nil).Once()
	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{existing}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.AddItem(ctx, existing.AccountID, dto.AccountItemRequest{
		ProductID: suite.shoe.ProductID,
		Size:      "38",
		Quantity:  1,
	})

	suite.Require().NoError(err)
	suite.Require().Len(account.Items, 1)
	suite.Equal(2, account.Items[0].Quantity)
	suite.True(decimal.NewFromInt(50000).Equal(account.TotalAmount))
	suite.Equal(2, account.TotalProducts)

	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAddItem_AccountNotFound() {
	ctx := context.Background()

	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.bag}, nil).Once()
	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{}, nil).Once()

	account, err := suite.service.AddItem(ctx, uuid.NewString(), dto.AccountItemRequest{
		ProductID: suite.bag.ProductID,
		Quantity:  1,
	})

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestRemoveItem_UnknownItem() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID: uuid.NewString(),
		Items: []domain.AccountItem{
			{ItemID: uuid.NewString(), ProductID: suite.bag.ProductID, Quantity: 1, UnitPrice: decimal.NewFromInt(1000), Category: domain.CategoryBags},
		},
	}

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{existing}, nil).Once()

	account, err := suite.service.RemoveItem(ctx, existing.AccountID, "missing")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrUnknownItem)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockAccounts.AssertNotCalled(suite.T(), "ReplaceAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestRegisterPayment_Success() {
	ctx := context.Background()
	payDate := domain.Today()
	existing := domain.Account{
		AccountID:       uuid.NewString(),
		TotalAmount:     decimal.NewFromInt(1000),
		RemainingAmount: decimal.NewFromInt(1000),
		Status:          domain.AccountActive,
	}

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{existing}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.RegisterPayment(ctx, existing.AccountID, dto.RegisterPaymentRequest{
		Date:   payDate,
		Amount: decimal.NewFromInt(400),
	})

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(400).Equal(account.TotalPaid))
	suite.True(decimal.NewFromInt(600).Equal(account.RemainingAmount))
	suite.Require().Len(account.Payments, 1)
	suite.NotEmpty(account.Payments[0].PaymentID)
	suite.Require().NotNil(account.NextPaymentDate)
	suite.True(payDate.AddDays(ledger.DueIntervalDays).Equal(*account.NextPaymentDate))
	suite.Equal(domain.AccountActive, account.Status)

	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRegisterPayment_SettlesAccount() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:       uuid.NewString(),
		TotalAmount:     decimal.NewFromInt(1000),
		RemainingAmount: decimal.NewFromInt(1000),
		Status:          domain.AccountActive,
	}

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{existing}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.RegisterPayment(ctx, existing.AccountID, dto.RegisterPaymentRequest{
		Date:   domain.Today(),
		Amount: decimal.NewFromInt(1000),
	})

	suite.Require().NoError(err)
	suite.True(account.RemainingAmount.IsZero())
	suite.Nil(account.NextPaymentDate)
	suite.Equal(domain.AccountPaid, account.Status)
}

func (suite *AccountServiceTestSuite) TestRegisterPayment_NonPositiveAmount() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:       uuid.NewString(),
		TotalAmount:     decimal.NewFromInt(1000),
		RemainingAmount: decimal.NewFromInt(1000),
	}

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{existing}, nil).Once()

	account, err := suite.service.RegisterPayment(ctx, existing.AccountID, dto.RegisterPaymentRequest{
		Date:   domain.Today(),
		Amount: decimal.Zero,
	})

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockAccounts.AssertNotCalled(suite.T(), "ReplaceAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSetBiweeklyAmount_Success() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:       uuid.NewString(),
		TotalAmount:     decimal.NewFromInt(1000),
		RemainingAmount: decimal.NewFromInt(1000),
	}

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{existing}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.SetBiweeklyAmount(ctx, existing.AccountID, decimal.NewFromInt(250))

	suite.Require().NoError(err)
	suite.Require().NotNil(account.BiweeklyAmount)
	suite.True(decimal.NewFromInt(250).Equal(*account.BiweeklyAmount))
}

func (suite *AccountServiceTestSuite) TestSetBiweeklyAmount_NonPositive() {
	ctx := context.Background()

	account, err := suite.service.SetBiweeklyAmount(ctx, uuid.NewString(), decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	suite.mockAccounts.AssertNotCalled(suite.T(), "LoadAccounts", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_StatusFilterAndOrder() {
	ctx := context.Background()
	today := domain.Today()
	overdueDate := today.AddDays(-5)

	paid := domain.Account{
		AccountID:       "acc-paid",
		ClientName:      "Cliente A",
		OpenedOn:        today.AddDays(-3),
		RemainingAmount: decimal.Zero,
	}
	overdue := domain.Account{
		AccountID:       "acc-overdue",
		ClientName:      "Cliente B",
		OpenedOn:        today.AddDays(-2),
		RemainingAmount: decimal.NewFromInt(500),
		NextPaymentDate: &overdueDate,
	}
	active := domain.Account{
		AccountID:       "acc-active",
		ClientName:      "Cliente C",
		OpenedOn:        today.AddDays(-1),
		RemainingAmount: decimal.NewFromInt(500),
	}

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{paid, overdue, active}, nil).Times(2)

	all, nextToken, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{})
	suite.Require().NoError(err)
	suite.Empty(nextToken)
	suite.Require().Len(all, 3)
	// Newest first, with the status derived for today.
	suite.Equal("acc-active", all[0].AccountID)
	suite.Equal(domain.AccountActive, all[0].Status)
	suite.Equal("acc-overdue", all[1].AccountID)
	suite.Equal(domain.AccountOverdue, all[1].Status)
	suite.Equal("acc-paid", all[2].AccountID)
	suite.Equal(domain.AccountPaid, all[2].Status)

	onlyOverdue, _, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{Status: "overdue"})
	suite.Require().NoError(err)
	suite.Require().Len(onlyOverdue, 1)
	suite.Equal("acc-overdue", onlyOverdue[0].AccountID)
}

func (suite *AccountServiceTestSuite) TestListAccounts_CursorPagination() {
	ctx := context.Background()
	today := domain.Today()

	accounts := []domain.Account{
		{AccountID: "acc-1", OpenedOn: today.AddDays(-3), RemainingAmount: decimal.NewFromInt(100)},
		{AccountID: "acc-2", OpenedOn: today.AddDays(-2), RemainingAmount: decimal.NewFromInt(100)},
		{AccountID: "acc-3", OpenedOn: today.AddDays(-1), RemainingAmount: decimal.NewFromInt(100)},
	}

	suite.mockAccounts.On("LoadAccounts", ctx).Return(accounts, nil).Times(2)

	page1, token, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(page1, 2)
	suite.Equal("acc-3", page1[0].AccountID)
	suite.Equal("acc-2", page1[1].AccountID)
	suite.Require().NotEmpty(token)

	page2, token2, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{Limit: 2, NextToken: token})
	suite.Require().NoError(err)
	suite.Require().Len(page2, 1)
	suite.Equal("acc-1", page2[0].AccountID)
	suite.Empty(token2)
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidToken() {
	ctx := context.Background()

	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{}, nil).Once()

	_, _, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{NextToken: "not-a-token"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		ClientID: suite.client.ClientID,
		Items: []dto.AccountItemRequest{
			{ProductID: suite.bag.ProductID, Quantity: 1},
		},
	}
	expectedErr := assert.AnError

	suite.mockClients.On("LoadClients", ctx).Return([]domain.Client{suite.client}, nil).Once()
	suite.mockProducts.On("LoadProducts", ctx).Return([]domain.Product{suite.bag}, nil).Once()
	suite.mockAccounts.On("LoadAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockAccounts.On("ReplaceAccounts", ctx, mock.Anything).Return(expectedErr).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Test Suite ---

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
