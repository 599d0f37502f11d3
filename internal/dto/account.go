package dto

import (
	"github.com/shopspring/decimal"

	"github.com/delci/zapatos-api/internal/core/domain"
)

// AccountItemRequest selects a product (and a size, for shoes) to add to an
// account. The unit price is never supplied by the caller; the service
// resolves the effective price at the moment of adding.
type AccountItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateAccountRequest defines the data needed to open a credit account.
type CreateAccountRequest struct {
	ClientID        string               `json:"clientId" binding:"required"`
	BiweeklyAmount  *decimal.Decimal     `json:"biweeklyAmount"`
	NextPaymentDate *domain.Date         `json:"nextPaymentDate"`
	Items           []AccountItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RegisterPaymentRequest records one installment against an account.
type RegisterPaymentRequest struct {
	Date   domain.Date     `json:"date" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateBiweeklyAmountRequest changes the suggested installment.
type UpdateBiweeklyAmountRequest struct {
	BiweeklyAmount decimal.Decimal `json:"biweeklyAmount" binding:"required"`
}

// ListAccountsParams are the accounts table filters plus cursor pagination.
type ListAccountsParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=active paid overdue"`
	Query     string `form:"q"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// AccountItemResponse mirrors domain.AccountItem.
type AccountItemResponse struct {
	ID                 string                 `json:"id"`
	ProductID          string                 `json:"productId,omitempty"`
	SKU                string                 `json:"sku,omitempty"`
	Name               string                 `json:"name"`
	Quantity           int                    `json:"quantity"`
	UnitPrice          decimal.Decimal        `json:"unitPrice"`
	OriginalPrice      *decimal.Decimal       `json:"originalPrice,omitempty"`
	DiscountPercentage float64                `json:"discountPercentage,omitempty"`
	Category           domain.ProductCategory `json:"category"`
	Group              string                 `json:"group"`
	Subcategory        string                 `json:"subcategory,omitempty"`
	Color              string                 `json:"color,omitempty"`
	Size               string                 `json:"size,omitempty"`
	LineTotal          decimal.Decimal        `json:"lineTotal"`
}

// AccountPaymentResponse mirrors domain.AccountPayment.
type AccountPaymentResponse struct {
	ID     string          `json:"id"`
	Date   domain.Date     `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID              string                   `json:"id"`
	ClientID        string                   `json:"clientId"`
	ClientName      string                   `json:"clientName"`
	CreatedAt       domain.Date              `json:"createdAt"`
	TotalAmount     decimal.Decimal          `json:"totalAmount"`
	TotalPaid       decimal.Decimal          `json:"totalPaid"`
	RemainingAmount decimal.Decimal          `json:"remainingAmount"`
	TotalProducts   int                      `json:"totalProducts"`
	Status          domain.AccountStatus     `json:"status"`
	LastPaymentDate *domain.Date             `json:"lastPaymentDate,omitempty"`
	NextPaymentDate *domain.Date             `json:"nextPaymentDate,omitempty"`
	BiweeklyAmount  *decimal.Decimal         `json:"biweeklyAmount,omitempty"`
	SuggestedAmount decimal.Decimal          `json:"suggestedAmount"`
	Items           []AccountItemResponse    `json:"items"`
	Payments        []AccountPaymentResponse `json:"payments"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	items := make([]AccountItemResponse, len(a.Items))
	for i, item := range a.Items {
		items[i] = AccountItemResponse{
			ID:                 item.ItemID,
			ProductID:          item.ProductID,
			SKU:                item.SKU,
			Name:               item.Name,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			OriginalPrice:      item.OriginalPrice,
			DiscountPercentage: item.DiscountPercentage,
			Category:           item.Category,
			Group:              item.Group,
			Subcategory:        item.Subcategory,
			Color:              item.Color,
			Size:               item.Size,
			LineTotal:          item.LineTotal(),
		}
	}

	payments := make([]AccountPaymentResponse, len(a.Payments))
	for i, p := range a.Payments {
		payments[i] = AccountPaymentResponse{ID: p.PaymentID, Date: p.Date, Amount: p.Amount}
	}

	return AccountResponse{
		ID:              a.AccountID,
		ClientID:        a.ClientID,
		ClientName:      a.ClientName,
		CreatedAt:       a.OpenedOn,
		TotalAmount:     a.TotalAmount,
		TotalPaid:       a.TotalPaid,
		RemainingAmount: a.RemainingAmount,
		TotalProducts:   a.TotalProducts,
		Status:          a.Status,
		LastPaymentDate: a.LastPaymentDate,
		NextPaymentDate: a.NextPaymentDate,
		BiweeklyAmount:  a.BiweeklyAmount,
		SuggestedAmount: a.SuggestedPaymentAmount(),
		Items:           items,
		Payments:        payments,
	}
}

// ListAccountsResponse wraps a page of accounts with the cursor for the next
// page, empty when the listing is exhausted.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToListAccountsResponse converts a page of accounts.
func ToListAccountsResponse(accounts []domain.Account, nextToken string) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountResponse(&a)
	}
	return ListAccountsResponse{Accounts: res, NextToken: nextToken}
}
