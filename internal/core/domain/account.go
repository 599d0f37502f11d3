package domain

import (
	"github.com/shopspring/decimal"
)

// AccountStatus is the three-valued lifecycle status of a credit account.
// It is always derived from the balance and the next due date, never stored
// authoritatively on its own.
type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountPaid    AccountStatus = "paid"
	AccountOverdue AccountStatus = "overdue"
)

// AccountItem is one line of an account: a quantity of a product (and, for
// shoes, a specific size) at the effective price that applied when it was
// added. OriginalPrice and DiscountPercentage are only present when a
// discount applied at that moment.
type AccountItem struct {
	ItemID    string `json:"id"`
	ProductID string `json:"productId,omitempty"`
	SKU       string `json:"sku,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`

	UnitPrice          decimal.Decimal  `json:"unitPrice"` // effective, already-discounted
	OriginalPrice      *decimal.Decimal `json:"originalPrice,omitempty"`
	DiscountPercentage float64          `json:"discountPercentage,omitempty"`

	Category    ProductCategory `json:"category"`
	Group       string          `json:"group"`
	Subcategory string          `json:"subcategory,omitempty"`
	Color       string          `json:"color,omitempty"` // shoes
	Size        string          `json:"size,omitempty"`  // shoes
}

// LineTotal is quantity × unit price.
func (i AccountItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AccountPayment is a single installment received against an account.
type AccountPayment struct {
	PaymentID string          `json:"id"`
	Date      Date            `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
}

// Account is a customer credit account. The totals, remaining balance and
// status are derived fields, recomputed from the items and payments on every
// mutation (see the ledger package).
type Account struct {
	AccountID  string `json:"id"`
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"` // denormalized for display
	OpenedOn   Date   `json:"openedOn"`   // civil date; audit CreatedAt keeps the instant

	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	TotalProducts   int             `json:"totalProducts"`
	Status          AccountStatus   `json:"status"`

	LastPaymentDate *Date            `json:"lastPaymentDate,omitempty"`
	NextPaymentDate *Date            `json:"nextPaymentDate,omitempty"`
	BiweeklyAmount  *decimal.Decimal `json:"biweeklyAmount,omitempty"` // suggested installment

	Items    []AccountItem    `json:"items,omitempty"`
	Payments []AccountPayment `json:"payments,omitempty"`

	AuditFields
}

// SuggestedPaymentAmount is the installment to propose next: the biweekly
// amount capped at the remaining balance, or the whole balance when no
// biweekly amount is set.
func (a Account) SuggestedPaymentAmount() decimal.Decimal {
	if a.BiweeklyAmount == nil {
		return a.RemainingAmount
	}
	return decimal.Min(*a.BiweeklyAmount, a.RemainingAmount)
}
