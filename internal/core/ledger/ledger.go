// Package ledger maintains the derived totals and lifecycle status of credit
// accounts. Every function takes an account value and returns a new one;
// totals and status are always recomputed from the full item and payment
// lists rather than adjusted incrementally, so a stored account can never
// drift from its lines.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/delci/zapatos-api/internal/apperrors"
	"github.com/delci/zapatos-api/internal/core/domain"
)

// DueIntervalDays is the biweekly installment step: each payment pushes the
// next due date this many days past the payment date.
const DueIntervalDays = 15

// ComputeTotals sums the line totals and unit counts of the given items.
func ComputeTotals(items []domain.AccountItem) (totalAmount decimal.Decimal, totalProducts int) {
	totalAmount = decimal.Zero
	for _, item := range items {
		totalAmount = totalAmount.Add(item.LineTotal())
		totalProducts += item.Quantity
	}
	return totalAmount, totalProducts
}

// DeriveStatus implements the status rule: paid when nothing remains,
// overdue when a due date exists and has passed, active otherwise.
func DeriveStatus(remaining decimal.Decimal, nextPaymentDate *domain.Date, today domain.Date) domain.AccountStatus {
	if remaining.LessThanOrEqual(decimal.Zero) {
		return domain.AccountPaid
	}
	if nextPaymentDate != nil && nextPaymentDate.Before(today) {
		return domain.AccountOverdue
	}
	return domain.AccountActive
}

// AddItem appends the item to the account, or merges it into an existing
// line when it matches one (same product and size for shoes, same product
// for bags), then recomputes totals and status.
//
// When the merge leaves a positive balance and the account has no due date
// (it was fully paid, or brand new), the due date defaults to today, which
// makes a reopened account show up immediately in the payment alerts.
func AddItem(account domain.Account, item domain.AccountItem, today domain.Date) domain.Account {
	items := make([]domain.AccountItem, len(account.Items))
	copy(items, account.Items)

	merged := false
	for i, existing := range items {
		if !sameLine(existing, item) {
			continue
		}
		items[i].Quantity += item.Quantity
		merged = true
		break
	}
	if !merged {
		items = append(items, item)
	}

	account.Items = items
	return recompute(account, today, account.NextPaymentDate)
}

// RemoveItem removes the line item with the given ID and recomputes totals
// and status. Removing an unknown item returns the account unchanged along
// with apperrors.ErrUnknownItem.
//
// If the removal brings the total at or below what was already paid, the due
// date is cleared.
func RemoveItem(account domain.Account, itemID string, today domain.Date) (domain.Account, error) {
	items := make([]domain.AccountItem, 0, len(account.Items))
	found := false
	for _, item := range account.Items {
		if item.ItemID == itemID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return account, apperrors.ErrUnknownItem
	}

	account.Items = items
	// Keep the existing due date only while a balance remains; recompute
	// clears it otherwise. No new default is assigned on removal.
	next := account.NextPaymentDate
	out := recomputeKeepingDate(account, today, next)
	return out, nil
}

// RegisterPayment validates and applies one payment: the amount is added to
// totalPaid, the remaining balance is clamped at zero, the next due date
// rolls forward DueIntervalDays from the payment date (or is cleared when
// the account is settled), and the status is re-derived.
//
// A non-positive amount returns apperrors.ErrInvalidAmount and a zero date
// returns apperrors.ErrInvalidDate; in both cases the account is returned
// unchanged.
func RegisterPayment(account domain.Account, payment domain.AccountPayment, today domain.Date) (domain.Account, error) {
	if !payment.Amount.IsPositive() {
		return account, apperrors.ErrInvalidAmount
	}
	if payment.Date.IsZero() {
		return account, apperrors.ErrInvalidDate
	}

	payments := make([]domain.AccountPayment, len(account.Payments), len(account.Payments)+1)
	copy(payments, account.Payments)
	account.Payments = append(payments, payment)

	account.TotalPaid = account.TotalPaid.Add(payment.Amount)
	account.RemainingAmount = clampZero(account.TotalAmount.Sub(account.TotalPaid))

	paymentDate := payment.Date
	account.LastPaymentDate = &paymentDate

	if account.RemainingAmount.IsPositive() {
		next := payment.Date.AddDays(DueIntervalDays)
		account.NextPaymentDate = &next
	} else {
		account.NextPaymentDate = nil
	}

	account.Status = DeriveStatus(account.RemainingAmount, account.NextPaymentDate, today)
	return account, nil
}

// recompute rebuilds every derived field from the item list. While a balance
// remains, the due date is the existing one or defaults to today; once
// settled it is cleared.
func recompute(account domain.Account, today domain.Date, existingNext *domain.Date) domain.Account {
	account = recomputeTotals(account)

	if account.RemainingAmount.IsPositive() {
		if existingNext == nil {
			d := today
			existingNext = &d
		}
		account.NextPaymentDate = existingNext
	} else {
		account.NextPaymentDate = nil
	}

	account.Status = DeriveStatus(account.RemainingAmount, account.NextPaymentDate, today)
	return account
}

// recomputeKeepingDate is recompute without the today-default: the existing
// due date survives only while a balance remains.
func recomputeKeepingDate(account domain.Account, today domain.Date, existingNext *domain.Date) domain.Account {
	account = recomputeTotals(account)

	if account.RemainingAmount.IsPositive() {
		account.NextPaymentDate = existingNext
	} else {
		account.NextPaymentDate = nil
	}

	account.Status = DeriveStatus(account.RemainingAmount, account.NextPaymentDate, today)
	return account
}

func recomputeTotals(account domain.Account) domain.Account {
	account.TotalAmount, account.TotalProducts = ComputeTotals(account.Items)
	account.RemainingAmount = clampZero(account.TotalAmount.Sub(account.TotalPaid))
	return account
}

// sameLine reports whether two items belong to the same account line:
// shoes match on product and size, bags on product alone.
func sameLine(a, b domain.AccountItem) bool {
	if a.Category != b.Category || a.ProductID == "" || a.ProductID != b.ProductID {
		return false
	}
	if a.Category == domain.CategoryShoes {
		return a.Size == b.Size
	}
	return true
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
