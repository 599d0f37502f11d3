// Package pricing resolves time-bounded percentage discounts into effective
// prices. It is pure: callers supply the reference date, nothing here reads
// the clock.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/delci/zapatos-api/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// Quote is the result of resolving an offer against a base price.
type Quote struct {
	EffectivePrice     decimal.Decimal
	HasDiscount        bool
	DiscountPercentage float64
}

// IsOfferActive reports whether the offer applies on the given date.
// The window is [start, start+duration): the offer is still active on its
// last valid day and inactive the day the window ends. An offer missing any
// of its three fields, or with a non-positive percentage or duration, is
// never active.
func IsOfferActive(offer domain.Offer, today domain.Date) bool {
	if !offer.IsConfigured() {
		return false
	}
	return today.Before(offer.EndDate())
}

// EffectivePrice applies the offer to a base price. When the offer is
// inactive the quote is the base price unchanged. When active, the price is
// basePrice × (1 − pct/100) rounded half-up to the whole colón.
//
// Percentages above 100 are not clamped here; the API boundary rejects them
// before an offer like that can be stored.
func EffectivePrice(basePrice decimal.Decimal, offer domain.Offer, today domain.Date) Quote {
	if !IsOfferActive(offer, today) {
		return Quote{EffectivePrice: basePrice}
	}
	pct := decimal.NewFromFloat(offer.DiscountPercentage)
	discounted := basePrice.Mul(hundred.Sub(pct)).Div(hundred).Round(0)
	return Quote{
		EffectivePrice:     discounted,
		HasDiscount:        true,
		DiscountPercentage: offer.DiscountPercentage,
	}
}

// RemainingOfferDays returns how many days the offer has left, or nil when
// it is not active. On the offer's start date this equals the full duration.
func RemainingOfferDays(offer domain.Offer, today domain.Date) *int {
	if !IsOfferActive(offer, today) {
		return nil
	}
	days := today.DaysUntil(offer.EndDate())
	if days < 0 {
		days = 0
	}
	return &days
}

// VariantQuote resolves the price of one shoe size variant. Shoe products
// have no product-level offer; each size carries its own descriptor against
// the product's base price.
func VariantQuote(product domain.Product, variant domain.ShoeSizeVariant, today domain.Date) Quote {
	return EffectivePrice(product.Price, variant.Offer, today)
}

// ProductQuote resolves a bag product's price from its product-level offer.
// For shoes it returns the undiscounted base price; use VariantQuote with a
// concrete size instead.
func ProductQuote(product domain.Product, today domain.Date) Quote {
	if product.Category == domain.CategoryShoes {
		return Quote{EffectivePrice: product.Price}
	}
	return EffectivePrice(product.Price, product.Offer, today)
}

// ProductHasActiveOffer reports whether any discount applies anywhere on the
// product: the product-level offer for bags, any size variant's offer for
// shoes.
func ProductHasActiveOffer(product domain.Product, today domain.Date) bool {
	if product.Category == domain.CategoryShoes {
		for _, v := range product.Sizes {
			if IsOfferActive(v.Offer, today) {
				return true
			}
		}
		return false
	}
	return IsOfferActive(product.Offer, today)
}
