package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delci/zapatos-api/internal/core/domain"
)

func datePtr(d domain.Date) *domain.Date { return &d }

func TestIsOfferActive(t *testing.T) {
	today := domain.NewDate(2024, time.January, 10)

	tests := []struct {
		name   string
		offer  domain.Offer
		expect bool
	}{
		{
			name:   "zero percentage is never active",
			offer:  domain.Offer{DiscountPercentage: 0, OfferDurationDays: 7, OfferStartDate: datePtr(today)},
			expect: false,
		},
		{
			name:   "missing start date is never active",
			offer:  domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7},
			expect: false,
		},
		{
			name:   "zero duration is never active",
			offer:  domain.Offer{DiscountPercentage: 20, OfferDurationDays: 0, OfferStartDate: datePtr(today)},
			expect: false,
		},
		{
			name:   "active on the start date",
			offer:  domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today)},
			expect: true,
		},
		{
			name:   "active on the last day of the window",
			offer:  domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today.AddDays(-6))},
			expect: true,
		},
		{
			name:   "inactive the day the window ends",
			offer:  domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today.AddDays(-7))},
			expect: false,
		},
		{
			name:   "single day offer is only active on its start date",
			offer:  domain.Offer{DiscountPercentage: 20, OfferDurationDays: 1, OfferStartDate: datePtr(today.AddDays(-1))},
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsOfferActive(tt.offer, today))
		})
	}
}

func TestEffectivePrice(t *testing.T) {
	today := domain.NewDate(2024, time.January, 10)
	base := decimal.NewFromInt(1000)

	t.Run("active offer applies the percentage and rounds to whole colones", func(t *testing.T) {
		offer := domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today)}

		quote := EffectivePrice(base, offer, today)

		assert.True(t, quote.HasDiscount)
		assert.Equal(t, float64(20), quote.DiscountPercentage)
		assert.True(t, decimal.NewFromInt(800).Equal(quote.EffectivePrice), "got %s", quote.EffectivePrice)
	})

	t.Run("inactive offer returns the base price unchanged", func(t *testing.T) {
		offer := domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today.AddDays(-7))}

		quote := EffectivePrice(base, offer, today)

		assert.False(t, quote.HasDiscount)
		assert.True(t, base.Equal(quote.EffectivePrice))
	})

	t.Run("unconfigured offer returns the base price unchanged", func(t *testing.T) {
		quote := EffectivePrice(base, domain.Offer{}, today)

		assert.False(t, quote.HasDiscount)
		assert.True(t, base.Equal(quote.EffectivePrice))
	})

	t.Run("half values round up", func(t *testing.T) {
		offer := domain.Offer{DiscountPercentage: 25, OfferDurationDays: 3, OfferStartDate: datePtr(today)}

		// 150 * 0.75 = 112.5 -> 113
		quote := EffectivePrice(decimal.NewFromInt(150), offer, today)

		assert.True(t, decimal.NewFromInt(113).Equal(quote.EffectivePrice), "got %s", quote.EffectivePrice)
	})

	t.Run("fractional results round to the nearest colon", func(t *testing.T) {
		offer := domain.Offer{DiscountPercentage: 15, OfferDurationDays: 3, OfferStartDate: datePtr(today)}

		// 999 * 0.85 = 849.15 -> 849
		quote := EffectivePrice(decimal.NewFromInt(999), offer, today)

		assert.True(t, decimal.NewFromInt(849).Equal(quote.EffectivePrice), "got %s", quote.EffectivePrice)
	})
}

func TestRemainingOfferDays(t *testing.T) {
	today := domain.NewDate(2024, time.January, 10)

	t.Run("equals the full duration on the start date", func(t *testing.T) {
		offer := domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today)}

		days := RemainingOfferDays(offer, today)

		require.NotNil(t, days)
		assert.Equal(t, 7, *days)
	})

	t.Run("counts down to one on the last day", func(t *testing.T) {
		offer := domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today.AddDays(-6))}

		days := RemainingOfferDays(offer, today)

		require.NotNil(t, days)
		assert.Equal(t, 1, *days)
	})

	t.Run("nil when the offer is inactive", func(t *testing.T) {
		offer := domain.Offer{DiscountPercentage: 20, OfferDurationDays: 7, OfferStartDate: datePtr(today.AddDays(-7))}

		assert.Nil(t, RemainingOfferDays(offer, today))
	})

	t.Run("nil when the offer is unconfigured", func(t *testing.T) {
		assert.Nil(t, RemainingOfferDays(domain.Offer{}, today))
	})
}

func TestVariantQuote(t *testing.T) {
	today := domain.NewDate(2024, time.January, 10)
	product := domain.Product{
		Category: domain.CategoryShoes,
		Price:    decimal.NewFromInt(25000),
	}

	t.Run("variant offer discounts the product base price", func(t *testing.T) {
		variant := domain.ShoeSizeVariant{
			Size:  "38",
			Stock: 3,
			Offer: domain.Offer{DiscountPercentage: 10, OfferDurationDays: 5, OfferStartDate: datePtr(today)},
		}

		quote := VariantQuote(product, variant, today)

		assert.True(t, quote.HasDiscount)
		assert.True(t, decimal.NewFromInt(22500).Equal(quote.EffectivePrice), "got %s", quote.EffectivePrice)
	})

	t.Run("variant without an offer keeps the base price", func(t *testing.T) {
		variant := domain.ShoeSizeVariant{Size: "39", Stock: 1}

		quote := VariantQuote(product, variant, today)

		assert.False(t, quote.HasDiscount)
		assert.True(t, product.Price.Equal(quote.EffectivePrice))
	})
}

func TestProductQuote(t *testing.T) {
	today := domain.NewDate(2024, time.January, 10)

	t.Run("bag offer applies at the product level", func(t *testing.T) {
		bag := domain.Product{
			Category: domain.CategoryBags,
			Price:    decimal.NewFromInt(18000),
			Offer:    domain.Offer{DiscountPercentage: 50, OfferDurationDays: 2, OfferStartDate: datePtr(today)},
		}

		quote := ProductQuote(bag, today)

		assert.True(t, quote.HasDiscount)
		assert.True(t, decimal.NewFromInt(9000).Equal(quote.EffectivePrice), "got %s", quote.EffectivePrice)
	})

	t.Run("shoes never discount at the product level", func(t *testing.T) {
		shoe := domain.Product{
			Category: domain.CategoryShoes,
			Price:    decimal.NewFromInt(25000),
			Offer:    domain.Offer{DiscountPercentage: 50, OfferDurationDays: 2, OfferStartDate: datePtr(today)},
		}

		quote := ProductQuote(shoe, today)

		assert.False(t, quote.HasDiscount)
		assert.True(t, shoe.Price.Equal(quote.EffectivePrice))
	})
}

func TestProductHasActiveOffer(t *testing.T) {
	today := domain.NewDate(2024, time.January, 10)

	t.Run("shoe with one discounted size has an active offer", func(t *testing.T) {
		shoe := domain.Product{
			Category: domain.CategoryShoes,
			Price:    decimal.NewFromInt(25000),
			Sizes: []domain.ShoeSizeVariant{
				{Size: "37", Stock: 1},
				{Size: "38", Stock: 2, Offer: domain.Offer{DiscountPercentage: 10, OfferDurationDays: 5, OfferStartDate: datePtr(today)}},
			},
		}

		assert.True(t, ProductHasActiveOffer(shoe, today))
	})

	t.Run("shoe with only expired size offers has none", func(t *testing.T) {
		shoe := domain.Product{
			Category: domain.CategoryShoes,
			Price:    decimal.NewFromInt(25000),
			Sizes: []domain.ShoeSizeVariant{
				{Size: "38", Stock: 2, Offer: domain.Offer{DiscountPercentage: 10, OfferDurationDays: 5, OfferStartDate: datePtr(today.AddDays(-5))}},
			},
		}

		assert.False(t, ProductHasActiveOffer(shoe, today))
	})

	t.Run("bag uses the product level offer", func(t *testing.T) {
		bag := domain.Product{
			Category: domain.CategoryBags,
			Price:    decimal.NewFromInt(18000),
			Offer:    domain.Offer{DiscountPercentage: 15, OfferDurationDays: 3, OfferStartDate: datePtr(today)},
		}

		assert.True(t, ProductHasActiveOffer(bag, today))
	})
}
