package dto

import (
	"github.com/shopspring/decimal"

	"github.com/delci/zapatos-api/internal/core/domain"
	"github.com/delci/zapatos-api/internal/core/pricing"
)

// OfferFields is the discount triple as it appears in requests. All three
// must be provided together for the offer to be configured; the resolver
// ignores partial triples. Percentages above 100 are rejected here so a
// negative effective price can never be stored.
type OfferFields struct {
	DiscountPercentage float64      `json:"discountPercentage" binding:"omitempty,gt=0,lte=100"`
	OfferDurationDays  int          `json:"offerDurationDays" binding:"omitempty,min=1"`
	OfferStartDate     *domain.Date `json:"offerStartDate"`
}

// ToOffer converts the request fields to the domain descriptor.
func (f OfferFields) ToOffer() domain.Offer {
	return domain.Offer{
		DiscountPercentage: f.DiscountPercentage,
		OfferDurationDays:  f.OfferDurationDays,
		OfferStartDate:     f.OfferStartDate,
	}
}

// SizeVariantRequest is one shoe size row in a product create/update.
type SizeVariantRequest struct {
	Size  string `json:"size" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
	OfferFields
}

// CreateProductRequest defines the data needed to create a product.
// Shoes require color and at least one size variant; bags a stock count.
// The group/subcategory pair is checked against the closed enumeration in
// the service.
type CreateProductRequest struct {
	SKU         string                 `json:"sku"`
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Category    domain.ProductCategory `json:"category" binding:"required,oneof=zapatos bolsos"`
	Price       decimal.Decimal        `json:"price" binding:"required"`
	Cost        *decimal.Decimal       `json:"cost"`
	Group       string                 `json:"group" binding:"required"`
	Subcategory string                 `json:"subcategory"`
	Status      domain.ProductStatus   `json:"status" binding:"omitempty,oneof=active inactive"`

	Color string               `json:"color"`
	Sizes []SizeVariantRequest `json:"sizes" binding:"omitempty,dive"`

	Stock int `json:"stock" binding:"min=0"`

	OfferFields // bag-level offer; ignored for shoes
}

// UpdateProductRequest carries the full mutable state of a product; edits
// replace the product's fields wholesale, matching the edit form flow.
type UpdateProductRequest = CreateProductRequest

// ListProductsParams are the inventory table filters.
type ListProductsParams struct {
	Query       string `form:"q"`
	Category    string `form:"category" binding:"omitempty,oneof=zapatos bolsos"`
	Group       string `form:"group"`
	Subcategory string `form:"subcategory"`
	Status      string `form:"status" binding:"omitempty,oneof=active inactive"`
	ShoeSize    string `form:"size"`
}

// SizeVariantResponse is a size row with its lazily resolved price.
type SizeVariantResponse struct {
	Size               string          `json:"size"`
	Stock              int             `json:"stock"`
	DiscountPercentage float64         `json:"discountPercentage,omitempty"`
	OfferDurationDays  int             `json:"offerDurationDays,omitempty"`
	OfferStartDate     *domain.Date    `json:"offerStartDate,omitempty"`
	EffectivePrice     decimal.Decimal `json:"effectivePrice"`
	HasDiscount        bool            `json:"hasDiscount"`
	RemainingOfferDays *int            `json:"remainingOfferDays,omitempty"`
}

// ProductResponse defines the data returned for a product, with discount
// windows evaluated against the request date rather than stored flags.
type ProductResponse struct {
	ID                 string                 `json:"id"`
	SKU                string                 `json:"sku,omitempty"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description,omitempty"`
	Category           domain.ProductCategory `json:"category"`
	Price              decimal.Decimal        `json:"price"`
	Cost               *decimal.Decimal       `json:"cost,omitempty"`
	Group              string                 `json:"group"`
	Subcategory        string                 `json:"subcategory,omitempty"`
	Status             domain.ProductStatus   `json:"status"`
	Color              string                 `json:"color,omitempty"`
	Sizes              []SizeVariantResponse  `json:"sizes,omitempty"`
	Stock              int                    `json:"stock,omitempty"`
	TotalStock         int                    `json:"totalStock"`
	DiscountPercentage float64                `json:"discountPercentage,omitempty"`
	OfferDurationDays  int                    `json:"offerDurationDays,omitempty"`
	OfferStartDate     *domain.Date           `json:"offerStartDate,omitempty"`
	EffectivePrice     decimal.Decimal        `json:"effectivePrice"`
	HasDiscount        bool                   `json:"hasDiscount"`
	RemainingOfferDays *int                   `json:"remainingOfferDays,omitempty"`
	HasActiveOffer     bool                   `json:"hasActiveOffer"`
}

// ToProductResponse converts a product, resolving every offer against today.
func ToProductResponse(p *domain.Product, today domain.Date) ProductResponse {
	resp := ProductResponse{
		ID:                 p.ProductID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		Category:           p.Category,
		Price:              p.Price,
		Cost:               p.Cost,
		Group:              p.Group,
		Subcategory:        p.Subcategory,
		Status:             p.EffectiveStatus(),
		Color:              p.Color,
		Stock:              p.Stock,
		TotalStock:         p.TotalStock(),
		DiscountPercentage: p.DiscountPercentage,
		OfferDurationDays:  p.OfferDurationDays,
		OfferStartDate:     p.OfferStartDate,
		HasActiveOffer:     pricing.ProductHasActiveOffer(*p, today),
	}

	quote := pricing.ProductQuote(*p, today)
	resp.EffectivePrice = quote.EffectivePrice
	resp.HasDiscount = quote.HasDiscount
	resp.RemainingOfferDays = pricing.RemainingOfferDays(p.Offer, today)

	if p.Category == domain.CategoryShoes {
		resp.Sizes = make([]SizeVariantResponse, len(p.Sizes))
		for i, v := range p.Sizes {
			vq := pricing.VariantQuote(*p, v, today)
			resp.Sizes[i] = SizeVariantResponse{
				Size:               v.Size,
				Stock:              v.Stock,
				DiscountPercentage: v.DiscountPercentage,
				OfferDurationDays:  v.OfferDurationDays,
				OfferStartDate:     v.OfferStartDate,
				EffectivePrice:     vq.EffectivePrice,
				HasDiscount:        vq.HasDiscount,
				RemainingOfferDays: pricing.RemainingOfferDays(v.Offer, today),
			}
		}
	}

	return resp
}

// ToListProductResponse converts a slice of products to response DTOs.
func ToListProductResponse(products []domain.Product, today domain.Date) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i, p := range products {
		res[i] = ToProductResponse(&p, today)
	}
	return res
}
