package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delci/zapatos-api/internal/apperrors"
	"github.com/delci/zapatos-api/internal/core/domain"
	portsrepo "github.com/delci/zapatos-api/internal/core/ports/repositories"
	"github.com/delci/zapatos-api/internal/dto"
	"github.com/delci/zapatos-api/internal/middleware"
)

// ProductService manages the inventory collection. Offer windows are never
// materialized; readers resolve them against the current date (see the
// pricing package and the product DTO converters).
type ProductService struct {
	repo portsrepo.ProductRepository
	mu   sync.Mutex
}

func NewProductService(repo portsrepo.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := productFromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		logger.Error("Failed to load products collection", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	product.ProductID = uuid.NewString()
	product.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	if err := s.repo.ReplaceProducts(ctx, append(products, product)); err != nil {
		logger.Error("Failed to save products collection", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("category", string(product.Category)))
	return &product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ProductID == productID {
			return &products[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// ListProducts applies the inventory table filters. The shoe-size filter
// only matches variants that still have stock, mirroring the picker the
// account flows use.
func (s *ProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(params.Query))
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ProductID), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		if params.Category != "" && string(p.Category) != params.Category {
			continue
		}
		if params.Group != "" && p.Group != params.Group {
			continue
		}
		if params.Subcategory != "" && p.Subcategory != params.Subcategory {
			continue
		}
		if params.Status != "" && string(p.EffectiveStatus()) != params.Status {
			continue
		}
		if params.ShoeSize != "" && !hasSizeInStock(p, params.ShoeSize) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// UpdateProduct replaces the product's mutable fields wholesale, the way the
// edit form submits them. ID and creation audit fields survive.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	updated, err := productFromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ProductID != productID {
			continue
		}
		updated.ProductID = productID
		updated.AuditFields = products[i].AuditFields
		updated.LastUpdatedAt = time.Now()
		products[i] = updated

		if err := s.repo.ReplaceProducts(ctx, products); err != nil {
			logger.Error("Failed to save products collection", slog.String("error", err.Error()), slog.String("product_id", productID))
			return nil, err
		}
		return &products[i], nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		return err
	}

	remaining := make([]domain.Product, 0, len(products))
	found := false
	for _, p := range products {
		if p.ProductID == productID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return apperrors.ErrNotFound
	}

	if err := s.repo.ReplaceProducts(ctx, remaining); err != nil {
		logger.Error("Failed to save products collection", slog.String("error", err.Error()), slog.String("product_id", productID))
		return err
	}
	logger.Info("Product deleted", slog.String("product_id", productID))
	return nil
}

// productFromRequest validates the category-specific shape and the closed
// group/subcategory enumeration, then builds the domain product.
func productFromRequest(req dto.CreateProductRequest) (domain.Product, error) {
	if err := domain.ValidateClassification(req.Category, req.Group, req.Subcategory); err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Group:       req.Group,
		Subcategory: req.Subcategory,
		Status:      req.Status,
	}
	if product.Status == "" {
		product.Status = domain.ProductActive
	}

	switch req.Category {
	case domain.CategoryShoes:
		if req.Color == "" {
			return domain.Product{}, fmt.Errorf("shoe products require a color")
		}
		if len(req.Sizes) == 0 {
			return domain.Product{}, fmt.Errorf("shoe products require at least one size variant")
		}
		seen := make(map[string]bool, len(req.Sizes))
		sizes := make([]domain.ShoeSizeVariant, len(req.Sizes))
		for i, v := range req.Sizes {
			if seen[v.Size] {
				return domain.Product{}, fmt.Errorf("duplicate size %q", v.Size)
			}
			seen[v.Size] = true
			sizes[i] = domain.ShoeSizeVariant{Size: v.Size, Stock: v.Stock, Offer: v.ToOffer()}
		}
		product.Color = req.Color
		product.Sizes = sizes
		// Shoes have no product-level offer; sizes carry their own.
	case domain.CategoryBags:
		product.Stock = req.Stock
		product.Offer = req.ToOffer()
	}

	return product, nil
}

func hasSizeInStock(p domain.Product, size string) bool {
	if p.Category != domain.CategoryShoes {
		return false
	}
	for _, v := range p.Sizes {
		if v.Size == size && v.Stock > 0 {
			return true
		}
	}
	return false
}
