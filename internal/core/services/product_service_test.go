package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/delci/zapatos-api/internal/apperrors"
	"github.com/delci/zapatos-api/internal/core/domain"
	"github.com/delci/zapatos-api/internal/core/services"
	"github.com/delci/zapatos-api/internal/dto"
)

// --- Test Suite Setup ---

type ProductServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProductRepository
	service  *services.ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockRepo)
}

func validShoeRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        "Sandalia verano",
		Category:    domain.CategoryShoes,
		Price:       decimal.NewFromInt(25000),
		Group:       domain.GroupSandalias,
		Subcategory: "Sandalias bajas",
		Color:       "Negro",
		Sizes: []dto.SizeVariantRequest{
			{Size: "37", Stock: 1},
			{Size: "38", Stock: 2},
		},
	}
}

func validBagRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        "Bolso clásico",
		Category:    domain.CategoryBags,
		Price:       decimal.NewFromInt(18000),
		Group:       domain.GroupBolsosManoHombro,
		Subcategory: "Bolso",
		Stock:       4,
	}
}

// --- Test Cases ---

func (suite *ProductServiceTestSuite) TestCreateProduct_Shoe() {
	ctx := context.Background()
	req := validShoeRequest()

	suite.mockRepo.On("LoadProducts", ctx).Return([]domain.Product{}, nil).Once()
	suite.mockRepo.On("ReplaceProducts", ctx, mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 1
	})).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(product)
	suite.NotEmpty(product.ProductID)
	suite.Equal(domain.CategoryShoes, product.Category)
	suite.Equal(domain.ProductActive, product.Status)
	suite.Len(product.Sizes, 2)
	suite.Equal(3, product.TotalStock())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_BagWithOffer() {
	ctx := context.Background()
	start := domain.Today()
	req := validBagRequest()
	req.DiscountPercentage = 20
	req.OfferDurationDays = 7
	req.OfferStartDate = &start

	suite.mockRepo.On("LoadProducts", ctx).Return([]domain.Product{}, nil).Once()
	suite.mockRepo.On("ReplaceProducts", ctx, mock.Anything).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryBags, product.Category)
	suite.Equal(4, product.Stock)
	suite.True(product.Offer.IsConfigured())
	suite.Equal(float64(20), product.DiscountPercentage)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_ShoeWithoutColor() {
	ctx := context.Background()
	req := validShoeRequest()
	req.Color = ""

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "ReplaceProducts", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_ShoeWithoutSizes() {
	ctx := context.Background()
	req := validShoeRequest()
	req.Sizes = nil

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateSize() {
	ctx := context.Background()
	req := validShoeRequest()
	req.Sizes = []dto.SizeVariantRequest{
		{Size: "38", Stock: 1},
		{Size: "38", Stock: 2},
	}

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_IllegalGroup() {
	ctx := context.Background()
	req := validBagRequest()
	req.Group = domain.GroupSandalias // shoe group on a bag

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_IllegalSubcategory() {
	ctx := context.Background()
	req := validShoeRequest()
	req.Subcategory = "Bolso"

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestGetProductByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("LoadProducts", ctx).Return([]domain.Product{}, nil).Once()

	product, err := suite.service.GetProductByID(ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestListProducts_Filters() {
	ctx := context.Background()
	products := []domain.Product{
		{
			ProductID: "p1", Name: "Sandalia verano", SKU: "SAN-01",
			Category: domain.CategoryShoes, Group: domain.GroupSandalias,
			Sizes: []domain.ShoeSizeVariant{{Size: "38", Stock: 2}, {Size: "39", Stock: 0}},
		},
		{
			ProductID: "p2", Name: "Bolso clásico", SKU: "BOL-01",
			Category: domain.CategoryBags, Group: domain.GroupBolsosManoHombro,
			Status: domain.ProductInactive, Stock: 4,
		},
	}

	suite.mockRepo.On("LoadProducts", ctx).Return(products, nil).Times(5)

	byQuery, err := suite.service.ListProducts(ctx, dto.ListProductsParams{Query: "sandalia"})
	suite.Require().NoError(err)
	suite.Require().Len(byQuery, 1)
	suite.Equal("p1", byQuery[0].ProductID)

	byCategory, err := suite.service.ListProducts(ctx, dto.ListProductsParams{Category: "bolsos"})
	suite.Require().NoError(err)
	suite.Require().Len(byCategory, 1)
	suite.Equal("p2", byCategory[0].ProductID)

	// Missing status counts as active.
	byStatus, err := suite.service.ListProducts(ctx, dto.ListProductsParams{Status: "active"})
	suite.Require().NoError(err)
	suite.Require().Len(byStatus, 1)
	suite.Equal("p1", byStatus[0].ProductID)

	// The size filter only matches variants with stock.
	bySize, err := suite.service.ListProducts(ctx, dto.ListProductsParams{ShoeSize: "38"})
	suite.Require().NoError(err)
	suite.Len(bySize, 1)

	noStock, err := suite.service.ListProducts(ctx, dto.ListProductsParams{ShoeSize: "39"})
	suite.Require().NoError(err)
	suite.Empty(noStock)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_ReplacesFields() {
	ctx := context.Background()
	existing := domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Sandalia verano",
		Category:  domain.CategoryShoes,
		Price:     decimal.NewFromInt(25000),
		Group:     domain.GroupSandalias,
		Color:     "Negro",
		Sizes:     []domain.ShoeSizeVariant{{Size: "38", Stock: 2}},
	}
	req := validShoeRequest()
	req.Price = decimal.NewFromInt(27000)

	suite.mockRepo.On("LoadProducts", ctx).Return([]domain.Product{existing}, nil).Once()
	suite.mockRepo.On("ReplaceProducts", ctx, mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 1 && products[0].ProductID == existing.ProductID
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, existing.ProductID, req)

	suite.Require().NoError(err)
	suite.Equal(existing.ProductID, product.ProductID)
	suite.True(decimal.NewFromInt(27000).Equal(product.Price))
	suite.Len(product.Sizes, 2)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("LoadProducts", ctx).Return([]domain.Product{}, nil).Once()

	product, err := suite.service.UpdateProduct(ctx, uuid.NewString(), validShoeRequest())

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_Success() {
	ctx := context.Background()
	existing := domain.Product{ProductID: uuid.NewString(), Name: "Bolso clásico", Category: domain.CategoryBags}

	suite.mockRepo.On("LoadProducts", ctx).Return([]domain.Product{existing}, nil).Once()
	suite.mockRepo.On("ReplaceProducts", ctx, mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 0
	})).Return(nil).Once()

	err := suite.service.DeleteProduct(ctx, existing.ProductID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("LoadProducts", ctx).Return([]domain.Product{}, nil).Once()

	err := suite.service.DeleteProduct(ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
