package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/policy"
	"shopapi/internal/repository"
	"shopapi/internal/storage"
)

// PageSize is the fixed number of items per collection page.
const PageSize = 15

// productImageDir is where product images land inside the upload store.
const productImageDir = "products"

// CreateProductInput is the validated payload for Create.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Image       *storage.Upload
}

// UpdateProductInput carries only the fields the client supplied; nil means
// "leave unchanged".
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *storage.Upload
}

// ProductService handles product use cases. Every mutating method takes the
// acting user's id explicitly; there is no implicit current user.
type ProductService interface {
	List(ctx context.Context, page int) ([]model.Product, int64, error)
	Create(ctx context.Context, userID uint, in CreateProductInput) (*model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Update(ctx context.Context, userID, id uint, in UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, userID, id uint) error
}

type productService struct {
	products repository.ProductRepository
	store    storage.Store
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, store storage.Store) ProductService {
	return &productService{products: products, store: store}
}

// List returns one page of products plus the total count.
func (s *productService) List(ctx context.Context, page int) ([]model.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	products, total, err := s.products.List(ctx, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// Create inserts a product owned by the acting user.
func (s *productService) Create(ctx context.Context, userID uint, in CreateProductInput) (*model.Product, error) {
	product := &model.Product{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}

	if in.Image != nil {
		path, err := s.store.Save(productImageDir, in.Image)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		product.ImagePath = &path
	}

	if err := s.products.Create(ctx, product); err != nil {
		if product.ImagePath != nil {
			_ = s.store.Remove(*product.ImagePath)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Get fetches a product by id. Reads carry no ownership restriction.
func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// Update applies the supplied fields to an existing product. Absent rows
// yield not-found before the ownership check runs.
func (s *productService) Update(ctx context.Context, userID, id uint, in UpdateProductInput) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyProduct(userID, product) {
		return nil, apperrors.ErrForbidden
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	var newImagePath *string
	if in.Image != nil {
		path, err := s.store.Save(productImageDir, in.Image)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		product.ImagePath = &path
		newImagePath = &path
	}

	if err := s.products.Update(ctx, product); err != nil {
		if newImagePath != nil {
			_ = s.store.Remove(*newImagePath)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// Delete removes a product owned by the acting user.
func (s *productService) Delete(ctx context.Context, userID, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModifyProduct(userID, product) {
		return apperrors.ErrForbidden
	}

	if err := s.products.Delete(ctx, product); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
