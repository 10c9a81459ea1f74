package service

import (
	"context"
	"errors"
	"fmt"

	"diversity-shop/internal/model"
	"diversity-shop/internal/repository"

	"gorm.io/gorm"
)

// CatalogService is the read-only browse surface; the cart and checkout
// workflow only ever reaches the catalog through AddItem's price lookup.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	BrowseCategory(ctx context.Context, category string) ([]*model.Product, error)
	GetProduct(ctx context.Context, name string) (*model.Product, error)
}

type catalogServiceImpl struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CatalogService {
	return &catalogServiceImpl{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) BrowseCategory(ctx context.Context, category string) ([]*model.Product, error) {
	return s.productRepo.ListByCategory(ctx, category)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, name string) (*model.Product, error) {
	product, err := s.productRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("look up product by name: %w", err)
	}

	return product, nil
}
