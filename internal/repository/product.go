package repository

import (
	"context"

	"diversity-shop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	categories := []model.Category{
		{ID: 1, Name: "Hoodies"},
		{ID: 2, Name: "Shirts"},
		{ID: 3, Name: "Hats"},
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
		return err
	}

	products := []model.Product{
		{ID: 1, Name: "Rainbow Hoodie", Description: "Heavyweight fleece hoodie", PriceCents: 5500, Currency: "CAD", CategoryID: 1},
		{ID: 2, Name: "Pride Tee", Description: "Organic cotton tee", PriceCents: 2500, Currency: "CAD", CategoryID: 2},
		{ID: 3, Name: "Unity Tee", Description: "Relaxed fit tee", PriceCents: 2200, Currency: "CAD", CategoryID: 2},
		{ID: 4, Name: "Classic Cap", Description: "Adjustable cotton cap", PriceCents: 1800, Currency: "CAD", CategoryID: 3},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) ListByCategory(ctx context.Context, category string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ?", category).
		Order("products.name").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
