package repository

import (
	"context"

	"diversity-shop/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*model.Category, error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepoImpl{
		db: db,
	}
}

func (r *categoryRepoImpl) List(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).
		Order("name").
		Find(&categories).Error

	if err != nil {
		return nil, err
	}

	return categories, nil
}
