package repository

import (
	"context"

	"diversity-shop/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateDetails(ctx context.Context, tx *gorm.DB, details []*model.OrderDetail) error
	FindByIDAndUser(ctx context.Context, orderID uint, userID string) (*model.Order, error)
	GetDetails(ctx context.Context, orderID uint) ([]*model.OrderDetail, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateDetails(ctx context.Context, tx *gorm.DB, details []*model.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}

	return tx.WithContext(ctx).Create(&details).Error
}

func (r *orderRepoImpl) FindByIDAndUser(ctx context.Context, orderID uint, userID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) GetDetails(ctx context.Context, orderID uint) ([]*model.OrderDetail, error) {
	var details []*model.OrderDetail
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&details).Error

	if err != nil {
		return nil, err
	}

	return details, nil
}
