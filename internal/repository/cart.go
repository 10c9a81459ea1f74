package repository

import (
	"context"

	"diversity-shop/internal/model"

	"gorm.io/gorm"
)

// CartRepository persists cart line items. Mutating methods take the *gorm.DB
// they should run on so the service layer can scope them to a transaction.
type CartRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *model.CartItem) error
	FindByID(ctx context.Context, id uint) (*model.CartItem, error)
	// FindByOwnerAndProduct returns every row for the pair ordered by id.
	// More than one row can exist after a cart migration.
	FindByOwnerAndProduct(ctx context.Context, tx *gorm.DB, ownerKey model.OwnerKey, productID uint) ([]*model.CartItem, error)
	ListByOwner(ctx context.Context, ownerKey model.OwnerKey) ([]*model.CartItem, error)
	// AddQuantity increments a row's quantity in place so concurrent adds
	// cannot lose updates.
	AddQuantity(ctx context.Context, tx *gorm.DB, id uint, quantity int32) error
	Delete(ctx context.Context, id uint) (int64, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
	// Rekey moves every row owned by from under the to key and reports how
	// many rows were moved.
	Rekey(ctx context.Context, tx *gorm.DB, from, to model.OwnerKey) (int64, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Create(ctx context.Context, tx *gorm.DB, item *model.CartItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *cartRepoImpl) FindByID(ctx context.Context, id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindByOwnerAndProduct(ctx context.Context, tx *gorm.DB, ownerKey model.OwnerKey, productID uint) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := tx.WithContext(ctx).
		Where("owner_key = ? AND product_id = ?", ownerKey, productID).
		Order("id").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) ListByOwner(ctx context.Context, ownerKey model.OwnerKey) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("owner_key = ?", ownerKey).
		Order("id").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) AddQuantity(ctx context.Context, tx *gorm.DB, id uint, quantity int32) error {
	result := tx.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *cartRepoImpl) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CartItem{})

	return result.RowsAffected, result.Error
}

func (r *cartRepoImpl) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	return tx.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) Rekey(ctx context.Context, tx *gorm.DB, from, to model.OwnerKey) (int64, error) {
	result := tx.WithContext(ctx).Model(&model.CartItem{}).
		Where("owner_key = ?", from).
		Update("owner_key", to)

	return result.RowsAffected, result.Error
}
