package service

import (
	"context"
	"errors"
	"fmt"

	"diversity-shop/internal/model"
	"diversity-shop/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	// AddItem puts quantity units of a product into the owner's cart,
	// snapshotting the catalog price on first add and merging into the
	// existing line on repeat adds.
	AddItem(ctx context.Context, ownerKey model.OwnerKey, productID uint, quantity int32) (*model.CartItem, error)
	RemoveItem(ctx context.Context, cartItemID uint) error
	ListItems(ctx context.Context, ownerKey model.OwnerKey) ([]*model.CartItem, error)
	// Migrate re-keys an anonymous cart to the authenticated owner once,
	// after login. Safe to call on every checkout entry.
	Migrate(ctx context.Context, sess OwnerSession, identity model.Identity) error
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) AddItem(ctx context.Context, ownerKey model.OwnerKey, productID uint, quantity int32) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("look up product: %w", err)
	}

	var item *model.CartItem

	// Read-then-write runs in one transaction so a concurrent add to the
	// same line cannot be interleaved between the lookup and the update.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.cartRepo.FindByOwnerAndProduct(ctx, tx, ownerKey, productID)
		if err != nil {
			return fmt.Errorf("look up cart line: %w", err)
		}

		if len(existing) == 0 {
			item = &model.CartItem{
				OwnerKey:       ownerKey,
				ProductID:      productID,
				Quantity:       quantity,
				UnitPriceCents: product.PriceCents,
			}
			return s.cartRepo.Create(ctx, tx, item)
		}

		// A cart migration can leave more than one line for the same
		// product under one owner. Fold the extras into the earliest
		// line (keeping its price snapshot) before applying this add.
		item = existing[0]
		increment := quantity
		if len(existing) > 1 {
			staleIDs := make([]uint, 0, len(existing)-1)
			for _, dup := range existing[1:] {
				increment += dup.Quantity
				staleIDs = append(staleIDs, dup.ID)
			}
			if err := s.cartRepo.DeleteByIDs(ctx, tx, staleIDs); err != nil {
				return fmt.Errorf("consolidate duplicate cart lines: %w", err)
			}
		}

		if err := s.cartRepo.AddQuantity(ctx, tx, item.ID, increment); err != nil {
			return fmt.Errorf("increment cart line: %w", err)
		}
		item.Quantity += increment

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, cartItemID uint) error {
	deleted, err := s.cartRepo.Delete(ctx, cartItemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if deleted == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (s *cartServiceImpl) ListItems(ctx context.Context, ownerKey model.OwnerKey) ([]*model.CartItem, error) {
	return s.cartRepo.ListByOwner(ctx, ownerKey)
}

func (s *cartServiceImpl) Migrate(ctx context.Context, sess OwnerSession, identity model.Identity) error {
	if !identity.IsAuthenticated() {
		return fmt.Errorf("cart migration requires an authenticated identity")
	}

	userKey := identity.Key()

	stored, ok := sess.OwnerKey()
	if ok && stored == userKey {
		// Already migrated; nothing to do.
		return nil
	}

	if ok {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, err := s.cartRepo.Rekey(ctx, tx, stored, userKey)
			return err
		})
		if err != nil {
			// Session key deliberately not advanced: the next checkout
			// attempt retries the whole migration instead of leaving a
			// split-owner cart behind.
			return fmt.Errorf("re-key cart items: %w", err)
		}
	}

	sess.SetOwnerKey(userKey)
	return nil
}
