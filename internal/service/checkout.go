package service

import (
	"context"
	"fmt"
	"time"

	"diversity-shop/internal/client"
	"diversity-shop/internal/dto"
	"diversity-shop/internal/model"
	"diversity-shop/internal/repository"

	"gorm.io/gorm"
)

const chargeDescription = "Diversity Clothing Purchase"

// PendingOrder is an assembled but not-yet-persisted order together with the
// cart snapshot it was priced from. It lives in the session between the
// checkout form and payment completion; nothing here touches durable storage
// until the payment succeeds.
type PendingOrder struct {
	Order model.Order      `json:"order"`
	Items []model.CartItem `json:"items"`
}

type CheckoutService interface {
	// BuildPendingOrder totals the owner's cart from its snapshotted unit
	// prices and assembles an unpersisted order.
	BuildPendingOrder(ctx context.Context, ownerKey model.OwnerKey, shipping dto.ShippingDetails) (*PendingOrder, error)
	// Authorize charges the gateway for the pending order's total and
	// returns the charge reference. It performs no persistence; the caller
	// must record the reference before finalizing so a finalize failure
	// can be retried without charging the shopper again.
	Authorize(ctx context.Context, pending *PendingOrder, payerToken, payerEmail string) (string, error)
	// Finalize persists the order and its details and clears the charged
	// cart rows as one transaction. Retryable: on failure nothing is
	// committed.
	Finalize(ctx context.Context, pending *PendingOrder, chargeRef string) (*model.Order, error)
	GetConfirmation(ctx context.Context, orderID uint, userID string) (*model.Order, error)
}

type checkoutServiceImpl struct {
	db        *gorm.DB
	gateway   client.PaymentGateway
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	currency  string
}

func NewCheckoutService(
	db *gorm.DB,
	gateway client.PaymentGateway,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	currency string,
) CheckoutService {
	return &checkoutServiceImpl{
		db:        db,
		gateway:   gateway,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		currency:  currency,
	}
}

func (s *checkoutServiceImpl) BuildPendingOrder(ctx context.Context, ownerKey model.OwnerKey, shipping dto.ShippingDetails) (*PendingOrder, error) {
	items, err := s.cartRepo.ListByOwner(ctx, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var totalCents int64
	snapshot := make([]model.CartItem, len(items))
	for i, item := range items {
		totalCents += int64(item.Quantity) * item.UnitPriceCents
		snapshot[i] = *item
	}

	order := model.Order{
		UserID:     ownerKey.String(),
		FirstName:  shipping.FirstName,
		LastName:   shipping.LastName,
		Address:    shipping.Address,
		City:       shipping.City,
		Province:   shipping.Province,
		PostalCode: shipping.PostalCode,
		Phone:      shipping.Phone,
		TotalCents: totalCents,
		Currency:   s.currency,
		OrderDate:  time.Now(),
	}

	return &PendingOrder{Order: order, Items: snapshot}, nil
}

func (s *checkoutServiceImpl) Authorize(ctx context.Context, pending *PendingOrder, payerToken, payerEmail string) (string, error) {
	// The gateway call runs strictly before the finalize transaction: a
	// gateway timeout or decline must never require compensating writes.
	chargeRef, err := s.gateway.Charge(ctx, client.ChargeRequest{
		PayerToken:  payerToken,
		PayerEmail:  payerEmail,
		AmountCents: pending.Order.TotalCents,
		Currency:    pending.Order.Currency,
		Description: chargeDescription,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	return chargeRef, nil
}

func (s *checkoutServiceImpl) Finalize(ctx context.Context, pending *PendingOrder, chargeRef string) (*model.Order, error) {
	order := pending.Order
	order.ID = 0
	order.ChargeRef = chargeRef

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, &order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		details := make([]*model.OrderDetail, len(pending.Items))
		itemIDs := make([]uint, len(pending.Items))
		for i, item := range pending.Items {
			details[i] = &model.OrderDetail{
				OrderID:        order.ID,
				ProductID:      item.ProductID,
				Quantity:       item.Quantity,
				UnitPriceCents: item.UnitPriceCents,
			}
			itemIDs[i] = item.ID
		}

		if err := s.orderRepo.CreateDetails(ctx, tx, details); err != nil {
			return fmt.Errorf("store order details: %w", err)
		}

		// Clear exactly the rows that were charged, not whatever the cart
		// holds now.
		if err := s.cartRepo.DeleteByIDs(ctx, tx, itemIDs); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *checkoutServiceImpl) GetConfirmation(ctx context.Context, orderID uint, userID string) (*model.Order, error) {
	return s.orderRepo.FindByIDAndUser(ctx, orderID, userID)
}
