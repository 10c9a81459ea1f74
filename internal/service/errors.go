package service

import "errors"

var (
	// ErrInvalidQuantity rejects non-positive quantities before any state
	// is touched.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrProductNotFound means the catalog has no such product.
	ErrProductNotFound = errors.New("product not found")

	// ErrCartItemNotFound means the referenced cart line does not exist.
	// Removal is not a silent no-op so caller bugs stay visible.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrEmptyCart blocks checkout before any payment attempt.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrPaymentDeclined reports that the gateway refused the charge. The
	// cart and pending order are left intact for a retry.
	ErrPaymentDeclined = errors.New("payment authorization failed")
)
