package dto

import (
	"diversity-shop/internal/model"

	"github.com/shopspring/decimal"
)

type AddToCartRequest struct {
	ProductID uint  `json:"product_id" form:"product_id" validate:"required"`
	Quantity  int32 `json:"quantity" form:"quantity" validate:"required"`
}

// ShippingDetails is the checkout form. OrderDate, UserID and Total are
// filled in server-side, never taken from the client.
type ShippingDetails struct {
	FirstName  string `json:"first_name" form:"first_name" validate:"required"`
	LastName   string `json:"last_name" form:"last_name" validate:"required"`
	Address    string `json:"address" form:"address" validate:"required"`
	City       string `json:"city" form:"city" validate:"required"`
	Province   string `json:"province" form:"province" validate:"required"`
	PostalCode string `json:"postal_code" form:"postal_code" validate:"required"`
	Phone      string `json:"phone" form:"phone" validate:"required"`
}

type PaymentRequest struct {
	PayerToken string `json:"payer_token" form:"payer_token" validate:"required"`
	PayerEmail string `json:"payer_email" form:"payer_email" validate:"required,email"`
}

type CartItemView struct {
	ID             uint   `json:"id"`
	ProductID      uint   `json:"product_id"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	UnitPrice      string `json:"unit_price"`
	LineTotal      string `json:"line_total"`
}

type CartView struct {
	Items      []CartItemView `json:"items"`
	TotalCents int64          `json:"total_cents"`
	Total      string         `json:"total"`
}

type PaymentView struct {
	TotalCents      int64  `json:"total_cents"`
	Total           string `json:"total"`
	Currency        string `json:"currency"`
	TokenizationKey string `json:"tokenization_key"`
}

type OrderConfirmation struct {
	OrderID   uint   `json:"order_id"`
	Total     string `json:"total"`
	Currency  string `json:"currency"`
	ChargeRef string `json:"charge_ref"`
}

// Dollars renders minor units as a fixed two-decimal amount for display.
func Dollars(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func NewCartView(items []*model.CartItem) CartView {
	view := CartView{Items: make([]CartItemView, 0, len(items))}
	for _, item := range items {
		lineCents := int64(item.Quantity) * item.UnitPriceCents
		view.TotalCents += lineCents
		view.Items = append(view.Items, CartItemView{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			UnitPrice:      Dollars(item.UnitPriceCents),
			LineTotal:      Dollars(lineCents),
		})
	}
	view.Total = Dollars(view.TotalCents)
	return view
}
