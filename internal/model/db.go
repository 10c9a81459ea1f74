package model

import "time"

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:512" json:"description"`
	PriceCents  int64  `gorm:"not null" json:"price_cents"` // minor currency units
	Currency    string `gorm:"size:8;not null" json:"currency"`
	CategoryID  uint   `gorm:"index;not null" json:"category_id"`
}

// CartItem is one line of an owner's cart. UnitPriceCents is snapshotted at
// add time and never re-read from the catalog afterwards.
type CartItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OwnerKey       OwnerKey  `gorm:"size:64;index;not null" json:"-"`
	ProductID      uint      `gorm:"index;not null" json:"product_id"`
	Quantity       int32     `gorm:"not null" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;index;not null" json:"user_id"`
	FirstName  string    `gorm:"size:64" json:"first_name"`
	LastName   string    `gorm:"size:64" json:"last_name"`
	Address    string    `gorm:"size:128" json:"address"`
	City       string    `gorm:"size:64" json:"city"`
	Province   string    `gorm:"size:64" json:"province"`
	PostalCode string    `gorm:"size:16" json:"postal_code"`
	Phone      string    `gorm:"size:32" json:"phone"`
	TotalCents int64     `gorm:"not null" json:"total_cents"`
	Currency   string    `gorm:"size:8;not null" json:"currency"`
	ChargeRef  string    `gorm:"size:128" json:"charge_ref"` // gateway charge reference
	OrderDate  time.Time `json:"order_date"`
}

// OrderDetail is an immutable line-item snapshot taken from a CartItem at
// finalization; it never tracks later catalog price changes.
type OrderDetail struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	OrderID        uint  `gorm:"index;not null" json:"order_id"`
	ProductID      uint  `gorm:"index;not null" json:"product_id"`
	Quantity       int32 `gorm:"not null" json:"quantity"`
	UnitPriceCents int64 `gorm:"not null" json:"unit_price_cents"`
}
