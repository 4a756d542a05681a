package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              uint   `gorm:"primaryKey"`
	SalesNumber     string `gorm:"size:30;index;not null"` // format NNNN/RJC/MM/YYYY, dibuat di sisi kasir
	CashierID       uint   `gorm:"index;not null"`
	Cashier         Cashier
	CustomerID      *uint `gorm:"index"`
	Customer        *Customer
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Notes           *string         `gorm:"type:text"`
	PrintedBy       string          `gorm:"size:100"`
	TransactionDate time.Time       `gorm:"index;not null"`
	Items           []TransactionItem `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionItem menyimpan snapshot harga saat penjualan. Subtotal
// selalu quantity * unit_price sebelum diskon; diskon diterapkan saat
// tampil/agregasi, tidak pernah dibakar ke subtotal.
type TransactionItem struct {
	ID                 uint `gorm:"primaryKey"`
	TransactionID      uint `gorm:"index;not null"`
	ProductID          uint `gorm:"index;not null"`
	Product            Product
	Quantity           int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	DiscountPercentage float64         `gorm:"not null;default:0"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CreatedAt          time.Time
}
