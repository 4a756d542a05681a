package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:100;not null"`
	Code      string          `gorm:"size:50;uniqueIndex;not null"` // kode produk, tampil di struk
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
