package models

import "time"

// Customer dibuat otomatis saat transaksi. Penjualan walk-in tidak
// punya baris customer sama sekali.
type Customer struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null"`
	Phone     *string `gorm:"size:20;index"` // kunci dedup, bukan nama
	CreatedAt time.Time
	UpdatedAt time.Time
}
