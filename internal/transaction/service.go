package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rywndr/riaujaya-sub000/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalkInCustomerName adalah label tetap untuk penjualan tanpa pelanggan.
// Transaksi walk-in tidak membuat baris customer sama sekali.
const WalkInCustomerName = "KONSUMEN BENGKEL"

var (
	ErrValidation = errors.New("validasi gagal")
	ErrNotFound   = errors.New("transaksi tidak ditemukan")
)

type CartItem struct {
	ProductID          uint            `json:"product_id"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
}

type Payload struct {
	SalesNumber   string          `json:"sales_number"`
	CashierID     uint            `json:"cashier_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Notes         *string         `json:"notes"`
	PrintedBy     string          `json:"printed_by"`
	Cart          []CartItem      `json:"cart"`
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
		loc: JakartaLocation(),
	}
}

// JakartaLocation mengembalikan zona waktu tampilan yang dipakai di semua
// struk dan riwayat (WIB, UTC+7).
func JakartaLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

func validatePayload(p Payload) error {
	if strings.TrimSpace(p.SalesNumber) == "" {
		return fmt.Errorf("%w: sales_number wajib diisi", ErrValidation)
	}
	if p.CashierID == 0 {
		return fmt.Errorf("%w: cashier_id wajib diisi", ErrValidation)
	}
	if strings.TrimSpace(p.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name wajib diisi", ErrValidation)
	}
	if len(p.Cart) == 0 {
		return fmt.Errorf("%w: cart tidak boleh kosong", ErrValidation)
	}
	for _, line := range p.Cart {
		if line.ProductID == 0 {
			return fmt.Errorf("%w: product_id wajib diisi untuk semua item", ErrValidation)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity harus lebih dari 0", ErrValidation)
		}
		if line.DiscountPercentage < 0 || line.DiscountPercentage > 100 {
			return fmt.Errorf("%w: discount_percentage harus 0-100", ErrValidation)
		}
	}
	return nil
}

// resolveCustomer berjalan di dalam transaksi database yang sudah terbuka,
// tidak pernah membuka transaksi sendiri. Nomor telepon adalah kunci dedup;
// nama dengan telepon yang sama dipetakan ke customer lama tanpa mengubah
// nama tersimpan. Tanpa telepon tidak ada kunci dedup, selalu insert baru.
func resolveCustomer(tx *gorm.DB, name, phone string) (*uint, error) {
	if name == WalkInCustomerName {
		return nil, nil
	}

	phone = strings.TrimSpace(phone)
	if phone != "" {
		var existing models.Customer
		err := tx.Where("phone = ?", phone).First(&existing).Error
		if err == nil {
			return &existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		cust := models.Customer{Name: name, Phone: &phone}
		if err := tx.Create(&cust).Error; err != nil {
			return nil, err
		}
		return &cust.ID, nil
	}

	cust := models.Customer{Name: name}
	if err := tx.Create(&cust).Error; err != nil {
		return nil, err
	}
	return &cust.ID, nil
}

// Create menulis header transaksi plus semua item dalam satu transaksi
// database. Gagal di titik mana pun berarti rollback total: tidak pernah
// ada header tanpa item lengkapnya, atau sebaliknya.
func (s *Service) Create(p Payload) (*Detail, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	txDate := s.now().In(s.loc)

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	customerID, err := resolveCustomer(tx, p.CustomerName, p.CustomerPhone)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	header := models.Transaction{
		SalesNumber:     strings.TrimSpace(p.SalesNumber),
		CashierID:       p.CashierID,
		CustomerID:      customerID,
		TotalAmount:     p.Total,
		Notes:           p.Notes,
		PrintedBy:       p.PrintedBy,
		TransactionDate: txDate,
	}
	if err := tx.Create(&header).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.insertItems(tx, header.ID, p.Cart); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetByID(header.ID)
}

// insertItems menghitung subtotal = quantity * unit_price SEBELUM diskon.
// Diskon hanya disimpan sebagai persentase, tidak pernah dibakar ke subtotal.
func (s *Service) insertItems(tx *gorm.DB, transactionID uint, cart []CartItem) error {
	for _, line := range cart {
		// Unscoped: produk yang sudah soft-delete tetap sah sebagai
		// referensi historis (harga sudah jadi snapshot di item).
		var product models.Product
		if err := tx.Unscoped().First(&product, line.ProductID).Error; err != nil {
			return fmt.Errorf("produk %d tidak ditemukan: %w", line.ProductID, err)
		}

		item := models.TransactionItem{
			TransactionID:      transactionID,
			ProductID:          line.ProductID,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			DiscountPercentage: line.DiscountPercentage,
			Subtotal:           line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// Update mengganti seluruh item lama dengan isi cart baru (hapus semua lalu
// insert ulang, bukan diff). TransactionDate asli tidak pernah berubah.
func (s *Service) Update(id uint, p Payload) (*Detail, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	var header models.Transaction
	if err := s.db.First(&header, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	customerID, err := resolveCustomer(tx, p.CustomerName, p.CustomerPhone)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	header.SalesNumber = strings.TrimSpace(p.SalesNumber)
	header.CashierID = p.CashierID
	header.CustomerID = customerID
	header.TotalAmount = p.Total
	header.Notes = p.Notes
	header.PrintedBy = p.PrintedBy
	if err := tx.Save(&header).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("transaction_id = ?", id).Delete(&models.TransactionItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.insertItems(tx, id, p.Cart); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// Delete menghapus item lalu header dalam satu transaksi database.
func (s *Service) Delete(id uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Where("transaction_id = ?", id).Delete(&models.TransactionItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	res := tx.Delete(&models.Transaction{}, id)
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	return tx.Commit().Error
}
