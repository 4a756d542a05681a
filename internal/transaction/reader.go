package transaction

import (
	"time"

	"github.com/rywndr/riaujaya-sub000/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateDisplayFormat = "2006-01-02 15:04:05"

type TransactionRow struct {
	ID              uint            `json:"id"`
	SalesNumber     string          `json:"sales_number"`
	CashierID       uint            `json:"cashier_id"`
	CashierName     string          `json:"cashier_name"`
	CustomerID      *uint           `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   *string         `json:"customer_phone"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Notes           *string         `json:"notes"`
	PrintedBy       string          `json:"printed_by"`
	TransactionDate string          `json:"transaction_date"` // YYYY-MM-DD HH:mm:ss WIB
}

type ItemRow struct {
	ID                 uint            `json:"id"`
	TransactionID      uint            `json:"transaction_id"`
	ProductID          uint            `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductCode        string          `json:"product_code"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

type Detail struct {
	Transaction TransactionRow `json:"transaction"`
	Items       []ItemRow      `json:"items"`
}

// headerRow adalah hasil scan mentah sebelum tanggal diformat ke WIB.
type headerRow struct {
	ID              uint
	SalesNumber     string
	CashierID       uint
	CashierName     string
	CustomerID      *uint
	CustomerName    string
	CustomerPhone   *string
	TotalAmount     decimal.Decimal
	Notes           *string
	PrintedBy       string
	TransactionDate time.Time
}

const headerSelect = `transactions.id,
	transactions.sales_number,
	transactions.cashier_id,
	cashiers.name AS cashier_name,
	transactions.customer_id,
	COALESCE(customers.name, ?) AS customer_name,
	customers.phone AS customer_phone,
	transactions.total_amount,
	transactions.notes,
	transactions.printed_by,
	transactions.transaction_date`

func (s *Service) headerQuery() *gorm.DB {
	return s.db.Model(&models.Transaction{}).
		Select(headerSelect, WalkInCustomerName).
		Joins("JOIN cashiers ON cashiers.id = transactions.cashier_id").
		Joins("LEFT JOIN customers ON customers.id = transactions.customer_id")
}

func (s *Service) toRow(h headerRow) TransactionRow {
	return TransactionRow{
		ID:              h.ID,
		SalesNumber:     h.SalesNumber,
		CashierID:       h.CashierID,
		CashierName:     h.CashierName,
		CustomerID:      h.CustomerID,
		CustomerName:    h.CustomerName,
		CustomerPhone:   h.CustomerPhone,
		TotalAmount:     h.TotalAmount,
		Notes:           h.Notes,
		PrintedBy:       h.PrintedBy,
		TransactionDate: h.TransactionDate.In(s.loc).Format(dateDisplayFormat),
	}
}

// List mengembalikan semua transaksi beserta nama kasir dan pelanggan,
// terbaru duluan. Penjualan walk-in tampil dengan label tetap.
func (s *Service) List() ([]TransactionRow, error) {
	var headers []headerRow
	if err := s.headerQuery().
		Order("transactions.transaction_date DESC").
		Scan(&headers).Error; err != nil {
		return nil, err
	}

	rows := make([]TransactionRow, 0, len(headers))
	for _, h := range headers {
		rows = append(rows, s.toRow(h))
	}
	return rows, nil
}

// GetByID mengembalikan satu transaksi plus semua itemnya (join nama dan
// kode produk, termasuk produk yang sudah soft-delete).
func (s *Service) GetByID(id uint) (*Detail, error) {
	var headers []headerRow
	if err := s.headerQuery().
		Where("transactions.id = ?", id).
		Scan(&headers).Error; err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, ErrNotFound
	}

	items, err := s.listItems(id)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Transaction: s.toRow(headers[0]),
		Items:       items,
	}, nil
}

func (s *Service) listItems(transactionID uint) ([]ItemRow, error) {
	items := make([]ItemRow, 0)
	err := s.db.Model(&models.TransactionItem{}).
		Select(`transaction_items.id,
			transaction_items.transaction_id,
			transaction_items.product_id,
			products.name AS product_name,
			products.code AS product_code,
			transaction_items.quantity,
			transaction_items.unit_price,
			transaction_items.discount_percentage,
			transaction_items.subtotal`).
		Joins("JOIN products ON products.id = transaction_items.product_id").
		Where("transaction_items.transaction_id = ?", transactionID).
		Order("transaction_items.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
