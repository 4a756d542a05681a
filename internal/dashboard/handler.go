package dashboard

import (
	"time"

	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/models"
	"github.com/rywndr/riaujaya-sub000/internal/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type TopProduct struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

type itemAgg struct {
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage float64
	Subtotal           decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// netAmount menerapkan diskon persentase saat agregasi. Subtotal tersimpan
// selalu pra-diskon, jadi diskon dihitung di sini, bukan dibaca dari kolom.
func netAmount(it itemAgg) decimal.Decimal {
	if it.DiscountPercentage == 0 {
		return it.Subtotal
	}
	disc := decimal.NewFromFloat(it.DiscountPercentage).Div(oneHundred)
	return it.Subtotal.Sub(it.Subtotal.Mul(disc)).Round(2)
}

// GET /api/dashboard/summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc := transaction.JakartaLocation()
		now := time.Now().In(loc)
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		endOfDay := startOfDay.Add(24 * time.Hour)

		var items []itemAgg
		if err := database.DB.Model(&models.TransactionItem{}).
			Select("transaction_items.quantity, transaction_items.unit_price, transaction_items.discount_percentage, transaction_items.subtotal").
			Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
			Where("transactions.transaction_date >= ? AND transactions.transaction_date < ?", startOfDay, endOfDay).
			Scan(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ringkasan penjualan tidak bisa diambil")
		}

		todayRevenue := decimal.Zero
		for _, it := range items {
			todayRevenue = todayRevenue.Add(netAmount(it))
		}

		var todayTransactions int64
		if err := database.DB.Model(&models.Transaction{}).
			Where("transaction_date >= ? AND transaction_date < ?", startOfDay, endOfDay).
			Count(&todayTransactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ringkasan penjualan tidak bisa diambil")
		}

		var topProducts []TopProduct
		if err := database.DB.Model(&models.TransactionItem{}).
			Select("transaction_items.product_id, products.name AS product_name, SUM(transaction_items.quantity) AS quantity").
			Joins("JOIN products ON products.id = transaction_items.product_id").
			Group("transaction_items.product_id, products.name").
			Order("quantity DESC").
			Limit(5).
			Scan(&topProducts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk terlaris tidak bisa diambil")
		}

		return c.JSON(fiber.Map{
			"today_revenue":      todayRevenue,
			"today_transactions": todayTransactions,
			"top_products":       topProducts,
		})
	}
}
