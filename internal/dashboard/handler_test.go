package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/models"
	"github.com/rywndr/riaujaya-sub000/internal/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dashtest%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

func TestNetAmountAppliesDiscount(t *testing.T) {
	it := itemAgg{
		Quantity:           2,
		UnitPrice:          decimal.NewFromInt(75000),
		DiscountPercentage: 10,
		Subtotal:           decimal.NewFromInt(150000),
	}
	require.True(t, netAmount(it).Equal(decimal.NewFromInt(135000)))

	it.DiscountPercentage = 0
	require.True(t, netAmount(it).Equal(decimal.NewFromInt(150000)))
}

func TestSummaryHandler(t *testing.T) {
	db := setupDB(t)

	cs := models.Cashier{Name: "Budi"}
	require.NoError(t, db.Create(&cs).Error)
	oli := models.Product{Name: "Oli Mesin", Code: "OLI-001", UnitPrice: decimal.NewFromInt(75000)}
	require.NoError(t, db.Create(&oli).Error)

	now := time.Now().In(transaction.JakartaLocation())
	tx := models.Transaction{
		SalesNumber:     "0001/RJC/01/2025",
		CashierID:       cs.ID,
		TotalAmount:     decimal.NewFromInt(135000),
		TransactionDate: now,
	}
	require.NoError(t, db.Create(&tx).Error)
	item := models.TransactionItem{
		TransactionID:      tx.ID,
		ProductID:          oli.ID,
		Quantity:           2,
		UnitPrice:          decimal.NewFromInt(75000),
		DiscountPercentage: 10,
		Subtotal:           decimal.NewFromInt(150000),
	}
	require.NoError(t, db.Create(&item).Error)

	app := fiber.New()
	app.Get("/api/dashboard/summary", SummaryHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		TodayRevenue      decimal.Decimal `json:"today_revenue"`
		TodayTransactions int64           `json:"today_transactions"`
		TopProducts       []TopProduct    `json:"top_products"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))

	// Diskon diterapkan saat agregasi: 150000 - 10% = 135000
	require.True(t, body.TodayRevenue.Equal(decimal.NewFromInt(135000)),
		"revenue harus 135000, dapat %s", body.TodayRevenue)
	require.Equal(t, int64(1), body.TodayTransactions)
	require.Len(t, body.TopProducts, 1)
	require.Equal(t, "Oli Mesin", body.TopProducts[0].ProductName)
	require.Equal(t, int64(2), body.TopProducts[0].Quantity)
}
