package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, models.Cashier, []models.Product) {
	t.Helper()

	db := newTestDB(t)
	database.DB = db // dipakai audit.WriteLog
	svc := NewService(db)
	cs, products := seedCatalog(t, db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan server"})
		},
	})

	api := app.Group("/api")
	api.Post("/transactions", CreateHandler(svc))
	api.Get("/transactions", ListHandler(svc))
	api.Get("/transactions/export", ExportHandler(svc))
	api.Get("/transactions/:id", GetHandler(svc))
	api.Put("/transactions/:id", UpdateHandler(svc))
	api.Delete("/transactions/:id", DeleteHandler(svc))

	return app, cs, products
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCreateTransactionEndpoint(t *testing.T) {
	app, cs, products := setupApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/transactions", walkInPayload(cs, products))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var detail Detail
	require.NoError(t, json.Unmarshal(raw, &detail))
	require.Equal(t, WalkInCustomerName, detail.Transaction.CustomerName)
	require.True(t, detail.Items[0].Subtotal.Equal(decimal.NewFromInt(150000)))

	// GET ulang harus mengembalikan item yang sama
	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/transactions/%d", detail.Transaction.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fetched Detail
	require.NoError(t, json.Unmarshal(raw, &fetched))
	require.Equal(t, detail.Items, fetched.Items)

	// Audit log ikut tertulis
	var auditCount int64
	require.NoError(t, database.DB.Model(&models.AuditLog{}).
		Where("entity_type = ? AND action = ?", "transaction", models.AuditActionCreate).
		Count(&auditCount).Error)
	require.Equal(t, int64(1), auditCount)
}

func TestCreateTransactionEndpointValidation(t *testing.T) {
	app, cs, products := setupApp(t)

	p := walkInPayload(cs, products)
	p.Cart = nil

	resp, raw := doJSON(t, app, http.MethodPost, "/api/transactions", p)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Contains(t, body["error"], "cart")
}

func TestGetTransactionEndpointNotFound(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/transactions/9999", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateTransactionEndpoint(t *testing.T) {
	app, cs, products := setupApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/api/transactions", walkInPayload(cs, products))
	var created Detail
	require.NoError(t, json.Unmarshal(raw, &created))

	p := walkInPayload(cs, products)
	p.Cart = []CartItem{{ProductID: products[1].ID, Quantity: 1, UnitPrice: decimal.NewFromInt(45000)}}
	p.Total = decimal.NewFromInt(45000)

	resp, raw := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/transactions/%d", created.Transaction.ID), p)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated Detail
	require.NoError(t, json.Unmarshal(raw, &updated))
	require.Len(t, updated.Items, 1)
	require.Equal(t, products[1].ID, updated.Items[0].ProductID)
	require.Equal(t, created.Transaction.TransactionDate, updated.Transaction.TransactionDate)
}

func TestDeleteTransactionEndpoint(t *testing.T) {
	app, cs, products := setupApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/api/transactions", walkInPayload(cs, products))
	var created Detail
	require.NoError(t, json.Unmarshal(raw, &created))

	path := fmt.Sprintf("/api/transactions/%d", created.Transaction.ID)

	resp, _ := doJSON(t, app, http.MethodDelete, path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, path, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, path, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListTransactionsEndpoint(t *testing.T) {
	app, cs, products := setupApp(t)

	doJSON(t, app, http.MethodPost, "/api/transactions", walkInPayload(cs, products))

	resp, raw := doJSON(t, app, http.MethodGet, "/api/transactions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []TransactionRow
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	require.Equal(t, "Budi", rows[0].CashierName)
}

func TestExportTransactionsEndpoint(t *testing.T) {
	app, cs, products := setupApp(t)

	doJSON(t, app, http.MethodPost, "/api/transactions", walkInPayload(cs, products))

	resp, raw := doJSON(t, app, http.MethodGet, "/api/transactions/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	require.NotEmpty(t, raw)
}
