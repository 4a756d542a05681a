package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rywndr/riaujaya-sub000/internal/config"
	"github.com/rywndr/riaujaya-sub000/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:authtest%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{JWTSecret: "rahasia-sekali-minimal-32-karakter!!"}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan server"})
		},
	})

	api := app.Group("/api")
	api.Post("/auth/register", RegisterHandler(cfg))
	api.Post("/auth/login", LoginHandler(cfg))

	protected := api.Group("", JWTMiddleware(cfg))
	protected.Get("/auth/me", MeHandler())

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, []byte) {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestRegisterLoginMe(t *testing.T) {
	app := setupApp(t)

	resp, _ := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name:     "Pemilik Toko",
		Email:    "owner@riaujaya.test",
		Password: "kata-sandi-rahasia",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Register kedua ditolak: endpoint hanya untuk akun pertama
	resp, _ = postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name:     "Orang Lain",
		Email:    "lain@riaujaya.test",
		Password: "apa-saja",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = postJSON(t, app, "/api/auth/login", LoginRequest{
		Email:    "owner@riaujaya.test",
		Password: "salah",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, raw := postJSON(t, app, "/api/auth/login", LoginRequest{
		Email:    "owner@riaujaya.test",
		Password: "kata-sandi-rahasia",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var loginBody struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &loginBody))
	require.NotEmpty(t, loginBody.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody.Token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, meResp.StatusCode)

	meRaw, err := io.ReadAll(meResp.Body)
	require.NoError(t, err)

	var me struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(meRaw, &me))
	require.Equal(t, "Pemilik Toko", me.Name)
}

func TestMeWithoutToken(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMeWithInvalidToken(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer token-ngawur")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
