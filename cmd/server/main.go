package main

import (
	"log"
	"strings"

	"github.com/rywndr/riaujaya-sub000/internal/audit"
	"github.com/rywndr/riaujaya-sub000/internal/auth"
	"github.com/rywndr/riaujaya-sub000/internal/cashier"
	"github.com/rywndr/riaujaya-sub000/internal/catalog"
	"github.com/rywndr/riaujaya-sub000/internal/config"
	"github.com/rywndr/riaujaya-sub000/internal/customer"
	"github.com/rywndr/riaujaya-sub000/internal/dashboard"
	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// Nominal uang di response JSON sebagai angka, bukan string
	decimal.MarshalJSONWithoutQuotes = true

	if err := godotenv.Load(); err != nil {
		log.Println("File .env tidak ditemukan, lanjut pakai environment")
	}

	cfg := config.Load()
	database.Init(cfg)

	txService := transaction.NewService(database.DB)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error tak terduga:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan server",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Produk
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/products/:id", catalog.GetProductHandler())
	protected.Post("/products", catalog.CreateProductHandler())
	protected.Put("/products/:id", catalog.UpdateProductHandler())
	protected.Delete("/products/:id", catalog.DeleteProductHandler())

	// Kasir
	protected.Get("/cashiers", cashier.ListCashiersHandler())
	protected.Get("/cashiers/:id", cashier.GetCashierHandler())
	protected.Post("/cashiers", cashier.CreateCashierHandler())
	protected.Put("/cashiers/:id", cashier.UpdateCashierHandler())
	protected.Delete("/cashiers/:id", cashier.DeleteCashierHandler())

	// Pelanggan (dibuat otomatis oleh alur transaksi)
	protected.Get("/customers", customer.ListCustomersHandler())

	// Transaksi
	protected.Post("/transactions", transaction.CreateHandler(txService))
	protected.Get("/transactions", transaction.ListHandler(txService))
	protected.Get("/transactions/export", transaction.ExportHandler(txService))
	protected.Get("/transactions/:id", transaction.GetHandler(txService))
	protected.Put("/transactions/:id", transaction.UpdateHandler(txService))
	protected.Delete("/transactions/:id", transaction.DeleteHandler(txService))

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server jalan di port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
