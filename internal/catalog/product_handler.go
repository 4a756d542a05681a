package catalog

import (
	"fmt"
	"strings"

	"github.com/rywndr/riaujaya-sub000/internal/audit"
	"github.com/rywndr/riaujaya-sub000/internal/auth"
	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/models"
	"github.com/rywndr/riaujaya-sub000/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt string          `json:"created_at"`
}

type CreateProductRequest struct {
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	Code      *string          `json:"code"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		UnitPrice: p.UnitPrice,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/products?q=oli&page=1&limit=10
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := pagination.New(c.QueryInt("page", 1), c.QueryInt("limit", 10))

		dbq := database.DB.Model(&models.Product{})
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dihitung")
		}

		var products []models.Product
		if err := dbq.Order("name asc").
			Offset(p.Offset).
			Limit(p.Limit).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa diambil")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, prod := range products {
			res = append(res, toProductResponse(prod))
		}

		return c.JSON(fiber.Map{
			"data": res,
			"meta": pagination.BuildMeta(p.Page, p.Limit, total),
		})
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}
		return c.JSON(toProductResponse(product))
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Code = strings.TrimSpace(body.Code)

		if body.Name == "" || body.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama dan kode produk wajib diisi")
		}
		if !body.UnitPrice.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "Harga harus lebih dari 0")
		}

		var existing models.Product
		if err := database.DB.Where("code = ?", body.Code).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kode produk sudah dipakai")
		}

		product := models.Product{
			Name:      body.Name,
			Code:      body.Code,
			UnitPrice: body.UnitPrice,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dibuat")
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Produk '%s' dibuat", product.Name),
			After:       product,
		})

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		before := product

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama tidak boleh kosong")
			}
			product.Name = name
		}

		if body.Code != nil {
			code := strings.TrimSpace(*body.Code)
			if code == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kode tidak boleh kosong")
			}
			var existing models.Product
			if err := database.DB.Where("code = ? AND id != ?", code, product.ID).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Kode produk sudah dipakai")
			}
			product.Code = code
		}

		if body.UnitPrice != nil {
			if !body.UnitPrice.IsPositive() {
				return fiber.NewError(fiber.StatusBadRequest, "Harga harus lebih dari 0")
			}
			product.UnitPrice = *body.UnitPrice
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa diperbarui")
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Produk '%s' diubah", product.Name),
			Before:      before,
			After:       product,
		})

		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/products/:id
// Produk yang sudah pernah terjual hanya boleh di-soft-delete supaya riwayat
// transaksi tetap utuh; yang belum pernah terjual dihapus permanen.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}

		var itemCount int64
		database.DB.Model(&models.TransactionItem{}).
			Where("product_id = ?", product.ID).
			Count(&itemCount)

		dbq := database.DB
		if itemCount == 0 {
			dbq = dbq.Unscoped()
		}
		if err := dbq.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dihapus")
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Produk '%s' dihapus", product.Name),
			Before:      product,
		})

		return c.JSON(fiber.Map{"message": "Produk berhasil dihapus"})
	}
}
