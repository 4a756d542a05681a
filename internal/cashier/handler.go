package cashier

import (
	"fmt"
	"strings"

	"github.com/rywndr/riaujaya-sub000/internal/audit"
	"github.com/rywndr/riaujaya-sub000/internal/auth"
	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/models"
	"github.com/rywndr/riaujaya-sub000/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type CashierResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CashierRequest struct {
	Name string `json:"name"`
}

func toCashierResponse(cs models.Cashier) CashierResponse {
	return CashierResponse{
		ID:        cs.ID,
		Name:      cs.Name,
		CreatedAt: cs.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/cashiers?q=&page=&limit=
func ListCashiersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := pagination.New(c.QueryInt("page", 1), c.QueryInt("limit", 10))

		dbq := database.DB.Model(&models.Cashier{})
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kasir tidak bisa dihitung")
		}

		var cashiers []models.Cashier
		if err := dbq.Order("name asc").
			Offset(p.Offset).
			Limit(p.Limit).
			Find(&cashiers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kasir tidak bisa diambil")
		}

		res := make([]CashierResponse, 0, len(cashiers))
		for _, cs := range cashiers {
			res = append(res, toCashierResponse(cs))
		}

		return c.JSON(fiber.Map{
			"data": res,
			"meta": pagination.BuildMeta(p.Page, p.Limit, total),
		})
	}
}

// GET /api/cashiers/:id
func GetCashierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cs models.Cashier
		if err := database.DB.First(&cs, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kasir tidak ditemukan")
		}
		return c.JSON(toCashierResponse(cs))
	}
}

// POST /api/cashiers
func CreateCashierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CashierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kasir wajib diisi")
		}

		cs := models.Cashier{Name: body.Name}
		if err := database.DB.Create(&cs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kasir tidak bisa dibuat")
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cashier",
			EntityID:    cs.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Kasir '%s' dibuat", cs.Name),
			After:       cs,
		})

		return c.Status(fiber.StatusCreated).JSON(toCashierResponse(cs))
	}
}

// PUT /api/cashiers/:id
func UpdateCashierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cs models.Cashier
		if err := database.DB.First(&cs, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kasir tidak ditemukan")
		}

		var body CashierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama kasir wajib diisi")
		}

		before := cs
		cs.Name = body.Name

		if err := database.DB.Save(&cs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kasir tidak bisa diperbarui")
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cashier",
			EntityID:    cs.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Kasir '%s' diubah", cs.Name),
			Before:      before,
			After:       cs,
		})

		return c.JSON(toCashierResponse(cs))
	}
}

// DELETE /api/cashiers/:id
// Kasir yang sudah punya transaksi hanya di-soft-delete supaya join riwayat
// tetap jalan; yang belum pernah transaksi dihapus permanen.
func DeleteCashierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cs models.Cashier
		if err := database.DB.First(&cs, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kasir tidak ditemukan")
		}

		var txCount int64
		database.DB.Model(&models.Transaction{}).
			Where("cashier_id = ?", cs.ID).
			Count(&txCount)

		dbq := database.DB
		if txCount == 0 {
			dbq = dbq.Unscoped()
		}
		if err := dbq.Delete(&cs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kasir tidak bisa dihapus")
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "cashier",
			EntityID:    cs.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Kasir '%s' dihapus", cs.Name),
			Before:      cs,
		})

		return c.JSON(fiber.Map{"message": "Kasir berhasil dihapus"})
	}
}
