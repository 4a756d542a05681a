package audit

import (
	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/models"
	"github.com/rywndr/riaujaya-sub000/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=transaction&page=1&limit=20
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := pagination.New(c.QueryInt("page", 1), c.QueryInt("limit", 20))

		dbq := database.DB.Model(&models.AuditLog{})
		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit log tidak bisa dihitung")
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC").
			Offset(p.Offset).
			Limit(p.Limit).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Audit log tidak bisa diambil")
		}

		return c.JSON(fiber.Map{
			"data": logs,
			"meta": pagination.BuildMeta(p.Page, p.Limit, total),
		})
	}
}
