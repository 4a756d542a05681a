package customer

import (
	"strings"

	"github.com/rywndr/riaujaya-sub000/internal/database"
	"github.com/rywndr/riaujaya-sub000/internal/models"
	"github.com/rywndr/riaujaya-sub000/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type CustomerResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
}

// GET /api/customers?q=&page=&limit=
// Baris customer dibuat oleh alur transaksi, endpoint ini hanya baca.
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := pagination.New(c.QueryInt("page", 1), c.QueryInt("limit", 10))

		dbq := database.DB.Model(&models.Customer{})
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, "%"+q+"%")
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pelanggan tidak bisa dihitung")
		}

		var customers []models.Customer
		if err := dbq.Order("created_at DESC").
			Offset(p.Offset).
			Limit(p.Limit).
			Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pelanggan tidak bisa diambil")
		}

		res := make([]CustomerResponse, 0, len(customers))
		for _, cust := range customers {
			res = append(res, CustomerResponse{
				ID:        cust.ID,
				Name:      cust.Name,
				Phone:     cust.Phone,
				CreatedAt: cust.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(fiber.Map{
			"data": res,
			"meta": pagination.BuildMeta(p.Page, p.Limit, total),
		})
	}
}
