package transaction

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rywndr/riaujaya-sub000/internal/audit"
	"github.com/rywndr/riaujaya-sub000/internal/auth"
	"github.com/rywndr/riaujaya-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
)

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID transaksi tidak valid")
	}
	return uint(id), nil
}

// POST /api/transactions
func CreateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Payload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		detail, err := svc.Create(body)
		if err != nil {
			return toHTTPError(err)
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transaction",
			EntityID:    detail.Transaction.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Transaksi %s dibuat", detail.Transaction.SalesNumber),
			After:       detail,
		})

		return c.Status(fiber.StatusCreated).JSON(detail)
	}
}

// PUT /api/transactions/:id
func UpdateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body Payload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		before, err := svc.GetByID(id)
		if err != nil {
			return toHTTPError(err)
		}

		detail, err := svc.Update(id, body)
		if err != nil {
			return toHTTPError(err)
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transaction",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Transaksi %s diubah", detail.Transaction.SalesNumber),
			Before:      before,
			After:       detail,
		})

		return c.JSON(detail)
	}
}

// DELETE /api/transactions/:id
func DeleteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		before, err := svc.GetByID(id)
		if err != nil {
			return toHTTPError(err)
		}

		if err := svc.Delete(id); err != nil {
			return toHTTPError(err)
		}

		userID, userName := auth.UserFromCtx(c)
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transaction",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Transaksi %s dihapus", before.Transaction.SalesNumber),
			Before:      before,
		})

		return c.JSON(fiber.Map{"message": "Transaksi berhasil dihapus"})
	}
}

// GET /api/transactions
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.List()
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(rows)
	}
}

// GET /api/transactions/:id
func GetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		detail, err := svc.GetByID(id)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(detail)
	}
}
