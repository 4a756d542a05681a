package transaction

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/transactions/export
// Riwayat transaksi sebagai file xlsx untuk rekap bulanan di toko.
func ExportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.List()
		if err != nil {
			return toHTTPError(err)
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Transaksi"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"No. Penjualan", "Tanggal", "Kasir", "Pelanggan", "Telepon", "Total", "Dicetak Oleh", "Catatan"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for i, row := range rows {
			phone := ""
			if row.CustomerPhone != nil {
				phone = *row.CustomerPhone
			}
			notes := ""
			if row.Notes != nil {
				notes = *row.Notes
			}
			values := []any{
				row.SalesNumber,
				row.TransactionDate,
				row.CashierName,
				row.CustomerName,
				phone,
				row.TotalAmount.InexactFloat64(),
				row.PrintedBy,
				notes,
			}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File export tidak bisa dibuat")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "riwayat-transaksi.xlsx"))
		return c.Send(buf.Bytes())
	}
}
