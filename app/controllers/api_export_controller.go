package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

// HandleExportRecords streams the caller's full service history as CSV or
// JSON. Distances are exported in kilometers (the storage unit) so the file
// round-trips regardless of display preference.
// Security: API Key required via router middleware
func HandleExportRecords(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	records, err := repository.GetGlobalFactory().GetRecordRepository().GetByUserID(user.UserID)
	if err != nil {
		log.Printf("export: loading records for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not export records"})
	}

	format := c.Query("format", "json")
	switch format {
	case "json":
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="maintenance_records.json"`)
		return c.JSON(fiber.Map{"records": records, "exported_at": time.Now().UTC()})
	case "csv":
		body, err := recordsToCSV(records)
		if err != nil {
			log.Printf("export: building CSV for user %d failed: %v", user.UserID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not export records"})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="maintenance_records.csv"`)
		return c.Send(body)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "format must be csv or json"})
	}
}

func recordsToCSV(records []models.MaintenanceRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "motorcycle", "task", "mileage_km", "cost", "notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range records {
		record := &records[i]
		taskName := ""
		if record.Task != nil {
			taskName = record.Task.Name
		}
		mileage := ""
		if record.Mileage != nil {
			mileage = strconv.Itoa(*record.Mileage)
		}
		cost := ""
		if record.Cost != nil {
			cost = fmt.Sprintf("%.2f", *record.Cost)
		}
		row := []string{
			record.Date.Format("2006-01-02"),
			record.Motorcycle.Name,
			taskName,
			mileage,
			cost,
			record.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
