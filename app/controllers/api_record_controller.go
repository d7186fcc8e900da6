package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

type recordRequest struct {
	TaskUUID *string  `json:"task_uuid"`
	Date     string   `json:"date"` // YYYY-MM-DD
	Mileage  *int     `json:"mileage"`
	Cost     *float64 `json:"cost"`
	Notes    string   `json:"notes"`
}

// ownedRecordByUUID resolves a record and enforces ownership through its
// motorcycle. On failure the response has been written; callers bail out when
// record is nil.
func ownedRecordByUUID(c *fiber.Ctx) (*models.MaintenanceRecord, error) {
	user := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	record, err := factory.GetRecordRepository().GetByUUID(c.Params("uuid"))
	if err != nil || record == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "record not found"})
	}
	motorcycle, err := factory.GetMotorcycleRepository().GetByID(record.MotorcycleID)
	if err != nil || motorcycle == nil || motorcycle.UserID != user.UserID {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "record not found"})
	}
	return record, nil
}

// HandleListRecords returns the service history of a motorcycle, newest first
// Security: API Key required via router middleware
func HandleListRecords(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	offset, limit := parsePagination(c)
	records, err := repository.GetGlobalFactory().GetRecordRepository().GetByMotorcycleID(motorcycle.ID, offset, limit)
	if err != nil {
		log.Printf("listing records for motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load records"})
	}

	return c.JSON(fiber.Map{"records": records, "offset": offset, "limit": limit})
}

// HandleCreateRecord logs a completed service. When the record references a
// task, the task's stored next-due hints are recomputed from this completion.
// A record mileage above the current odometer reading also advances the
// motorcycle's mileage.
func HandleCreateRecord(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}

	date := time.Now()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "date must be YYYY-MM-DD"})
		}
		date = d
	}

	record := models.MaintenanceRecord{
		MotorcycleID: motorcycle.ID,
		Date:         date,
		Mileage:      req.Mileage,
		Cost:         req.Cost,
		Notes:        req.Notes,
	}

	factory := repository.GetGlobalFactory()
	var task *models.MaintenanceTask
	if req.TaskUUID != nil && *req.TaskUUID != "" {
		task, err = factory.GetTaskRepository().GetByUUID(*req.TaskUUID)
		if err != nil || task == nil || task.MotorcycleID != motorcycle.ID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "task_uuid does not belong to this motorcycle"})
		}
		record.TaskID = &task.ID
		recomputeTaskNextDue(task, &record)
	}

	if err := factory.GetRecordRepository().Create(&record); err != nil {
		log.Printf("creating record failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not create record"})
	}

	if task != nil {
		if err := factory.GetTaskRepository().Update(task); err != nil {
			log.Printf("updating task %d after completion failed: %v", task.ID, err)
		}
	}

	if record.Mileage != nil && (motorcycle.CurrentMileage == nil || *record.Mileage > *motorcycle.CurrentMileage) {
		if err := factory.GetMotorcycleRepository().UpdateMileage(motorcycle.ID, *record.Mileage, date, "service record"); err != nil {
			log.Printf("advancing mileage from record for motorcycle %d failed: %v", motorcycle.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandleGetRecord returns a single maintenance record
func HandleGetRecord(c *fiber.Ctx) error {
	record, err := ownedRecordByUUID(c)
	if record == nil {
		return err
	}

	return c.JSON(record)
}

// HandleUpdateRecord edits a record. History is otherwise immutable; this is
// the explicit edit path.
func HandleUpdateRecord(c *fiber.Ctx) error {
	record, err := ownedRecordByUUID(c)
	if record == nil {
		return err
	}

	var req recordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}

	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "date must be YYYY-MM-DD"})
		}
		record.Date = d
	}
	if req.Mileage != nil {
		record.Mileage = req.Mileage
	}
	if req.Cost != nil {
		record.Cost = req.Cost
	}
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	if err := repository.GetGlobalFactory().GetRecordRepository().Update(record); err != nil {
		log.Printf("updating record %d failed: %v", record.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not update record"})
	}

	return c.JSON(record)
}

// HandleDeleteRecord removes a maintenance record
func HandleDeleteRecord(c *fiber.Ctx) error {
	record, err := ownedRecordByUUID(c)
	if record == nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetRecordRepository().Delete(record.ID); err != nil {
		log.Printf("deleting record %d failed: %v", record.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete record"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
