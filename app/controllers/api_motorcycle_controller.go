package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/maintenance"
	"github.com/rideway/rideway/internal/pkg/units"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

type motorcycleRequest struct {
	Name         string  `json:"name"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         *int    `json:"year"`
	VIN          string  `json:"vin"`
	PurchaseDate *string `json:"purchase_date"` // YYYY-MM-DD
	PhotoURL     string  `json:"photo_url"`
	Notes        string  `json:"notes"`
}

type mileageRequest struct {
	// Mileage is free-text form input ("12,050 km" is fine) in the caller's
	// preferred display unit.
	Mileage string `json:"mileage"`
	Notes   string `json:"notes"`
}

// HandleListMotorcycles returns the caller's motorcycles
// Security: API Key required via router middleware
func HandleListMotorcycles(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	offset, limit := parsePagination(c)

	repo := repository.GetGlobalFactory().GetMotorcycleRepository()
	motorcycles, err := repo.GetByUserID(user.UserID, offset, limit)
	if err != nil {
		log.Printf("listing motorcycles for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load motorcycles"})
	}
	total, err := repo.CountByUserID(user.UserID)
	if err != nil {
		log.Printf("counting motorcycles for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load motorcycles"})
	}

	return c.JSON(fiber.Map{"motorcycles": motorcycles, "total": total, "offset": offset, "limit": limit})
}

// HandleCreateMotorcycle registers a new motorcycle for the caller
func HandleCreateMotorcycle(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	var req motorcycleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}

	motorcycle := models.Motorcycle{
		UserID:   user.UserID,
		Name:     req.Name,
		Make:     req.Make,
		Model:    req.Model,
		Year:     req.Year,
		VIN:      req.VIN,
		PhotoURL: req.PhotoURL,
		Notes:    req.Notes,
	}
	if req.PurchaseDate != nil {
		d, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "purchase_date must be YYYY-MM-DD"})
		}
		motorcycle.PurchaseDate = &d
	}
	if motorcycle.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "name is required"})
	}

	if err := repository.GetGlobalFactory().GetMotorcycleRepository().Create(&motorcycle); err != nil {
		log.Printf("creating motorcycle failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not create motorcycle"})
	}

	return c.Status(fiber.StatusCreated).JSON(motorcycle)
}

// HandleGetMotorcycle returns a single motorcycle with its mileage history
// and the most recent service record
func HandleGetMotorcycle(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	factory := repository.GetGlobalFactory()
	history, err := factory.GetMotorcycleRepository().GetMileageHistory(motorcycle.ID, 50)
	if err != nil {
		log.Printf("mileage history for motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load mileage history"})
	}
	lastRecord, err := factory.GetRecordRepository().GetLatestForMotorcycle(motorcycle.ID)
	if err != nil {
		log.Printf("latest record for motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load service history"})
	}

	system := displaySystem(c)
	return c.JSON(fiber.Map{
		"motorcycle":              motorcycle,
		"mileage_history":         history,
		"last_record":             lastRecord,
		"current_mileage_display": formatDistance(motorcycle.CurrentMileage, system),
	})
}

// HandleUpdateMotorcycle updates a motorcycle's descriptive fields
func HandleUpdateMotorcycle(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	var req motorcycleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}

	if req.Name != "" {
		motorcycle.Name = req.Name
	}
	if req.Make != "" {
		motorcycle.Make = req.Make
	}
	if req.Model != "" {
		motorcycle.Model = req.Model
	}
	if req.Year != nil {
		motorcycle.Year = req.Year
	}
	if req.VIN != "" {
		motorcycle.VIN = req.VIN
	}
	if req.PhotoURL != "" {
		motorcycle.PhotoURL = req.PhotoURL
	}
	if req.Notes != "" {
		motorcycle.Notes = req.Notes
	}
	if req.PurchaseDate != nil {
		d, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "purchase_date must be YYYY-MM-DD"})
		}
		motorcycle.PurchaseDate = &d
	}

	if err := repository.GetGlobalFactory().GetMotorcycleRepository().Update(motorcycle); err != nil {
		log.Printf("updating motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not update motorcycle"})
	}

	return c.JSON(motorcycle)
}

// HandleDeleteMotorcycle removes a motorcycle and leaves its history behind
// the soft-delete flag
func HandleDeleteMotorcycle(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetMotorcycleRepository().Delete(motorcycle.ID); err != nil {
		log.Printf("deleting motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete motorcycle"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRecordMileage stores a new odometer reading. The value arrives in the
// caller's display unit as free text and is normalized to kilometers for
// storage. Readings below the current mileage are accepted as corrections.
func HandleRecordMileage(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	var req mileageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}

	system := displaySystem(c)
	parsed := units.ParseInput(req.Mileage)
	km := units.ToStorageUnits(parsed, system, 0)
	if km == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "mileage is required"})
	}
	mileage := int(*km)

	repo := repository.GetGlobalFactory().GetMotorcycleRepository()
	if err := repo.UpdateMileage(motorcycle.ID, mileage, time.Now(), req.Notes); err != nil {
		log.Printf("recording mileage for motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not record mileage"})
	}
	motorcycle.CurrentMileage = &mileage

	// Materialize next-due hints for tasks that have none yet. Existing
	// hints stay untouched so a passed checkpoint still reads as due.
	if err := materializeTaskHints(motorcycle); err != nil {
		log.Printf("refreshing task hints for motorcycle %d failed: %v", motorcycle.ID, err)
	}

	return c.JSON(fiber.Map{
		"motorcycle":              motorcycle,
		"current_mileage_display": formatDistance(motorcycle.CurrentMileage, system),
	})
}

// materializeTaskHints fills in NextDueOdometer for active tasks that never
// had one computed (typically tasks created before the first odometer
// reading). Tasks with an existing hint or a completion record keep theirs.
func materializeTaskHints(motorcycle *models.Motorcycle) error {
	factory := repository.GetGlobalFactory()
	tasks, err := factory.GetTaskRepository().GetByMotorcycleID(motorcycle.ID, false)
	if err != nil {
		return err
	}
	for i := range tasks {
		task := &tasks[i]
		if task.NextDueOdometer != nil || task.IntervalMiles == nil || *task.IntervalMiles <= 0 {
			continue
		}
		last, err := factory.GetRecordRepository().GetLatestForTask(task.ID)
		if err != nil {
			return err
		}
		if last != nil {
			continue
		}

		var next int
		if task.IntervalBase == maintenance.IntervalBaseZero {
			next = (*motorcycle.CurrentMileage / *task.IntervalMiles + 1) * *task.IntervalMiles
		} else {
			next = *motorcycle.CurrentMileage + *task.IntervalMiles
		}
		task.NextDueOdometer = &next
		if err := factory.GetTaskRepository().Update(task); err != nil {
			return err
		}
	}
	return nil
}
