package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/maintenance"
	"github.com/rideway/rideway/internal/pkg/units"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

const defaultPageSize = 50

// parsePagination reads offset/limit query params with sane bounds
func parsePagination(c *fiber.Ctx) (int, int) {
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	return offset, limit
}

// displaySystem resolves the caller's distance system from the user context
func displaySystem(c *fiber.Ctx) units.System {
	if usercontext.GetUserContext(c).DistanceUnit == string(units.Imperial) {
		return units.Imperial
	}
	return units.Metric
}

// ownedMotorcycleByUUID loads a motorcycle by UUID and checks it belongs to
// the caller. A foreign motorcycle is reported as not found so its existence
// does not leak. On failure the 404 response has already been written; the
// caller must bail out with the returned error when the motorcycle is nil.
func ownedMotorcycleByUUID(c *fiber.Ctx, uuid string) (*models.Motorcycle, error) {
	user := usercontext.GetUserContext(c)
	motorcycle, err := repository.GetGlobalFactory().GetMotorcycleRepository().GetByUUID(uuid)
	if err != nil || motorcycle == nil || motorcycle.UserID != user.UserID {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "motorcycle not found"})
	}
	return motorcycle, nil
}

// taskStatus derives the due projection for a task against its motorcycle and
// the latest completed record. Every place that shows due state goes through
// this; due state is never read from a stored column.
func taskStatus(task *models.MaintenanceTask, motorcycle *models.Motorcycle) (maintenance.Status, error) {
	last, err := repository.GetGlobalFactory().GetRecordRepository().GetLatestForTask(task.ID)
	if err != nil {
		return maintenance.Status{}, err
	}
	return maintenance.Compute(task.CalculatorInput(), maintenance.MotorcycleInput{
		CurrentMileage: motorcycle.CurrentMileage,
		PurchaseDate:   motorcycle.PurchaseDate,
	}, last.CalculatorInput(), time.Now()), nil
}

// statusPayload serializes a due projection. The calculator's fields go out
// verbatim (kilometers); the *_display fields carry the caller's preferred
// units for direct rendering.
func statusPayload(status maintenance.Status, system units.System) fiber.Map {
	return fiber.Map{
		"due_date":              formatTimePtr(status.DueDate),
		"due_mileage":           status.DueMileage,
		"is_due":                status.IsDue,
		"remaining_miles":       status.RemainingMiles,
		"completion_percentage": status.CompletionPercentage,
		"priority":              status.Priority,
		"due_mileage_display":   formatDistance(status.DueMileage, system),
		"remaining_display":     formatDistance(status.RemainingMiles, system),
	}
}

// formatDistance renders a stored kilometer value in the display system
func formatDistance(km *int, system units.System) string {
	return units.Format(units.ToDisplayUnits(intPtrToFloat(km), system, 0), system, 0)
}

func intPtrToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// formatTimePtr renders an optional timestamp as UTC RFC3339, nil staying nil
func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// recomputeTaskNextDue refreshes the stored next-due hints after a completion
// record. The stored fields are only hints; display paths always re-derive.
func recomputeTaskNextDue(task *models.MaintenanceTask, record *models.MaintenanceRecord) {
	if task.IntervalMiles != nil && record.Mileage != nil {
		next := *record.Mileage + *task.IntervalMiles
		task.NextDueOdometer = &next
		record.NextDueOdometer = &next
	}
	if task.IntervalDays != nil {
		next := record.Date.AddDate(0, 0, *task.IntervalDays)
		task.NextDueDate = &next
		record.NextDueDate = &next
	}
}
