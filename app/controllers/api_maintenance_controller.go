package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/repository"
)

// HandleGetMaintenanceStatus returns the due projection for every active task
// of a motorcycle. The projection is derived fresh on each request from the
// task, the current mileage, and the latest record.
// Security: API Key required via router middleware
func HandleGetMaintenanceStatus(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	tasks, err := repository.GetGlobalFactory().GetTaskRepository().GetByMotorcycleID(motorcycle.ID, false)
	if err != nil {
		log.Printf("listing tasks for motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load tasks"})
	}

	system := displaySystem(c)
	items := make([]fiber.Map, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		status, err := taskStatus(task, motorcycle)
		if err != nil {
			log.Printf("computing status for task %d failed: %v", task.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not compute task status"})
		}
		items = append(items, fiber.Map{
			"task":   task,
			"status": statusPayload(status, system),
		})
	}

	return c.JSON(fiber.Map{
		"motorcycle":              motorcycle,
		"current_mileage_display": formatDistance(motorcycle.CurrentMileage, system),
		"maintenance":             items,
	})
}
