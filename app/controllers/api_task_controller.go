package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/maintenance"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

type taskRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	IntervalMiles *int   `json:"interval_miles"`
	IntervalDays  *int   `json:"interval_days"`
	IntervalBase  string `json:"interval_base"`
	Priority      string `json:"priority"`
	IsRecurring   *bool  `json:"is_recurring"`
}

// ownedTaskByUUID resolves a task and its motorcycle, enforcing ownership.
// On failure the response has been written; callers bail out when task is nil.
func ownedTaskByUUID(c *fiber.Ctx) (*models.MaintenanceTask, *models.Motorcycle, error) {
	user := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()

	task, err := factory.GetTaskRepository().GetByUUID(c.Params("uuid"))
	if err != nil || task == nil {
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "task not found"})
	}
	motorcycle, err := factory.GetMotorcycleRepository().GetByID(task.MotorcycleID)
	if err != nil || motorcycle == nil || motorcycle.UserID != user.UserID {
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "task not found"})
	}
	return task, motorcycle, nil
}

// HandleListTasks returns the maintenance tasks defined for a motorcycle
// Security: API Key required via router middleware
func HandleListTasks(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	includeArchived := c.QueryBool("include_archived", false)
	tasks, err := repository.GetGlobalFactory().GetTaskRepository().GetByMotorcycleID(motorcycle.ID, includeArchived)
	if err != nil {
		log.Printf("listing tasks for motorcycle %d failed: %v", motorcycle.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load tasks"})
	}

	return c.JSON(fiber.Map{"tasks": tasks})
}

// HandleCreateTask defines a new maintenance task for a motorcycle. The
// initial next-due hints are derived from the current odometer reading and
// purchase date via the calculator.
func HandleCreateTask(c *fiber.Ctx) error {
	motorcycle, err := ownedMotorcycleByUUID(c, c.Params("uuid"))
	if motorcycle == nil {
		return err
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}

	task := models.MaintenanceTask{
		MotorcycleID:  motorcycle.ID,
		Name:          req.Name,
		Description:   req.Description,
		IntervalMiles: req.IntervalMiles,
		IntervalDays:  req.IntervalDays,
		IntervalBase:  req.IntervalBase,
		Priority:      req.Priority,
		IsRecurring:   true,
	}
	if task.IntervalBase == "" {
		task.IntervalBase = maintenance.IntervalBaseCurrent
	}
	if task.Priority == "" {
		task.Priority = maintenance.PriorityLow
	}
	if req.IsRecurring != nil {
		task.IsRecurring = *req.IsRecurring
	}
	if motorcycle.CurrentMileage != nil {
		task.BaseOdometer = *motorcycle.CurrentMileage
	}
	if err := task.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	// Seed the stored hints from a fresh projection.
	status := maintenance.Compute(task.CalculatorInput(), maintenance.MotorcycleInput{
		CurrentMileage: motorcycle.CurrentMileage,
		PurchaseDate:   motorcycle.PurchaseDate,
	}, nil, time.Now())
	task.NextDueOdometer = status.DueMileage
	task.NextDueDate = status.DueDate

	if err := repository.GetGlobalFactory().GetTaskRepository().Create(&task); err != nil {
		log.Printf("creating task failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not create task"})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleGetTask returns a task together with its current due projection
func HandleGetTask(c *fiber.Ctx) error {
	task, motorcycle, err := ownedTaskByUUID(c)
	if task == nil {
		return err
	}

	status, err := taskStatus(task, motorcycle)
	if err != nil {
		log.Printf("computing status for task %d failed: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not compute task status"})
	}

	return c.JSON(fiber.Map{"task": task, "status": statusPayload(status, displaySystem(c))})
}

// HandleUpdateTask updates a task definition
func HandleUpdateTask(c *fiber.Ctx) error {
	task, _, err := ownedTaskByUUID(c)
	if task == nil {
		return err
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}

	if req.Name != "" {
		task.Name = req.Name
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.IntervalMiles != nil {
		task.IntervalMiles = req.IntervalMiles
	}
	if req.IntervalDays != nil {
		task.IntervalDays = req.IntervalDays
	}
	if req.IntervalBase != "" {
		task.IntervalBase = req.IntervalBase
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.IsRecurring != nil {
		task.IsRecurring = *req.IsRecurring
	}
	if err := task.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	if err := repository.GetGlobalFactory().GetTaskRepository().Update(task); err != nil {
		log.Printf("updating task %d failed: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not update task"})
	}

	return c.JSON(task)
}

// HandleArchiveTask retires a task; its records stay queryable
func HandleArchiveTask(c *fiber.Ctx) error {
	task, _, err := ownedTaskByUUID(c)
	if task == nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetTaskRepository().Archive(task.ID); err != nil {
		log.Printf("archiving task %d failed: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not archive task"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteTask removes a task entirely
func HandleDeleteTask(c *fiber.Ctx) error {
	task, _, err := ownedTaskByUUID(c)
	if task == nil {
		return err
	}

	if err := repository.GetGlobalFactory().GetTaskRepository().Delete(task.ID); err != nil {
		log.Printf("deleting task %d failed: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete task"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
