package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/maintenance"
	"github.com/rideway/rideway/internal/pkg/statistics"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

// upcomingWindow is how far ahead a date-based task may be and still show up
// in the dashboard's upcoming list.
const upcomingWindow = 14 * 24 * time.Hour

// HandleGetDashboard assembles the fleet overview: overdue and upcoming tasks
// across all of the caller's motorcycles, year-to-date spend, unread alerts,
// and the cached fleet counters.
// Security: API Key required via router middleware
func HandleGetDashboard(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	factory := repository.GetGlobalFactory()
	system := displaySystem(c)
	now := time.Now()

	motorcycles, err := factory.GetMotorcycleRepository().GetByUserID(user.UserID, 0, 200)
	if err != nil {
		log.Printf("dashboard: listing motorcycles for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load dashboard"})
	}

	overdue := make([]fiber.Map, 0)
	upcoming := make([]fiber.Map, 0)
	for i := range motorcycles {
		motorcycle := &motorcycles[i]
		tasks, err := factory.GetTaskRepository().GetByMotorcycleID(motorcycle.ID, false)
		if err != nil {
			log.Printf("dashboard: listing tasks for motorcycle %d failed: %v", motorcycle.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load dashboard"})
		}
		for j := range tasks {
			task := &tasks[j]
			status, err := taskStatus(task, motorcycle)
			if err != nil {
				log.Printf("dashboard: computing status for task %d failed: %v", task.ID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load dashboard"})
			}

			entry := fiber.Map{
				"motorcycle_uuid": motorcycle.UUID,
				"motorcycle_name": motorcycle.Name,
				"task_uuid":       task.UUID,
				"task_name":       task.Name,
				"status":          statusPayload(status, system),
			}
			switch {
			case status.IsDue:
				overdue = append(overdue, entry)
			case isUpcoming(status, now):
				upcoming = append(upcoming, entry)
			}
		}
	}

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	costYTD, err := factory.GetRecordRepository().TotalCostSince(user.UserID, yearStart)
	if err != nil {
		log.Printf("dashboard: cost aggregation for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load dashboard"})
	}

	unread, err := factory.GetNotificationRepository().CountUnread(user.UserID)
	if err != nil {
		log.Printf("dashboard: unread count for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load dashboard"})
	}

	stats := statistics.GetStatistics()

	return c.JSON(fiber.Map{
		"motorcycles":          motorcycles,
		"overdue":              overdue,
		"upcoming":             upcoming,
		"cost_year_to_date":    costYTD,
		"unread_notifications": unread,
		"fleet_statistics": fiber.Map{
			"total_motorcycles": stats.TotalMotorcycles,
			"total_records":     stats.TotalRecords,
			"total_users":       stats.TotalUsers,
		},
	})
}

// isUpcoming reports whether a not-yet-due task is close enough to surface:
// at least 75% through its mileage interval, or date-due within two weeks.
func isUpcoming(status maintenance.Status, now time.Time) bool {
	if status.CompletionPercentage != nil && *status.CompletionPercentage >= 75 {
		return true
	}
	if status.DueDate != nil && status.DueDate.Sub(now) <= upcomingWindow {
		return true
	}
	return false
}
