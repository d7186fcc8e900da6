package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

// HandleListNotifications returns the caller's notifications, newest first
// Security: API Key required via router middleware
func HandleListNotifications(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	offset, limit := parsePagination(c)
	unreadOnly := c.QueryBool("unread", false)

	repo := repository.GetGlobalFactory().GetNotificationRepository()
	notifications, err := repo.GetByUserID(user.UserID, unreadOnly, offset, limit)
	if err != nil {
		log.Printf("listing notifications for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load notifications"})
	}
	unread, err := repo.CountUnread(user.UserID)
	if err != nil {
		log.Printf("counting unread notifications for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load notifications"})
	}

	return c.JSON(fiber.Map{"notifications": notifications, "unread": unread})
}

// HandleMarkNotificationRead flags one of the caller's notifications as read
func HandleMarkNotificationRead(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid notification id"})
	}

	if err := repository.GetGlobalFactory().GetNotificationRepository().MarkAsRead(uint(id), user.UserID); err != nil {
		log.Printf("marking notification %d read failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not update notification"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
