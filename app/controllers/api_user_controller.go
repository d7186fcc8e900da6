package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/units"
	"github.com/rideway/rideway/internal/pkg/usercontext"
)

type settingsRequest struct {
	DistanceUnit string `json:"distance_unit"`
}

// HandleGetUserAccount returns account information for the authenticated user
// Security: API Key required via router middleware
func HandleGetUserAccount(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)
	if !user.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	factory := repository.GetGlobalFactory()
	account, err := factory.GetUserRepository().GetByID(user.UserID)
	if err != nil {
		log.Printf("loading account %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load account"})
	}
	settings, err := factory.GetUserRepository().GetSettings(user.UserID)
	if err != nil {
		log.Printf("loading settings for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load account"})
	}

	return c.JSON(fiber.Map{
		"id":                   account.ID,
		"name":                 account.Name,
		"email":                account.Email,
		"distance_unit":        settings.DistanceUnit,
		"api_key_prefix":       settings.APIKeyPrefix,
		"api_key_created_at":   formatTimePtr(settings.APIKeyCreatedAt),
		"api_key_last_used_at": formatTimePtr(settings.APIKeyLastUsedAt),
		"created_at":           account.CreatedAt.UTC(),
	})
}

// HandleUpdateUserSettings changes the caller's display preferences
func HandleUpdateUserSettings(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	if req.DistanceUnit != string(units.Metric) && req.DistanceUnit != string(units.Imperial) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "distance_unit must be metric or imperial"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	settings, err := repo.GetSettings(user.UserID)
	if err != nil {
		log.Printf("loading settings for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load settings"})
	}
	settings.DistanceUnit = req.DistanceUnit
	if err := repo.SaveSettings(settings); err != nil {
		log.Printf("saving settings for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not save settings"})
	}

	return c.JSON(fiber.Map{"distance_unit": settings.DistanceUnit})
}

// HandleIssueAPIKey generates a fresh API key, replacing any existing one.
// The raw secret appears once in this response and is stored only as a hash.
func HandleIssueAPIKey(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	settings, err := repo.GetSettings(user.UserID)
	if err != nil {
		log.Printf("loading settings for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not issue API key"})
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		log.Printf("issuing API key for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not issue API key"})
	}
	if err := repo.SaveSettings(settings); err != nil {
		log.Printf("saving API key for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not issue API key"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"api_key":        rawKey,
		"api_key_prefix": settings.APIKeyPrefix,
	})
}

// HandleRevokeAPIKey revokes the caller's API key
func HandleRevokeAPIKey(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetUserRepository()
	settings, err := repo.GetSettings(user.UserID)
	if err != nil {
		log.Printf("loading settings for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not revoke API key"})
	}

	settings.RevokeAPIKey()
	if err := repo.SaveSettings(settings); err != nil {
		log.Printf("revoking API key for user %d failed: %v", user.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not revoke API key"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
