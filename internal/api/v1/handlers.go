package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to controllers to keep behavior consistent with any future
	// server-rendered surface.
	"github.com/rideway/rideway/app/controllers"
	"github.com/rideway/rideway/internal/pkg/middleware"
)

// APIServer implements the v1 API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// RegisterHandlers attaches the v1 routes to the given router group. Every
// route except ping sits behind API key authentication.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)

	protected := router.Group("", middleware.APIKeyAuthMiddleware())

	// user account
	protected.Get("/user/profile", controllers.HandleGetUserAccount)
	protected.Put("/user/settings", controllers.HandleUpdateUserSettings)
	protected.Post("/user/api-key", controllers.HandleIssueAPIKey)
	protected.Delete("/user/api-key", controllers.HandleRevokeAPIKey)

	// motorcycles
	protected.Get("/motorcycles", controllers.HandleListMotorcycles)
	protected.Post("/motorcycles", controllers.HandleCreateMotorcycle)
	protected.Get("/motorcycles/:uuid", controllers.HandleGetMotorcycle)
	protected.Put("/motorcycles/:uuid", controllers.HandleUpdateMotorcycle)
	protected.Delete("/motorcycles/:uuid", controllers.HandleDeleteMotorcycle)
	protected.Post("/motorcycles/:uuid/mileage", controllers.HandleRecordMileage)
	protected.Get("/motorcycles/:uuid/maintenance", controllers.HandleGetMaintenanceStatus)

	// maintenance tasks
	protected.Get("/motorcycles/:uuid/tasks", controllers.HandleListTasks)
	protected.Post("/motorcycles/:uuid/tasks", controllers.HandleCreateTask)
	protected.Get("/tasks/:uuid", controllers.HandleGetTask)
	protected.Put("/tasks/:uuid", controllers.HandleUpdateTask)
	protected.Post("/tasks/:uuid/archive", controllers.HandleArchiveTask)
	protected.Delete("/tasks/:uuid", controllers.HandleDeleteTask)

	// maintenance records
	protected.Get("/motorcycles/:uuid/records", controllers.HandleListRecords)
	protected.Post("/motorcycles/:uuid/records", controllers.HandleCreateRecord)
	protected.Get("/records/:uuid", controllers.HandleGetRecord)
	protected.Put("/records/:uuid", controllers.HandleUpdateRecord)
	protected.Delete("/records/:uuid", controllers.HandleDeleteRecord)

	// dashboard, export, notifications
	protected.Get("/dashboard", controllers.HandleGetDashboard)
	protected.Get("/export/records", controllers.HandleExportRecords)
	protected.Get("/notifications", controllers.HandleListNotifications)
	protected.Post("/notifications/:id/read", controllers.HandleMarkNotificationRead)
}
