package main

import (
	"fmt"
	"log"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/cache"
	"github.com/rideway/rideway/internal/pkg/database"
	"github.com/rideway/rideway/internal/pkg/env"
	"github.com/rideway/rideway/internal/pkg/router"
	"github.com/rideway/rideway/internal/pkg/scheduler"
	"github.com/rideway/rideway/internal/pkg/throttle"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	// background jobs: throttle sweep, due scan, statistics refresh
	jobs := scheduler.New(repository.GetGlobalRepositories(), throttle.NewDefault())
	if err := jobs.Start(); err != nil {
		log.Fatalf("starting scheduler: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Rideway",
	})
	app.Hooks().OnShutdown(func() error {
		jobs.Stop()
		return nil
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}
