package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/database"
	"github.com/rideway/rideway/internal/pkg/env"
)

// seed creates a user account and prints a fresh API key. The API itself has
// no registration endpoint, so this is how accounts get provisioned.
func main() {
	env.SetupEnvFile()

	if len(os.Args) < 4 {
		printUsage()
		os.Exit(1)
	}
	name, email, password := os.Args[1], os.Args[2], os.Args[3]

	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())
	repo := repository.GetGlobalFactory().GetUserRepository()

	if _, err := repo.GetByEmail(email); err == nil {
		log.Fatalf("User %s already exists", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Checking for existing user failed: %v", err)
	}

	user, err := models.CreateUser(name, email, password)
	if err != nil {
		log.Fatalf("Creating user failed: %v", err)
	}
	if err := repo.Create(user); err != nil {
		log.Fatalf("Saving user failed: %v", err)
	}

	settings, err := repo.GetSettings(user.ID)
	if err != nil {
		log.Fatalf("Loading settings for user %d failed: %v", user.ID, err)
	}
	apiKey, err := settings.IssueAPIKey()
	if err != nil {
		log.Fatalf("Issuing API key failed: %v", err)
	}
	if err := repo.SaveSettings(settings); err != nil {
		log.Fatalf("Saving API key failed: %v", err)
	}

	fmt.Printf("Created user %s (id %d)\n", email, user.ID)
	fmt.Printf("API key (shown once, store it now): %s\n", apiKey)
}

func printUsage() {
	fmt.Println("Usage: seed <name> <email> <password>")
	fmt.Println("Creates a user account and prints its API key.")
}
