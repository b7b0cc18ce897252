package database

import (
	"context"
	"log"
	"time"

	"board-inventory-api-server/config"
	"board-inventory-api-server/internal/auth"
	"board-inventory-api-server/internal/inventory"
	"board-inventory-api-server/internal/models"

	"github.com/google/uuid"
)

// SeedAdmin creates the initial admin account if no user with the
// configured email exists. Without it a fresh deployment has no way to
// log in.
func SeedAdmin(store inventory.Store, cfg config.Config) error {
	email := cfg.Seed.AdminEmail
	if email == "" {
		email = "admin@example.com"
	}

	existing, err := store.UserByEmail(context.Background(), email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Println("Admin user already exists. Seeding skipped.")
		return nil
	}

	password := cfg.Seed.AdminPassword
	if password == "" {
		log.Println("No admin password configured. Seeding skipped.")
		return nil
	}

	log.Println("Admin user not found. Seeding...")
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:          uuid.New().String(),
		Email:       email,
		FirstName:   "Admin",
		LastName:    "User",
		Designation: "Administrator",
		Password:    hashedPassword,
		Role:        models.RoleAdmin,
		Permissions: inventory.AvailablePermissions,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := store.InsertUser(context.Background(), admin); err != nil {
		return err
	}

	log.Println("Admin user seeded successfully.")
	return nil
}
