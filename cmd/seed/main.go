package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const bcryptCost = 10

// SeedUser describes one fixed account to insert.
type SeedUser struct {
	Email    string
	FullName string
	Password string
	Role     model.Role
}

var seedUsers = []SeedUser{
	{
		Email:    "admin@example.com",
		FullName: "Super Admin",
		Password: "password123",
		Role:     model.RoleSuperAdmin,
	},
	{
		Email:    "editor@example.com",
		FullName: "Editor One",
		Password: "password123",
		Role:     model.RoleEditor,
	},
	{
		Email:    "subscriber@example.com",
		FullName: "Subscriber One",
		Password: "password123",
		Role:     model.RoleSubscriber,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding users into database...")
	created, skipped, err := seed(ctx, userRepo, seedUsers)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Skipped (already existed): %d", skipped)
}

// seed inserts the fixed accounts, skipping any whose email already exists.
// Safe to re-run.
func seed(ctx context.Context, repo repository.UserRepository, users []SeedUser) (created int, skipped int, err error) {
	for _, su := range users {
		_, err := repo.FindByEmail(ctx, su.Email)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("error checking user %s: %w", su.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcryptCost)
		if err != nil {
			return created, skipped, fmt.Errorf("error hashing password for %s: %w", su.Email, err)
		}

		user := &model.User{
			Email:        su.Email,
			FullName:     su.FullName,
			PasswordHash: string(hashed),
			Role:         su.Role,
			IsActive:     true,
		}
		if err := repo.Create(ctx, user); err != nil {
			return created, skipped, fmt.Errorf("error creating user %s: %w", su.Email, err)
		}
		created++
	}

	return created, skipped, nil
}
