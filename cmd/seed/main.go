package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// seedPassword is the password every seeded user gets.
const seedPassword = "password"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Product{},
		&model.Post{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	products := repository.NewProductRepository(gormDB)
	posts := repository.NewPostRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	seedUsers := []model.User{
		{Name: "Jane Doe", Email: "jane@example.com", PasswordHash: string(hash)},
		{Name: "John Smith", Email: "john@example.com", PasswordHash: string(hash)},
	}
	for i := range seedUsers {
		if existing, err := users.FindByEmail(ctx, seedUsers[i].Email); err == nil {
			seedUsers[i] = *existing
			log.Printf("User %s already exists, skipping", seedUsers[i].Email)
			continue
		}
		if err := users.Create(ctx, &seedUsers[i]); err != nil {
			log.Fatalf("Failed to create user %s: %v", seedUsers[i].Email, err)
		}
		log.Printf("Created user %s", seedUsers[i].Email)
	}

	description := "Sourced from high-altitude farms in Colombia."
	seedProducts := []model.Product{
		{UserID: seedUsers[0].ID, Name: "Organic Coffee Beans", Description: &description, Price: decimal.NewFromFloat(19.99)},
		{UserID: seedUsers[1].ID, Name: "Ceramic Pour-Over Set", Price: decimal.NewFromFloat(34.50)},
	}
	for i := range seedProducts {
		if err := products.Create(ctx, &seedProducts[i]); err != nil {
			log.Fatalf("Failed to create product %q: %v", seedProducts[i].Name, err)
		}
		log.Printf("Created product %q", seedProducts[i].Name)
	}

	seedPosts := []model.Post{
		{ProductID: seedProducts[0].ID, Content: "Check out this way to make your coffee"},
		{ProductID: seedProducts[0].ID, Content: "Back in stock this week"},
	}
	for i := range seedPosts {
		if err := posts.Create(ctx, &seedPosts[i]); err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}
	}
	log.Printf("Created %d posts", len(seedPosts))

	log.Println("Seed complete")
}
