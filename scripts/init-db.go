package main

import (
	"fmt"
	"log"
	"time"

	"pos_manager/internal/config"
	"pos_manager/internal/database"
	"pos_manager/internal/models"
	"pos_manager/internal/repository"
	"pos_manager/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Order{},
		&models.Customer{},
		&models.Table{},
		&models.Category{},
		&models.Dish{},
		&models.LoginHistory{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.Customer{},
		&models.Table{},
		&models.Category{},
		&models.Dish{},
		&models.LoginHistory{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Create default admin user
	fmt.Println("Creating default admin user...")
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewLoginHistoryRepository(db)
	userService := services.NewUserService(userRepo, historyRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Second)

	if existing, err := userRepo.GetByEmail("admin@example.com"); err == nil && existing != nil {
		fmt.Println("Admin user already exists")
	} else {
		_, err := userService.Register("Admin", "admin@example.com", "0000000000", "admin123", string(models.RoleAdmin))
		if err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			fmt.Println("Admin user created successfully")
			fmt.Println("Email: admin@example.com")
			fmt.Println("Password: admin123")
		}
	}

	// Seed the dining tables
	fmt.Println("Creating tables for the floor...")
	tableRepo := repository.NewTableRepository(db)
	for number := 1; number <= 12; number++ {
		seats := 4
		if number%4 == 0 {
			seats = 6
		}
		table := &models.Table{Number: number, Seats: seats, Status: "Available"}
		if err := tableRepo.Create(table); err != nil {
			log.Printf("Warning: Failed to create table %d: %v", number, err)
		}
	}

	// Seed the menu catalog
	fmt.Println("Creating categories and dishes...")
	categoryRepo := repository.NewCategoryRepository(db)
	dishRepo := repository.NewDishRepository(db)

	catalog := map[string][]struct {
		name  string
		price models.Amount
	}{
		"Starters": {
			{"Paneer Tikka", 18000},
			{"Veg Spring Rolls", 12000},
			{"Chicken 65", 22000},
		},
		"Main Course": {
			{"Butter Chicken", 32000},
			{"Dal Makhani", 24000},
			{"Veg Biryani", 26000},
		},
		"Breads": {
			{"Butter Naan", 4000},
			{"Garlic Naan", 5000},
		},
		"Beverages": {
			{"Masala Chai", 3000},
			{"Sweet Lassi", 6000},
		},
	}

	for categoryName, dishes := range catalog {
		category := &models.Category{Name: categoryName}
		if err := categoryRepo.Create(category); err != nil {
			log.Printf("Warning: Failed to create category %s: %v", categoryName, err)
			continue
		}
		for _, d := range dishes {
			dish := &models.Dish{
				Name:       d.name,
				CategoryID: category.ID,
				Price:      d.price,
				Available:  true,
			}
			if err := dishRepo.Create(dish); err != nil {
				log.Printf("Warning: Failed to create dish %s: %v", d.name, err)
			}
		}
	}

	fmt.Println("Database initialization completed successfully!")
}
