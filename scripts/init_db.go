package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"agri-bnpl-engine/internal/config"
	"agri-bnpl-engine/internal/services/database"
	"agri-bnpl-engine/internal/services/dataset"
)

func main() {
	fmt.Println("=== Reference Data Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = cfg.DatabaseURL()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("📡 Connecting to PostgreSQL...")
	db, err := database.NewFromURL(databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database successfully!")
	fmt.Println()

	fmt.Println("📖 Reading SQL schema file...")
	sqlBytes, err := os.ReadFile("scripts/init_database.sql")
	if err != nil {
		fmt.Printf("❌ Failed to read SQL file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("🚀 Executing database schema...")
	if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
		fmt.Printf("❌ Failed to execute SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Database schema executed successfully!")
	fmt.Println()

	fmt.Printf("📖 Loading seed data from %s/...\n", cfg.DataDir)
	store, err := dataset.Load(cfg.DataDir)
	if err != nil {
		fmt.Printf("❌ Failed to load seed data: %v\n", err)
		os.Exit(1)
	}

	farmerRepo := database.NewFarmerRepository(db)
	farmers := store.Farmers()
	for i := range farmers {
		if err := farmerRepo.Upsert(ctx, &farmers[i]); err != nil {
			fmt.Printf("❌ Failed to upsert farmer %s: %v\n", farmers[i].FarmerID, err)
			os.Exit(1)
		}
	}
	fmt.Printf("   👨‍🌾 Farmers seeded: %d\n", len(farmers))

	catalogRepo := database.NewCatalogRepository(db)
	catalog := store.Products()
	for i := range catalog {
		if err := catalogRepo.Upsert(ctx, &catalog[i]); err != nil {
			fmt.Printf("❌ Failed to upsert product %s: %v\n", catalog[i].ProductID, err)
			os.Exit(1)
		}
	}
	fmt.Printf("   📦 Products seeded: %d\n", len(catalog))

	// Verify with a quick count readback
	fmt.Println()
	fmt.Println("🔍 Verifying database setup...")
	var farmerCount, productCount int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM farmers").Scan(&farmerCount); err == nil {
		fmt.Printf("   Farmers in database: %d\n", farmerCount)
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&productCount); err == nil {
		fmt.Printf("   Products in database: %d\n", productCount)
	}

	fmt.Println()
	fmt.Println("🎉 Database initialization completed successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Start the API: go run ./cmd/server")
	fmt.Println("  2. Check health:  curl localhost:8080/health")
}
