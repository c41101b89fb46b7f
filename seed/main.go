package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alpenrent/alpenrent_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, fleet, extras, promotions")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := gorm.Open(postgres.Open(databaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "fleet":
		log.Println("Seeding fleet only...")
		if err := mainSeeder.SeedFleetOnly(); err != nil {
			log.Fatalf("Failed to seed fleet: %v", err)
		}
	case "extras":
		log.Println("Seeding extras only...")
		if err := mainSeeder.SeedExtrasOnly(); err != nil {
			log.Fatalf("Failed to seed extras: %v", err)
		}
	case "promotions":
		log.Println("Seeding promotions only...")
		if err := mainSeeder.SeedPromotionsOnly(); err != nil {
			log.Fatalf("Failed to seed promotions: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'fleet', 'extras', or 'promotions'", *seedType)
	}
}

func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "alpenrent_api")
	sslmode := envOr("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func showHelp() {
	fmt.Println("Database seeder")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run ./seed [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -type string   Type of seeding: all, fleet, extras, promotions (default \"all\")")
	fmt.Println("  -help          Show this message")
}
