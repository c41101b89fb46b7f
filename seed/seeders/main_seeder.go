package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	fleetSeeder := NewFleetSeeder(s.db)
	if err := fleetSeeder.SeedCars(); err != nil {
		log.Printf("Fleet seeding failed: %v", err)
		return err
	}

	extraSeeder := NewExtraSeeder(s.db)
	if err := extraSeeder.SeedExtras(); err != nil {
		log.Printf("Extra seeding failed: %v", err)
		return err
	}

	promotionSeeder := NewPromotionSeeder(s.db)
	if err := promotionSeeder.SeedPromotions(); err != nil {
		log.Printf("Promotion seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedFleetOnly() error {
	return NewFleetSeeder(s.db).SeedCars()
}

func (s *MainSeeder) SeedExtrasOnly() error {
	return NewExtraSeeder(s.db).SeedExtras()
}

func (s *MainSeeder) SeedPromotionsOnly() error {
	return NewPromotionSeeder(s.db).SeedPromotions()
}
