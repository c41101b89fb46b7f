package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/alpenrent/alpenrent_api/model"
)

// ExtraSeeder handles seeding the bookable extra services
type ExtraSeeder struct {
	db *gorm.DB
}

func NewExtraSeeder(db *gorm.DB) *ExtraSeeder {
	return &ExtraSeeder{db: db}
}

func (s *ExtraSeeder) SeedExtras() error {
	extras := s.getExtras()

	for _, extra := range extras {
		var existing model.Extra
		if err := s.db.Where("id = ?", extra.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&extra).Error; err != nil {
					log.Printf("Error creating extra %s: %v", extra.Label, err)
					return err
				}
				log.Printf("Created extra: %s", extra.Label)
			} else {
				log.Printf("Error checking extra %s: %v", extra.Label, err)
				return err
			}
		} else {
			log.Printf("Extra %s already exists, skipping", extra.Label)
		}
	}

	log.Println("Extra seeding completed successfully")
	return nil
}

func (s *ExtraSeeder) getExtras() []model.Extra {
	now := time.Now()

	return []model.Extra{
		{ID: "extra_child_seat", Label: "Kindersitz", PricePerDay: 8.00, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "extra_gps", Label: "Navigationsgerät", PricePerDay: 5.00, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "extra_insurance", Label: "Vollkaskoversicherung ohne Selbstbehalt", PricePerDay: 19.00, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "extra_winter_tires", Label: "Winterreifen", PricePerDay: 6.00, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "extra_roof_box", Label: "Dachbox", PricePerDay: 12.00, Active: true, CreatedAt: now, UpdatedAt: now},
	}
}
