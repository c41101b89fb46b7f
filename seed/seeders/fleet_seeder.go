package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/alpenrent/alpenrent_api/model"
)

// FleetSeeder handles seeding the demo fleet
type FleetSeeder struct {
	db *gorm.DB
}

func NewFleetSeeder(db *gorm.DB) *FleetSeeder {
	return &FleetSeeder{db: db}
}

func (s *FleetSeeder) SeedCars() error {
	cars := s.getFleet()

	for _, car := range cars {
		var existing model.Car
		if err := s.db.Where("id = ?", car.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&car).Error; err != nil {
					log.Printf("Error creating car %s: %v", car.Name, err)
					return err
				}
				log.Printf("Created car: %s", car.Name)
			} else {
				log.Printf("Error checking car %s: %v", car.Name, err)
				return err
			}
		} else {
			log.Printf("Car %s already exists, skipping", car.Name)
		}
	}

	log.Println("Fleet seeding completed successfully")
	return nil
}

func (s *FleetSeeder) getFleet() []model.Car {
	now := time.Now()

	return []model.Car{
		{
			ID:           "car_vw_golf",
			Name:         "VW Golf",
			Brand:        "Volkswagen",
			Category:     "compact",
			PlateNumber:  "ZH 401 223",
			Seats:        5,
			Transmission: "manual",
			PricePerDay:  69.00,
			Rentable:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "car_skoda_octavia",
			Name:         "Škoda Octavia Combi",
			Brand:        "Škoda",
			Category:     "estate",
			PlateNumber:  "ZH 518 904",
			Seats:        5,
			Transmission: "automatic",
			PricePerDay:  89.00,
			Rentable:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "car_bmw_320d",
			Name:         "BMW 320d Touring",
			Brand:        "BMW",
			Category:     "premium",
			PlateNumber:  "ZH 662 118",
			Seats:        5,
			Transmission: "automatic",
			PricePerDay:  139.00,
			Rentable:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "car_vw_t6",
			Name:         "VW T6 Transporter",
			Brand:        "Volkswagen",
			Category:     "van",
			PlateNumber:  "ZH 733 560",
			Seats:        9,
			Transmission: "manual",
			PricePerDay:  119.00,
			Rentable:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "car_tesla_model3",
			Name:         "Tesla Model 3",
			Brand:        "Tesla",
			Category:     "electric",
			PlateNumber:  "ZH 890 041",
			Seats:        5,
			Transmission: "automatic",
			PricePerDay:  149.00,
			Rentable:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "car_fiat_500",
			Name:         "Fiat 500",
			Brand:        "Fiat",
			Category:     "city",
			PlateNumber:  "ZH 912 375",
			Seats:        4,
			Transmission: "manual",
			PricePerDay:  55.00,
			Rentable:     false, // in the workshop
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
