package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/alpenrent/alpenrent_api/model"
)

// PromotionSeeder handles seeding demo promotion codes
type PromotionSeeder struct {
	db *gorm.DB
}

func NewPromotionSeeder(db *gorm.DB) *PromotionSeeder {
	return &PromotionSeeder{db: db}
}

func (s *PromotionSeeder) SeedPromotions() error {
	promotions := s.getPromotions()

	for _, promo := range promotions {
		var existing model.Promotion
		if err := s.db.Where("id = ?", promo.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&promo).Error; err != nil {
					log.Printf("Error creating promotion %s: %v", promo.Code, err)
					return err
				}
				log.Printf("Created promotion: %s", promo.Code)
			} else {
				log.Printf("Error checking promotion %s: %v", promo.Code, err)
				return err
			}
		} else {
			log.Printf("Promotion %s already exists, skipping", promo.Code)
		}
	}

	log.Println("Promotion seeding completed successfully")
	return nil
}

func (s *PromotionSeeder) getPromotions() []model.Promotion {
	now := time.Now()

	return []model.Promotion{
		{
			ID:         "promo_welcome10",
			Code:       "WELCOME10",
			PercentOff: 10,
			ValidFrom:  now,
			ValidUntil: now.AddDate(1, 0, 0),
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "promo_summer25",
			Code:       "SOMMER25",
			PercentOff: 25,
			ValidFrom:  time.Date(now.Year(), time.June, 1, 0, 0, 0, 0, time.Local),
			ValidUntil: time.Date(now.Year(), time.August, 31, 23, 59, 59, 0, time.Local),
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}
