package model

import "time"

type Car struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Name         string    `json:"name" gorm:"not null;size:120"`
	Brand        string    `json:"brand" gorm:"size:80"`
	Category     string    `json:"category" gorm:"index;size:50"`
	PlateNumber  string    `json:"plate_number" gorm:"uniqueIndex;size:20"`
	Seats        int       `json:"seats" gorm:"default:5;not null"`
	Transmission string    `json:"transmission" gorm:"size:20"`
	PricePerDay  float64   `json:"price_per_day" gorm:"not null"`
	Rentable     bool      `json:"rentable" gorm:"default:true;not null;index"`
	ImageURL     string    `json:"image_url" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}
