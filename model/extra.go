package model

import "time"

// Extra is a bookable add-on service (child seat, GPS, extra insurance).
type Extra struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Label       string    `json:"label" gorm:"not null;size:120"`
	PricePerDay float64   `json:"price_per_day" gorm:"not null"`
	Active      bool      `json:"active" gorm:"default:true;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`
}
