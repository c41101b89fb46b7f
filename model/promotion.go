package model

import "time"

type Promotion struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Code       string    `json:"code" gorm:"uniqueIndex;not null;size:40"`
	PercentOff int       `json:"percent_off" gorm:"not null"`
	ValidFrom  time.Time `json:"valid_from" gorm:"not null"`
	ValidUntil time.Time `json:"valid_until" gorm:"not null"`
	Active     bool      `json:"active" gorm:"default:true;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"not null"`
}

// ValidAt reports whether the promotion applies at the given instant.
func (p Promotion) ValidAt(t time.Time) bool {
	return p.Active && !t.Before(p.ValidFrom) && !t.After(p.ValidUntil)
}
