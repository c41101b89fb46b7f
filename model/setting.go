package model

import "time"

// SiteSetting is a key/value row for site-wide switches such as
// maintenance mode.
type SiteSetting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:60;not null"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}
