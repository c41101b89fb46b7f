package model

import (
	"encoding/json"
	"time"
)

// Reservation lifecycle. Created as confirmed, moved to completed by
// the time-based sweep once the dropoff date has passed, or cancelled
// by explicit customer/admin action. Only confirmed reservations
// participate in the availability check.
const (
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	ID     string  `json:"id" gorm:"primaryKey;type:text;not null"`
	CarID  string  `json:"car_id" gorm:"not null;index;type:text"`
	UserID *string `json:"user_id,omitempty" gorm:"index;type:text"`

	FirstName  string `json:"first_name" gorm:"not null;size:100"`
	LastName   string `json:"last_name" gorm:"not null;size:100"`
	Email      string `json:"email" gorm:"not null;size:255"`
	Phone      string `json:"phone" gorm:"not null;size:30"`
	PostalCode string `json:"postal_code" gorm:"size:10"`

	PickupDate     time.Time `json:"pickup_date" gorm:"not null;index"`
	PickupTime     string    `json:"pickup_time" gorm:"not null;size:5"`
	DropoffDate    time.Time `json:"dropoff_date" gorm:"not null;index"`
	DropoffTime    string    `json:"dropoff_time" gorm:"not null;size:5"`
	PickupAddress  string    `json:"pickup_address" gorm:"not null;type:text"`
	DropoffAddress string    `json:"dropoff_address" gorm:"not null;type:text"`

	MainDriver       json.RawMessage `json:"main_driver,omitempty" gorm:"type:jsonb"`
	AdditionalDriver json.RawMessage `json:"additional_driver,omitempty" gorm:"type:jsonb"`
	ExtraIDs         json.RawMessage `json:"extra_ids,omitempty" gorm:"type:jsonb"`
	PromoCode        string          `json:"promo_code,omitempty" gorm:"size:40"`

	TotalPrice float64 `json:"total_price" gorm:"not null"`
	Currency   string  `json:"currency" gorm:"size:3;default:CHF"`

	Status    string    `json:"status" gorm:"not null;index;size:20"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// ReservationDriver is the persisted shape of a driver record inside a
// reservation row.
type ReservationDriver struct {
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	BirthDate        time.Time `json:"birth_date"`
	LicenseIssueDate time.Time `json:"license_issue_date"`
}
