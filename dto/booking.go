package dto

import "time"

const DateLayout = "2006-01-02"

// DriverRequest carries a driver record on a booking request. Dates use
// the 2006-01-02 layout.
type DriverRequest struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	BirthDate        string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	LicenseIssueDate string `json:"license_issue_date" validate:"required,datetime=2006-01-02"`
}

type CreateBookingRequest struct {
	CarID string `json:"car_id" validate:"required"`

	PickupDate  string `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	PickupTime  string `json:"pickup_time" validate:"required"`
	DropoffDate string `json:"dropoff_date" validate:"required,datetime=2006-01-02"`
	DropoffTime string `json:"dropoff_time" validate:"required"`

	PickupAddress  string `json:"pickup_address" validate:"required"`
	DropoffAddress string `json:"dropoff_address" validate:"required"`

	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	PostalCode string `json:"postal_code" validate:"omitempty"`

	MainDriver       *DriverRequest `json:"main_driver,omitempty"`
	AdditionalDriver *DriverRequest `json:"additional_driver,omitempty"`

	ExtraIDs  []string `json:"extra_ids,omitempty"`
	PromoCode string   `json:"promo_code,omitempty"`
}

func (r CreateBookingRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ExtraLine struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	PricePerDay float64 `json:"price_per_day"`
	Total       float64 `json:"total"`
}

// PricingBreakdown is the computed price the document and notification
// side effects receive along with the reservation.
type PricingBreakdown struct {
	Days        int         `json:"days"`
	CarPerDay   float64     `json:"car_per_day"`
	CarTotal    float64     `json:"car_total"`
	Extras      []ExtraLine `json:"extras,omitempty"`
	ExtrasTotal float64     `json:"extras_total"`
	PromoCode   string      `json:"promo_code,omitempty"`
	Discount    float64     `json:"discount"`
	Total       float64     `json:"total"`
	Currency    string      `json:"currency"`
}

type BookingResponse struct {
	ID          string           `json:"id"`
	CarID       string           `json:"car_id"`
	Status      string           `json:"status"`
	PickupDate  string           `json:"pickup_date"`
	PickupTime  string           `json:"pickup_time"`
	DropoffDate string           `json:"dropoff_date"`
	DropoffTime string           `json:"dropoff_time"`
	Pricing     PricingBreakdown `json:"pricing"`
	CreatedAt   time.Time        `json:"created_at"`
}

type TimeSlotsResponse struct {
	Date           string   `json:"date"`
	Slots          []string `json:"slots"`
	EarliestPickup string   `json:"earliest_pickup_date"`
}
