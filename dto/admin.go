package dto

type CreateCarRequest struct {
	Name         string  `json:"name" validate:"required"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	PlateNumber  string  `json:"plate_number" validate:"required"`
	Seats        int     `json:"seats" validate:"omitempty,gte=1,lte=9"`
	Transmission string  `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	PricePerDay  float64 `json:"price_per_day" validate:"required,gt=0"`
	Rentable     *bool   `json:"rentable"`
	ImageURL     string  `json:"image_url"`
}

func (r CreateCarRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateCarRequest struct {
	Name         *string  `json:"name"`
	Brand        *string  `json:"brand"`
	Category     *string  `json:"category"`
	Seats        *int     `json:"seats" validate:"omitempty,gte=1,lte=9"`
	Transmission *string  `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	PricePerDay  *float64 `json:"price_per_day" validate:"omitempty,gt=0"`
	Rentable     *bool    `json:"rentable"`
	ImageURL     *string  `json:"image_url"`
}

func (r UpdateCarRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ExtraRequest struct {
	Label       string  `json:"label" validate:"required"`
	PricePerDay float64 `json:"price_per_day" validate:"required,gte=0"`
	Active      *bool   `json:"active"`
}

func (r ExtraRequest) Validate() error {
	return GetValidator().Struct(r)
}

type PromotionRequest struct {
	Code       string `json:"code" validate:"required,min=3,max=40"`
	PercentOff int    `json:"percent_off" validate:"required,gt=0,lte=100"`
	ValidFrom  string `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidUntil string `json:"valid_until" validate:"required,datetime=2006-01-02"`
	Active     *bool  `json:"active"`
}

func (r PromotionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type MaintenanceRequest struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

type MaintenanceResponse struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
}
