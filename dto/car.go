package dto

import "github.com/alpenrent/alpenrent_api/model"

type AvailableCarsRequest struct {
	PickupDate  string `query:"pickup_date" validate:"required,datetime=2006-01-02"`
	DropoffDate string `query:"dropoff_date" validate:"required,datetime=2006-01-02"`
}

func (r AvailableCarsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CarListResponse struct {
	Cars  []model.Car `json:"cars"`
	Count int         `json:"count"`
}
