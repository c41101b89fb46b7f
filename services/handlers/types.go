package handlers

import (
	"context"
	"time"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/model"
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest, identifier, userID string) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, id, userID string, isAdmin bool) error
	PickupTimeSlots(date time.Time) dto.TimeSlotsResponse
}

type AvailabilityServiceInterface interface {
	AvailableCars(pickupDate, dropoffDate time.Time) ([]model.Car, error)
}

type FleetServiceInterface interface {
	ListRentableCars() ([]model.Car, error)
	ListCars() ([]model.Car, error)
	CreateCar(req dto.CreateCarRequest) (*model.Car, error)
	UpdateCar(id string, req dto.UpdateCarRequest) (*model.Car, error)
	DeleteCar(id string) error
	ListActiveExtras() ([]model.Extra, error)
	ListExtras() ([]model.Extra, error)
	CreateExtra(req dto.ExtraRequest) (*model.Extra, error)
	UpdateExtra(id string, req dto.ExtraRequest) (*model.Extra, error)
	DeleteExtra(id string) error
	ListPromotions() ([]model.Promotion, error)
	GetActivePromotion(code string) (*model.Promotion, error)
	CreatePromotion(req dto.PromotionRequest) (*model.Promotion, error)
	DeletePromotion(id string) error
}

type ReservationAdminInterface interface {
	ListReservations(status string, page, limit int) ([]model.Reservation, int64, error)
	GetReservation(id string) (*model.Reservation, error)
}

type SettingsServiceInterface interface {
	MaintenanceStatus(ctx context.Context) dto.MaintenanceResponse
	SetMaintenance(ctx context.Context, enabled bool, message string) error
}
