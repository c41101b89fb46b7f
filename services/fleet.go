package services

import (
	"errors"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/model"
	"github.com/alpenrent/alpenrent_api/shared"
)

// FleetService covers the admin-facing catalog: cars, extra services
// and promotions.
type FleetService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const FLEET_SVC = "fleet_svc"

func (svc FleetService) Id() string {
	return FLEET_SVC
}

func (svc *FleetService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ==================== CARS ====================

func (svc *FleetService) ListRentableCars() ([]model.Car, error) {
	cars, err := svc.sqlSvc.ListRentableCars()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list cars")
	}
	return cars, nil
}

func (svc *FleetService) ListCars() ([]model.Car, error) {
	cars, err := svc.sqlSvc.ListCars()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list cars")
	}
	return cars, nil
}

func (svc *FleetService) CreateCar(req dto.CreateCarRequest) (*model.Car, error) {
	now := time.Now()
	car := &model.Car{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Brand:        strings.TrimSpace(req.Brand),
		Category:     req.Category,
		PlateNumber:  strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Seats:        req.Seats,
		Transmission: req.Transmission,
		PricePerDay:  req.PricePerDay,
		Rentable:     true,
		ImageURL:     req.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if car.Seats == 0 {
		car.Seats = 5
	}
	if req.Rentable != nil {
		car.Rentable = *req.Rentable
	}

	if err := svc.sqlSvc.CreateCar(car); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create car")
	}
	return car, nil
}

func (svc *FleetService) UpdateCar(id string, req dto.UpdateCarRequest) (*model.Car, error) {
	car, err := svc.sqlSvc.GetCar(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Fahrzeug nicht gefunden")
		}
		return nil, shared.NewInternalError(err, "Failed to load car")
	}

	if req.Name != nil {
		car.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		car.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Category != nil {
		car.Category = *req.Category
	}
	if req.Seats != nil {
		car.Seats = *req.Seats
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.PricePerDay != nil {
		car.PricePerDay = *req.PricePerDay
	}
	if req.Rentable != nil {
		car.Rentable = *req.Rentable
	}
	if req.ImageURL != nil {
		car.ImageURL = *req.ImageURL
	}
	car.UpdatedAt = time.Now()

	if err := svc.sqlSvc.SaveCar(car); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update car")
	}
	return car, nil
}

func (svc *FleetService) DeleteCar(id string) error {
	if err := svc.sqlSvc.DeleteCar(id); err != nil {
		return shared.NewInternalError(err, "Failed to delete car")
	}
	return nil
}

// ==================== EXTRAS ====================

func (svc *FleetService) ListActiveExtras() ([]model.Extra, error) {
	extras, err := svc.sqlSvc.ListActiveExtras()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list extras")
	}
	return extras, nil
}

func (svc *FleetService) ListExtras() ([]model.Extra, error) {
	extras, err := svc.sqlSvc.ListExtras()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list extras")
	}
	return extras, nil
}

func (svc *FleetService) CreateExtra(req dto.ExtraRequest) (*model.Extra, error) {
	now := time.Now()
	extra := &model.Extra{
		ID:          uuid.New().String(),
		Label:       strings.TrimSpace(req.Label),
		PricePerDay: req.PricePerDay,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Active != nil {
		extra.Active = *req.Active
	}

	if err := svc.sqlSvc.CreateExtra(extra); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create extra")
	}
	return extra, nil
}

func (svc *FleetService) UpdateExtra(id string, req dto.ExtraRequest) (*model.Extra, error) {
	extras, err := svc.sqlSvc.GetExtrasByIDs([]string{id})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load extra")
	}
	if len(extras) == 0 {
		return nil, shared.NewNotFoundError("Zusatzleistung nicht gefunden")
	}

	extra := extras[0]
	extra.Label = strings.TrimSpace(req.Label)
	extra.PricePerDay = req.PricePerDay
	if req.Active != nil {
		extra.Active = *req.Active
	}
	extra.UpdatedAt = time.Now()

	if err := svc.sqlSvc.SaveExtra(&extra); err != nil {
		return nil, shared.NewInternalError(err, "Failed to update extra")
	}
	return &extra, nil
}

func (svc *FleetService) DeleteExtra(id string) error {
	if err := svc.sqlSvc.DeleteExtra(id); err != nil {
		return shared.NewInternalError(err, "Failed to delete extra")
	}
	return nil
}

// ==================== PROMOTIONS ====================

func (svc *FleetService) ListPromotions() ([]model.Promotion, error) {
	promos, err := svc.sqlSvc.ListPromotions()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list promotions")
	}
	return promos, nil
}

// GetActivePromotion resolves a code for the public promotion lookup;
// inactive or out-of-window codes read as not found.
func (svc *FleetService) GetActivePromotion(code string) (*model.Promotion, error) {
	promo, err := svc.sqlSvc.GetPromotionByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Promocode nicht gefunden")
		}
		return nil, shared.NewInternalError(err, "Failed to load promotion")
	}
	if !promo.ValidAt(time.Now()) {
		return nil, shared.NewNotFoundError("Promocode nicht gefunden")
	}
	return promo, nil
}

func (svc *FleetService) CreatePromotion(req dto.PromotionRequest) (*model.Promotion, error) {
	validFrom, err := time.Parse(dto.DateLayout, req.ValidFrom)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid valid_from date")
	}
	validUntil, err := time.Parse(dto.DateLayout, req.ValidUntil)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid valid_until date")
	}
	if validUntil.Before(validFrom) {
		return nil, shared.NewBadRequestError(nil, "valid_until must not be before valid_from")
	}

	now := time.Now()
	promo := &model.Promotion{
		ID:         uuid.New().String(),
		Code:       strings.ToUpper(strings.TrimSpace(req.Code)),
		PercentOff: req.PercentOff,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := svc.sqlSvc.CreatePromotion(promo); err != nil {
		return nil, shared.NewInternalError(err, "Failed to create promotion")
	}
	return promo, nil
}

func (svc *FleetService) DeletePromotion(id string) error {
	if err := svc.sqlSvc.DeletePromotion(id); err != nil {
		return shared.NewInternalError(err, "Failed to delete promotion")
	}
	return nil
}
