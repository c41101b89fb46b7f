package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/shared"
)

type CarHandler struct {
	fleetSvc        FleetServiceInterface
	availabilitySvc AvailabilityServiceInterface
}

func NewCarHandler(fleetSvc FleetServiceInterface, availabilitySvc AvailabilityServiceInterface) *CarHandler {
	return &CarHandler{
		fleetSvc:        fleetSvc,
		availabilitySvc: availabilitySvc,
	}
}

// @Summary List cars
// @Description List the rentable fleet; with pickup_date and dropoff_date only cars free for that interval
// @Tags cars
// @Produce json
// @Param pickup_date query string false "Pickup date (YYYY-MM-DD)"
// @Param dropoff_date query string false "Dropoff date (YYYY-MM-DD)"
// @Success 200 {object} shared.Response{data=dto.CarListResponse}
// @Router /api/v1/cars [get]
func (h *CarHandler) ListCars(c *fiber.Ctx) error {
	if c.Query("pickup_date") != "" || c.Query("dropoff_date") != "" {
		return h.AvailableCars(c)
	}

	cars, err := h.fleetSvc.ListRentableCars()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, dto.CarListResponse{Cars: cars, Count: len(cars)})
}

// @Summary List available cars
// @Description List the cars free for a date interval; both dates are required
// @Tags cars
// @Produce json
// @Param pickup_date query string true "Pickup date (YYYY-MM-DD)"
// @Param dropoff_date query string true "Dropoff date (YYYY-MM-DD)"
// @Success 200 {object} shared.Response{data=dto.CarListResponse}
// @Router /api/v1/cars/available [get]
func (h *CarHandler) AvailableCars(c *fiber.Ctx) error {
	var req dto.AvailableCarsRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	pickupDate, err := time.Parse(dto.DateLayout, req.PickupDate)
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid pickup_date")
	}
	dropoffDate, err := time.Parse(dto.DateLayout, req.DropoffDate)
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid dropoff_date")
	}
	if dropoffDate.Before(pickupDate) {
		return shared.NewBadRequestError(nil, "dropoff_date must not be before pickup_date")
	}

	cars, err := h.availabilitySvc.AvailableCars(pickupDate, dropoffDate)
	if err != nil {
		return shared.NewInternalError(err, "Failed to list available cars")
	}

	return shared.ResponseOK(c, dto.CarListResponse{Cars: cars, Count: len(cars)})
}

// @Summary List extras
// @Description List the bookable extra services
// @Tags cars
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Extra}
// @Router /api/v1/extras [get]
func (h *CarHandler) ListExtras(c *fiber.Ctx) error {
	extras, err := h.fleetSvc.ListActiveExtras()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, extras)
}

// @Summary Look up a promotion code
// @Description Resolve a promotion code; inactive or expired codes read as not found
// @Tags cars
// @Produce json
// @Param code path string true "Promotion code"
// @Success 200 {object} shared.Response{data=model.Promotion}
// @Router /api/v1/promotions/{code} [get]
func (h *CarHandler) GetPromotion(c *fiber.Ctx) error {
	promo, err := h.fleetSvc.GetActivePromotion(c.Params("code"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, promo)
}
