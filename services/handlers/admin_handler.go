package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/shared"
)

type AdminHandler struct {
	fleetSvc    FleetServiceInterface
	bookingSvc  BookingServiceInterface
	resAdmin    ReservationAdminInterface
	settingsSvc SettingsServiceInterface
}

func NewAdminHandler(fleetSvc FleetServiceInterface, bookingSvc BookingServiceInterface, resAdmin ReservationAdminInterface, settingsSvc SettingsServiceInterface) *AdminHandler {
	return &AdminHandler{
		fleetSvc:    fleetSvc,
		bookingSvc:  bookingSvc,
		resAdmin:    resAdmin,
		settingsSvc: settingsSvc,
	}
}

// ==================== CARS ====================

// @Summary List all cars
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.CarListResponse}
// @Router /api/v1/admin/cars [get]
func (h *AdminHandler) ListCars(c *fiber.Ctx) error {
	cars, err := h.fleetSvc.ListCars()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, dto.CarListResponse{Cars: cars, Count: len(cars)})
}

// @Summary Create a car
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param carRequest body dto.CreateCarRequest true "Car details"
// @Success 201 {object} shared.Response{data=model.Car}
// @Router /api/v1/admin/cars [post]
func (h *AdminHandler) CreateCar(c *fiber.Ctx) error {
	var req dto.CreateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	car, err := h.fleetSvc.CreateCar(req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Created", car)
}

// @Summary Update a car
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Car ID"
// @Param carRequest body dto.UpdateCarRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=model.Car}
// @Router /api/v1/admin/cars/{id} [put]
func (h *AdminHandler) UpdateCar(c *fiber.Ctx) error {
	var req dto.UpdateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	car, err := h.fleetSvc.UpdateCar(c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, car)
}

// @Summary Delete a car
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Car ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/cars/{id} [delete]
func (h *AdminHandler) DeleteCar(c *fiber.Ctx) error {
	if err := h.fleetSvc.DeleteCar(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// ==================== EXTRAS ====================

// @Summary List all extras
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]model.Extra}
// @Router /api/v1/admin/extras [get]
func (h *AdminHandler) ListExtras(c *fiber.Ctx) error {
	extras, err := h.fleetSvc.ListExtras()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, extras)
}

// @Summary Create an extra
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param extraRequest body dto.ExtraRequest true "Extra details"
// @Success 201 {object} shared.Response{data=model.Extra}
// @Router /api/v1/admin/extras [post]
func (h *AdminHandler) CreateExtra(c *fiber.Ctx) error {
	var req dto.ExtraRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	extra, err := h.fleetSvc.CreateExtra(req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Created", extra)
}

// @Summary Update an extra
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Extra ID"
// @Param extraRequest body dto.ExtraRequest true "Extra details"
// @Success 200 {object} shared.Response{data=model.Extra}
// @Router /api/v1/admin/extras/{id} [put]
func (h *AdminHandler) UpdateExtra(c *fiber.Ctx) error {
	var req dto.ExtraRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	extra, err := h.fleetSvc.UpdateExtra(c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, extra)
}

// @Summary Delete an extra
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Extra ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/extras/{id} [delete]
func (h *AdminHandler) DeleteExtra(c *fiber.Ctx) error {
	if err := h.fleetSvc.DeleteExtra(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// ==================== PROMOTIONS ====================

// @Summary List promotions
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]model.Promotion}
// @Router /api/v1/admin/promotions [get]
func (h *AdminHandler) ListPromotions(c *fiber.Ctx) error {
	promos, err := h.fleetSvc.ListPromotions()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, promos)
}

// @Summary Create a promotion
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param promotionRequest body dto.PromotionRequest true "Promotion details"
// @Success 201 {object} shared.Response{data=model.Promotion}
// @Router /api/v1/admin/promotions [post]
func (h *AdminHandler) CreatePromotion(c *fiber.Ctx) error {
	var req dto.PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	promo, err := h.fleetSvc.CreatePromotion(req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Created", promo)
}

// @Summary Delete a promotion
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Promotion ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/promotions/{id} [delete]
func (h *AdminHandler) DeletePromotion(c *fiber.Ctx) error {
	if err := h.fleetSvc.DeletePromotion(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseOK(c, nil)
}

// ==================== RESERVATIONS ====================

// @Summary List reservations
// @Tags admin
// @Produce json
// @Security Bearer
// @Param status query string false "Filter by status (confirmed, completed, cancelled)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} shared.Response{data=[]model.Reservation}
// @Router /api/v1/admin/reservations [get]
func (h *AdminHandler) ListReservations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	reservations, total, err := h.resAdmin.ListReservations(c.Query("status"), page, limit)
	if err != nil {
		return shared.NewInternalError(err, "Failed to list reservations")
	}

	return shared.ResponseOK(c, fiber.Map{
		"reservations": reservations,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// @Summary Get a reservation
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Response{data=model.Reservation}
// @Router /api/v1/admin/reservations/{id} [get]
func (h *AdminHandler) GetReservation(c *fiber.Ctx) error {
	res, err := h.resAdmin.GetReservation(c.Params("id"))
	if err != nil {
		return shared.NewNotFoundError("Buchung nicht gefunden")
	}
	return shared.ResponseOK(c, res)
}

// @Summary Cancel a reservation
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/reservations/{id}/cancel [post]
func (h *AdminHandler) CancelReservation(c *fiber.Ctx) error {
	if err := h.bookingSvc.CancelBooking(c.UserContext(), c.Params("id"), "", true); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Buchung storniert", nil)
}

// ==================== MAINTENANCE ====================

// @Summary Set maintenance mode
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param maintenanceRequest body dto.MaintenanceRequest true "Maintenance state"
// @Success 200 {object} shared.Response{data=dto.MaintenanceResponse}
// @Router /api/v1/admin/maintenance [put]
func (h *AdminHandler) SetMaintenance(c *fiber.Ctx) error {
	var req dto.MaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := h.settingsSvc.SetMaintenance(c.UserContext(), req.Enabled, req.Message); err != nil {
		return shared.NewInternalError(err, "Failed to update maintenance mode")
	}

	return shared.ResponseOK(c, h.settingsSvc.MaintenanceStatus(c.UserContext()))
}
