package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/shared"
	"github.com/alpenrent/alpenrent_api/validation"
)

type BookingHandler struct {
	bookingSvc BookingServiceInterface
}

func NewBookingHandler(bookingSvc BookingServiceInterface) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// @Summary Create a booking
// @Description Validate the request, check availability and commit the reservation
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingRequest body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} shared.Response{data=dto.BookingResponse}
// @Failure 400 {object} shared.Response{data=[]validation.ValidationError}
// @Failure 409 {object} shared.Response
// @Failure 429 {object} shared.Response{data=dto.RateLimitInfo}
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID, _ := c.Locals(shared.UserID).(string)

	resp, err := h.bookingSvc.CreateBooking(c.UserContext(), req, shared.ClientIP(c), userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Buchung bestätigt", resp)
}

// @Summary Cancel a booking
// @Description Cancel a confirmed reservation; owners and admins only
// @Tags bookings
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Reservation ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	userID, _ := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)

	if err := h.bookingSvc.CancelBooking(c.UserContext(), id, userID, role == shared.RoleAdmin); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Buchung storniert", nil)
}

// @Summary Pickup time slots
// @Description List the selectable pickup times for a date, honoring the 48h lead time
// @Tags bookings
// @Produce json
// @Param date query string true "Pickup date (YYYY-MM-DD)"
// @Success 200 {object} shared.Response{data=dto.TimeSlotsResponse}
// @Router /api/v1/bookings/time-slots [get]
func (h *BookingHandler) TimeSlots(c *fiber.Ctx) error {
	date, err := time.Parse(dto.DateLayout, c.Query("date"))
	if err != nil {
		return shared.NewValidationError([]validation.ValidationError{{
			Field:   validation.FieldPickupDate,
			Message: "Ungültiges Datum (erwartet JJJJ-MM-TT)",
		}})
	}

	return shared.ResponseOK(c, h.bookingSvc.PickupTimeSlots(date))
}
