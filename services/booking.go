package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/model"
	"github.com/alpenrent/alpenrent_api/shared"
	"github.com/alpenrent/alpenrent_api/validation"
)

// BookingStore is the persistence surface the orchestrator needs;
// PostgresService implements it.
type BookingStore interface {
	GetCar(id string) (*model.Car, error)
	GetExtrasByIDs(ids []string) ([]model.Extra, error)
	GetPromotionByCode(code string) (*model.Promotion, error)
	CreateReservationGuarded(res *model.Reservation) error
	GetReservation(id string) (*model.Reservation, error)
	UpdateReservationStatus(id, status string) error
}

type AttemptLimiter interface {
	Check(ctx context.Context, identifier string) (*dto.RateLimitInfo, error)
}

type AvailabilityChecker interface {
	CarAvailable(carID string, pickupDate, dropoffDate time.Time) (bool, error)
}

type BookingNotifier interface {
	SendBookingConfirmation(res *model.Reservation, pricing dto.PricingBreakdown) error
	SendAdminNotification(res *model.Reservation, pricing dto.PricingBreakdown) error
}

type DocumentPublisher interface {
	PublishConfirmation(res *model.Reservation, pricing dto.PricingBreakdown) (string, error)
}

type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, eventType string, res *model.Reservation) error
}

// BookingService is the booking-creation orchestrator: rate limit,
// aggregated field validation, availability guard, commit, best-effort
// side effects.
type BookingService struct {
	appContext.DefaultService

	store        BookingStore
	limiter      AttemptLimiter
	availability AvailabilityChecker
	notifier     BookingNotifier
	documents    DocumentPublisher
	events       EventPublisher

	now func() time.Time
}

const BOOKING_SVC = "booking_svc"

func (svc BookingService) Id() string {
	return BOOKING_SVC
}

func (svc *BookingService) Configure(ctx *appContext.Context) error {
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *BookingService) Start() error {
	svc.store = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.limiter = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.availability = svc.Service(AVAILABILITY_SVC).(*AvailabilityService)
	svc.notifier = svc.Service(EMAIL_SVC).(*EmailService)
	svc.documents = svc.Service(DOCUMENT_SVC).(*DocumentService)
	svc.events = svc.Service(EVENT_SVC).(*EventService)
	return nil
}

// CreateBooking runs the full booking transaction. identifier is the
// caller's rate-limit key (client IP); userID is the hosted-auth
// subject, empty for guests.
func (svc *BookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest, identifier, userID string) (*dto.BookingResponse, error) {
	// 1. Rate-limit gate.
	info, err := svc.limiter.Check(ctx, identifier)
	if err != nil {
		log.WithError(err).Warn("Rate limit check failed, allowing request")
	} else if !info.Allowed {
		RecordBookingRejected("rate_limited")
		return nil, shared.NewRateLimitError(info.Message, info)
	}

	now := svc.now()

	// 2. Aggregated field validation. Each validator returns at most
	// one error; the orchestrator collects them all so the caller can
	// fix everything in one round trip.
	errs, parsed := svc.validateRequest(req, now)
	if len(errs) > 0 {
		RecordBookingRejected("validation")
		return nil, shared.NewValidationError(errs)
	}

	car, err := svc.store.GetCar(req.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Fahrzeug nicht gefunden")
		}
		return nil, shared.NewInternalError(err, "Failed to load car")
	}
	if !car.Rentable {
		RecordBookingRejected("conflict")
		return nil, shared.NewConflictError("Das Fahrzeug ist derzeit nicht buchbar")
	}

	// 3. Availability guard.
	free, err := svc.availability.CarAvailable(car.ID, parsed.pickupDate, parsed.dropoffDate)
	if err != nil {
		return nil, shared.NewInternalError(err, "Verfügbarkeitsprüfung fehlgeschlagen")
	}
	if !free {
		RecordBookingRejected("conflict")
		return nil, shared.NewConflictError("Das Fahrzeug ist im gewählten Zeitraum bereits reserviert")
	}

	pricing, err := svc.buildPricing(req, car, parsed, now)
	if err != nil {
		return nil, err
	}

	res, err := svc.assembleReservation(req, parsed, pricing, userID, now)
	if err != nil {
		return nil, err
	}

	// 4. Commit. The store re-checks the overlap inside the insert
	// transaction; the exclusion constraint is the final authority.
	if err := svc.store.CreateReservationGuarded(res); err != nil {
		if errors.Is(err, ErrReservationOverlap) {
			RecordBookingRejected("conflict")
			return nil, shared.NewConflictError("Das Fahrzeug ist im gewählten Zeitraum bereits reserviert")
		}
		return nil, shared.NewInternalError(err, "Die Buchung konnte nicht gespeichert werden")
	}
	RecordBookingCreated()

	// 5. Side effects are best-effort and never roll back the commit.
	go svc.runSideEffects(res, pricing)

	return &dto.BookingResponse{
		ID:          res.ID,
		CarID:       res.CarID,
		Status:      res.Status,
		PickupDate:  res.PickupDate.Format(dto.DateLayout),
		PickupTime:  res.PickupTime,
		DropoffDate: res.DropoffDate.Format(dto.DateLayout),
		DropoffTime: res.DropoffTime,
		Pricing:     pricing,
		CreatedAt:   res.CreatedAt,
	}, nil
}

// CancelBooking transitions a confirmed reservation to cancelled.
// Admins may cancel anything; customers only their own reservations.
func (svc *BookingService) CancelBooking(ctx context.Context, id, userID string, isAdmin bool) error {
	res, err := svc.store.GetReservation(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError("Buchung nicht gefunden")
		}
		return shared.NewInternalError(err, "Failed to load reservation")
	}

	if !isAdmin {
		if userID == "" || res.UserID == nil || *res.UserID != userID {
			return shared.NewForbiddenError(errors.New("reservation owned by someone else"), "Forbidden")
		}
	}

	switch res.Status {
	case model.ReservationCancelled:
		return nil
	case model.ReservationCompleted:
		return shared.NewConflictError("Eine abgeschlossene Buchung kann nicht storniert werden")
	}

	if err := svc.store.UpdateReservationStatus(id, model.ReservationCancelled); err != nil {
		return shared.NewInternalError(err, "Die Buchung konnte nicht storniert werden")
	}

	res.Status = model.ReservationCancelled
	go func() {
		if err := svc.events.PublishReservationEvent(context.Background(), "reservation.cancelled", res); err != nil {
			log.WithError(err).WithField("reservation_id", res.ID).Warn("Failed to publish cancellation event")
		}
	}()
	return nil
}

// PickupTimeSlots lists the legal on-the-hour pickup slots for a date.
func (svc *BookingService) PickupTimeSlots(date time.Time) dto.TimeSlotsResponse {
	now := svc.now()
	return dto.TimeSlotsResponse{
		Date:           date.Format(dto.DateLayout),
		Slots:          validation.AvailableTimeSlots(date, now),
		EarliestPickup: validation.EarliestPickupDate(now).Format(dto.DateLayout),
	}
}

// ==================== VALIDATION ====================

type parsedDates struct {
	pickupDate  time.Time
	dropoffDate time.Time
	pickupAt    time.Time
	dropoffAt   time.Time
}

func (svc *BookingService) validateRequest(req dto.CreateBookingRequest, now time.Time) ([]validation.ValidationError, parsedDates) {
	var errs []validation.ValidationError

	appendErr := func(e *validation.ValidationError) {
		if e != nil {
			errs = append(errs, *e)
		}
	}

	var parsed parsedDates
	datesOK := true
	parsed.pickupDate = parseDateField(req.PickupDate, validation.FieldPickupDate, &errs, &datesOK)
	parsed.dropoffDate = parseDateField(req.DropoffDate, validation.FieldDropoffDate, &errs, &datesOK)

	if datesOK {
		appendErr(validation.ValidateBookingDates(parsed.pickupDate, req.PickupTime, parsed.dropoffDate, req.DropoffTime, now))
		parsed.pickupAt, _ = validation.CombineDateTime(parsed.pickupDate, req.PickupTime)
		parsed.dropoffAt, _ = validation.CombineDateTime(parsed.dropoffDate, req.DropoffTime)
	}

	appendErr(validation.ValidateName(req.FirstName, "Vorname"))
	appendErr(validation.ValidateName(req.LastName, "Nachname"))
	appendErr(validation.ValidateEmail(req.Email, "E-Mail"))
	appendErr(validation.ValidatePhone(req.Phone, "Telefonnummer"))
	if req.PostalCode != "" {
		appendErr(validation.ValidatePostalCode(req.PostalCode, "PLZ"))
	}
	appendErr(validation.ValidateAddress(req.PickupAddress, "Abholort"))
	appendErr(validation.ValidateAddress(req.DropoffAddress, "Rückgabeort"))

	mainDriver := validateDriver(req.MainDriver, "Hauptfahrer", now, &errs)
	additionalDriver := validateDriver(req.AdditionalDriver, "Zusatzfahrer", now, &errs)
	if mainDriver != nil && additionalDriver != nil && validation.DriversIdentical(*mainDriver, *additionalDriver) {
		errs = append(errs, validation.ValidationError{
			Field:   "Zusatzfahrer",
			Message: "Haupt- und Zusatzfahrer dürfen nicht identisch sein",
		})
	}

	return errs, parsed
}

func parseDateField(value, label string, errs *[]validation.ValidationError, ok *bool) time.Time {
	if value == "" {
		// ValidateBookingDates reports the missing field with the
		// right priority, so no error is added here.
		return time.Time{}
	}
	parsed, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		*errs = append(*errs, validation.ValidationError{Field: label, Message: "Ungültiges Datum (erwartet JJJJ-MM-TT)"})
		*ok = false
		return time.Time{}
	}
	return parsed
}

func validateDriver(req *dto.DriverRequest, role string, now time.Time, errs *[]validation.ValidationError) *validation.Driver {
	if req == nil {
		return nil
	}

	appendErr := func(e *validation.ValidationError) {
		if e != nil {
			*errs = append(*errs, *e)
		}
	}

	appendErr(validation.ValidateName(req.FirstName, "Vorname ("+role+")"))
	appendErr(validation.ValidateName(req.LastName, "Nachname ("+role+")"))

	birthDate, err := time.Parse(dto.DateLayout, req.BirthDate)
	if err != nil {
		*errs = append(*errs, validation.ValidationError{
			Field:   validation.FieldBirthDate + " (" + role + ")",
			Message: "Ungültiges Datum (erwartet JJJJ-MM-TT)",
		})
		return nil
	}
	issueDate, err := time.Parse(dto.DateLayout, req.LicenseIssueDate)
	if err != nil {
		*errs = append(*errs, validation.ValidationError{
			Field:   validation.FieldLicenseIssue + " (" + role + ")",
			Message: "Ungültiges Datum (erwartet JJJJ-MM-TT)",
		})
		return nil
	}

	appendErr(validation.ValidateBirthDate(birthDate, now, validation.FieldBirthDate+" ("+role+")"))
	appendErr(validation.ValidateLicenseIssueDate(issueDate, birthDate, now, validation.FieldLicenseIssue+" ("+role+")"))

	return &validation.Driver{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		BirthDate:        birthDate,
		LicenseIssueDate: issueDate,
	}
}

// ==================== PRICING ====================

func (svc *BookingService) buildPricing(req dto.CreateBookingRequest, car *model.Car, parsed parsedDates, now time.Time) (dto.PricingBreakdown, error) {
	days := RentalDays(parsed.pickupAt, parsed.dropoffAt)

	var extras []model.Extra
	if len(req.ExtraIDs) > 0 {
		found, err := svc.store.GetExtrasByIDs(req.ExtraIDs)
		if err != nil {
			return dto.PricingBreakdown{}, shared.NewInternalError(err, "Failed to load extras")
		}
		if len(found) != len(req.ExtraIDs) {
			return dto.PricingBreakdown{}, shared.NewBadRequestError(nil, "Unbekannte Zusatzleistung ausgewählt")
		}
		extras = found
	}

	var promo *model.Promotion
	if req.PromoCode != "" {
		p, err := svc.store.GetPromotionByCode(req.PromoCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.PricingBreakdown{}, shared.NewBadRequestError(nil, "Ungültiger Promocode")
			}
			return dto.PricingBreakdown{}, shared.NewInternalError(err, "Failed to load promotion")
		}
		if !p.ValidAt(now) {
			return dto.PricingBreakdown{}, shared.NewBadRequestError(nil, "Der Promocode ist nicht mehr gültig")
		}
		promo = p
	}

	return BuildPricing(car, extras, promo, days), nil
}

// RentalDays counts started 24h periods between pickup and dropoff,
// with a minimum of one day.
func RentalDays(pickupAt, dropoffAt time.Time) int {
	hours := dropoffAt.Sub(pickupAt).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// BuildPricing computes the price breakdown handed to the document and
// notification side effects.
func BuildPricing(car *model.Car, extras []model.Extra, promo *model.Promotion, days int) dto.PricingBreakdown {
	pricing := dto.PricingBreakdown{
		Days:      days,
		CarPerDay: car.PricePerDay,
		CarTotal:  roundCHF(car.PricePerDay * float64(days)),
		Currency:  shared.CurrencyCHF,
	}

	for _, extra := range extras {
		line := dto.ExtraLine{
			ID:          extra.ID,
			Label:       extra.Label,
			PricePerDay: extra.PricePerDay,
			Total:       roundCHF(extra.PricePerDay * float64(days)),
		}
		pricing.Extras = append(pricing.Extras, line)
		pricing.ExtrasTotal += line.Total
	}
	pricing.ExtrasTotal = roundCHF(pricing.ExtrasTotal)

	subtotal := pricing.CarTotal + pricing.ExtrasTotal
	if promo != nil {
		pricing.PromoCode = promo.Code
		pricing.Discount = roundCHF(subtotal * float64(promo.PercentOff) / 100)
	}
	pricing.Total = roundCHF(subtotal - pricing.Discount)
	return pricing
}

func roundCHF(v float64) float64 {
	return math.Round(v*100) / 100
}

// ==================== ASSEMBLY & SIDE EFFECTS ====================

func (svc *BookingService) assembleReservation(req dto.CreateBookingRequest, parsed parsedDates, pricing dto.PricingBreakdown, userID string, now time.Time) (*model.Reservation, error) {
	res := &model.Reservation{
		ID:             uuid.New().String(),
		CarID:          req.CarID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		PostalCode:     req.PostalCode,
		PickupDate:     parsed.pickupDate,
		PickupTime:     req.PickupTime,
		DropoffDate:    parsed.dropoffDate,
		DropoffTime:    req.DropoffTime,
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
		PromoCode:      pricing.PromoCode,
		TotalPrice:     pricing.Total,
		Currency:       pricing.Currency,
		Status:         model.ReservationConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if userID != "" {
		res.UserID = &userID
	}

	var err error
	if req.MainDriver != nil {
		if res.MainDriver, err = marshalDriver(req.MainDriver); err != nil {
			return nil, shared.NewInternalError(err, "Failed to encode driver record")
		}
	}
	if req.AdditionalDriver != nil {
		if res.AdditionalDriver, err = marshalDriver(req.AdditionalDriver); err != nil {
			return nil, shared.NewInternalError(err, "Failed to encode driver record")
		}
	}
	if len(req.ExtraIDs) > 0 {
		if res.ExtraIDs, err = json.Marshal(req.ExtraIDs); err != nil {
			return nil, shared.NewInternalError(err, "Failed to encode extras")
		}
	}

	return res, nil
}

func marshalDriver(req *dto.DriverRequest) (json.RawMessage, error) {
	birthDate, err := time.Parse(dto.DateLayout, req.BirthDate)
	if err != nil {
		return nil, err
	}
	issueDate, err := time.Parse(dto.DateLayout, req.LicenseIssueDate)
	if err != nil {
		return nil, err
	}

	return json.Marshal(model.ReservationDriver{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		BirthDate:        birthDate,
		LicenseIssueDate: issueDate,
	})
}

func (svc *BookingService) runSideEffects(res *model.Reservation, pricing dto.PricingBreakdown) {
	logger := log.WithField("reservation_id", res.ID)

	if err := svc.notifier.SendBookingConfirmation(res, pricing); err != nil {
		logger.WithError(err).Warn("Failed to send booking confirmation email")
	}
	if err := svc.notifier.SendAdminNotification(res, pricing); err != nil {
		logger.WithError(err).Warn("Failed to send admin notification email")
	}

	if _, err := svc.documents.PublishConfirmation(res, pricing); err != nil {
		logger.WithError(err).Warn("Failed to publish confirmation document")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.events.PublishReservationEvent(ctx, "reservation.created", res); err != nil {
		logger.WithError(err).Warn("Failed to publish reservation event")
	}
}
