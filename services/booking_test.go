package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alpenrent/alpenrent_api/dto"
	"github.com/alpenrent/alpenrent_api/model"
	"github.com/alpenrent/alpenrent_api/shared"
	"github.com/alpenrent/alpenrent_api/validation"
)

type mockBookingStore struct {
	getCar                   func(id string) (*model.Car, error)
	getExtrasByIDs           func(ids []string) ([]model.Extra, error)
	getPromotionByCode       func(code string) (*model.Promotion, error)
	createReservationGuarded func(res *model.Reservation) error
	getReservation           func(id string) (*model.Reservation, error)
	updateReservationStatus  func(id, status string) error
}

func (m *mockBookingStore) GetCar(id string) (*model.Car, error) { return m.getCar(id) }
func (m *mockBookingStore) GetExtrasByIDs(ids []string) ([]model.Extra, error) {
	return m.getExtrasByIDs(ids)
}
func (m *mockBookingStore) GetPromotionByCode(code string) (*model.Promotion, error) {
	return m.getPromotionByCode(code)
}
func (m *mockBookingStore) CreateReservationGuarded(res *model.Reservation) error {
	return m.createReservationGuarded(res)
}
func (m *mockBookingStore) GetReservation(id string) (*model.Reservation, error) {
	return m.getReservation(id)
}
func (m *mockBookingStore) UpdateReservationStatus(id, status string) error {
	return m.updateReservationStatus(id, status)
}

type mockLimiter struct {
	info *dto.RateLimitInfo
}

func (m *mockLimiter) Check(context.Context, string) (*dto.RateLimitInfo, error) {
	return m.info, nil
}

type mockAvailability struct {
	free bool
	err  error
}

func (m *mockAvailability) CarAvailable(string, time.Time, time.Time) (bool, error) {
	return m.free, m.err
}

type noopNotifier struct{}

func (noopNotifier) SendBookingConfirmation(*model.Reservation, dto.PricingBreakdown) error {
	return nil
}
func (noopNotifier) SendAdminNotification(*model.Reservation, dto.PricingBreakdown) error {
	return nil
}

type noopDocuments struct{}

func (noopDocuments) PublishConfirmation(*model.Reservation, dto.PricingBreakdown) (string, error) {
	return "", nil
}

type noopEvents struct{}

func (noopEvents) PublishReservationEvent(context.Context, string, *model.Reservation) error {
	return nil
}

func allowed() *mockLimiter {
	return &mockLimiter{info: &dto.RateLimitInfo{Allowed: true, Remaining: 2}}
}

func testCar() *model.Car {
	return &model.Car{ID: "car_1", Name: "VW Golf", PricePerDay: 100, Rentable: true}
}

func defaultStore() *mockBookingStore {
	return &mockBookingStore{
		getCar:                   func(string) (*model.Car, error) { return testCar(), nil },
		getExtrasByIDs:           func(ids []string) ([]model.Extra, error) { return nil, nil },
		getPromotionByCode:       func(string) (*model.Promotion, error) { return nil, gorm.ErrRecordNotFound },
		createReservationGuarded: func(*model.Reservation) error { return nil },
	}
}

func newBookingService(store BookingStore, limiter AttemptLimiter, avail AvailabilityChecker, now time.Time) *BookingService {
	return &BookingService{
		store:        store,
		limiter:      limiter,
		availability: avail,
		notifier:     noopNotifier{},
		documents:    noopDocuments{},
		events:       noopEvents{},
		now:          func() time.Time { return now },
	}
}

// testNow is before the 15:00 cutoff; the earliest pickup date is
// therefore two days out (2026-09-03) with a 10:00 slot floor.
var testNow = time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CarID:          "car_1",
		PickupDate:     "2026-09-05",
		PickupTime:     "10:00",
		DropoffDate:    "2026-09-07",
		DropoffTime:    "10:00",
		PickupAddress:  "Bahnhofstrasse 1, Zürich",
		DropoffAddress: "Bahnhofstrasse 1, Zürich",
		FirstName:      "Anna",
		LastName:       "Keller",
		Email:          "anna.keller@bluewin.ch",
		Phone:          "+41 79 123 45 67",
		PostalCode:     "8004",
		MainDriver: &dto.DriverRequest{
			FirstName:        "Anna",
			LastName:         "Keller",
			BirthDate:        "1990-05-04",
			LicenseIssueDate: "2010-06-01",
		},
	}
}

func appError(t *testing.T, err error) *shared.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected AppError, got %T", err)
	return appErr
}

func TestCreateBookingRateLimited(t *testing.T) {
	limiter := &mockLimiter{info: &dto.RateLimitInfo{
		Allowed:         false,
		CooldownMinutes: 10,
		Message:         "Zu viele Buchungsversuche. Bitte versuchen Sie es in 10 Minuten erneut.",
	}}

	storeCalled := false
	store := defaultStore()
	store.getCar = func(string) (*model.Car, error) {
		storeCalled = true
		return testCar(), nil
	}

	svc := newBookingService(store, limiter, &mockAvailability{free: true}, testNow)

	_, err := svc.CreateBooking(context.Background(), validRequest(), "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 429, appErr.StatusCode)
	assert.False(t, storeCalled)
}

func TestCreateBookingAggregatesValidationErrors(t *testing.T) {
	req := validRequest()
	req.FirstName = "X"
	req.Email = "not-an-email"
	req.PickupDate = "2026-09-02" // before the earliest legal date
	req.AdditionalDriver = &dto.DriverRequest{
		FirstName:        "anna",
		LastName:         "KELLER",
		BirthDate:        "1990-05-04",
		LicenseIssueDate: "2012-01-01",
	}

	svc := newBookingService(defaultStore(), allowed(), &mockAvailability{free: true}, testNow)

	_, err := svc.CreateBooking(context.Background(), req, "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 400, appErr.StatusCode)

	errs, ok := appErr.Data.([]validation.ValidationError)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(errs), 4)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields[validation.FieldPickupDate])
	assert.True(t, fields["Vorname"])
	assert.True(t, fields["E-Mail"])
	assert.True(t, fields["Zusatzfahrer"], "identical drivers should be rejected")
}

func TestCreateBookingPickupTimeFloor(t *testing.T) {
	svc := newBookingService(defaultStore(), allowed(), &mockAvailability{free: true}, testNow)

	t.Run("slot below the floor on the earliest date fails", func(t *testing.T) {
		req := validRequest()
		req.PickupDate = "2026-09-03"
		req.PickupTime = "09:00"

		_, err := svc.CreateBooking(context.Background(), req, "203.0.113.7", "")
		appErr := appError(t, err)
		assert.Equal(t, 400, appErr.StatusCode)

		errs, ok := appErr.Data.([]validation.ValidationError)
		require.True(t, ok)
		require.Len(t, errs, 1)
		assert.Equal(t, validation.FieldPickupTime, errs[0].Field)
	})

	t.Run("the floor slot itself succeeds", func(t *testing.T) {
		req := validRequest()
		req.PickupDate = "2026-09-03"
		req.PickupTime = "10:00"

		resp, err := svc.CreateBooking(context.Background(), req, "203.0.113.7", "")
		require.NoError(t, err)
		assert.Equal(t, model.ReservationConfirmed, resp.Status)
	})
}

func TestCreateBookingUnknownCar(t *testing.T) {
	store := defaultStore()
	store.getCar = func(string) (*model.Car, error) { return nil, gorm.ErrRecordNotFound }

	svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

	_, err := svc.CreateBooking(context.Background(), validRequest(), "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestCreateBookingUnrentableCar(t *testing.T) {
	store := defaultStore()
	store.getCar = func(string) (*model.Car, error) {
		car := testCar()
		car.Rentable = false
		return car, nil
	}

	svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

	_, err := svc.CreateBooking(context.Background(), validRequest(), "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestCreateBookingCarTaken(t *testing.T) {
	svc := newBookingService(defaultStore(), allowed(), &mockAvailability{free: false}, testNow)

	_, err := svc.CreateBooking(context.Background(), validRequest(), "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Contains(t, appErr.Message, "bereits reserviert")
}

func TestCreateBookingOverlapRace(t *testing.T) {
	// Availability said free, but a competing insert won the race.
	store := defaultStore()
	store.createReservationGuarded = func(*model.Reservation) error { return ErrReservationOverlap }

	svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

	_, err := svc.CreateBooking(context.Background(), validRequest(), "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestCreateBookingSuccess(t *testing.T) {
	var saved *model.Reservation
	store := defaultStore()
	store.getExtrasByIDs = func(ids []string) ([]model.Extra, error) {
		return []model.Extra{{ID: "extra_gps", Label: "Navigationsgerät", PricePerDay: 10}}, nil
	}
	store.getPromotionByCode = func(code string) (*model.Promotion, error) {
		return &model.Promotion{
			Code:       "WELCOME10",
			PercentOff: 10,
			ValidFrom:  testNow.AddDate(0, -1, 0),
			ValidUntil: testNow.AddDate(0, 1, 0),
			Active:     true,
		}, nil
	}
	store.createReservationGuarded = func(res *model.Reservation) error {
		saved = res
		return nil
	}

	svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

	req := validRequest()
	req.ExtraIDs = []string{"extra_gps"}
	req.PromoCode = "WELCOME10"

	resp, err := svc.CreateBooking(context.Background(), req, "203.0.113.7", "user_9")
	require.NoError(t, err)

	// 2 rental days: car 200 + extras 20, minus 10% promo.
	assert.Equal(t, 2, resp.Pricing.Days)
	assert.Equal(t, 200.0, resp.Pricing.CarTotal)
	assert.Equal(t, 20.0, resp.Pricing.ExtrasTotal)
	assert.Equal(t, 22.0, resp.Pricing.Discount)
	assert.Equal(t, 198.0, resp.Pricing.Total)
	assert.Equal(t, shared.CurrencyCHF, resp.Pricing.Currency)

	assert.Equal(t, model.ReservationConfirmed, resp.Status)
	assert.Equal(t, "2026-09-05", resp.PickupDate)
	assert.NotEmpty(t, resp.ID)

	require.NotNil(t, saved)
	assert.Equal(t, model.ReservationConfirmed, saved.Status)
	assert.Equal(t, 198.0, saved.TotalPrice)
	require.NotNil(t, saved.UserID)
	assert.Equal(t, "user_9", *saved.UserID)
	assert.NotEmpty(t, saved.MainDriver)
}

func TestCreateBookingUnknownExtra(t *testing.T) {
	store := defaultStore()
	store.getExtrasByIDs = func(ids []string) ([]model.Extra, error) { return nil, nil }

	svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

	req := validRequest()
	req.ExtraIDs = []string{"extra_bogus"}

	_, err := svc.CreateBooking(context.Background(), req, "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestCreateBookingExpiredPromo(t *testing.T) {
	store := defaultStore()
	store.getPromotionByCode = func(string) (*model.Promotion, error) {
		return &model.Promotion{
			Code:       "ALT",
			PercentOff: 20,
			ValidFrom:  testNow.AddDate(-1, 0, 0),
			ValidUntil: testNow.AddDate(0, 0, -1),
			Active:     true,
		}, nil
	}

	svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

	req := validRequest()
	req.PromoCode = "ALT"

	_, err := svc.CreateBooking(context.Background(), req, "203.0.113.7", "")
	appErr := appError(t, err)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestCancelBooking(t *testing.T) {
	owner := "user_9"

	reservation := func(status string) *model.Reservation {
		return &model.Reservation{ID: "res_1", UserID: &owner, Status: status}
	}

	t.Run("owner cancels", func(t *testing.T) {
		var updatedStatus string
		store := defaultStore()
		store.getReservation = func(string) (*model.Reservation, error) {
			return reservation(model.ReservationConfirmed), nil
		}
		store.updateReservationStatus = func(id, status string) error {
			updatedStatus = status
			return nil
		}

		svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

		require.NoError(t, svc.CancelBooking(context.Background(), "res_1", owner, false))
		assert.Equal(t, model.ReservationCancelled, updatedStatus)
	})

	t.Run("admin cancels someone else's booking", func(t *testing.T) {
		store := defaultStore()
		store.getReservation = func(string) (*model.Reservation, error) {
			return reservation(model.ReservationConfirmed), nil
		}
		store.updateReservationStatus = func(string, string) error { return nil }

		svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

		require.NoError(t, svc.CancelBooking(context.Background(), "res_1", "", true))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		store := defaultStore()
		store.getReservation = func(string) (*model.Reservation, error) {
			return reservation(model.ReservationConfirmed), nil
		}

		svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

		err := svc.CancelBooking(context.Background(), "res_1", "user_13", false)
		appErr := appError(t, err)
		assert.Equal(t, 403, appErr.StatusCode)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		updated := false
		store := defaultStore()
		store.getReservation = func(string) (*model.Reservation, error) {
			return reservation(model.ReservationCancelled), nil
		}
		store.updateReservationStatus = func(string, string) error {
			updated = true
			return nil
		}

		svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

		require.NoError(t, svc.CancelBooking(context.Background(), "res_1", owner, false))
		assert.False(t, updated)
	})

	t.Run("completed bookings cannot be cancelled", func(t *testing.T) {
		store := defaultStore()
		store.getReservation = func(string) (*model.Reservation, error) {
			return reservation(model.ReservationCompleted), nil
		}

		svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

		err := svc.CancelBooking(context.Background(), "res_1", owner, false)
		appErr := appError(t, err)
		assert.Equal(t, 409, appErr.StatusCode)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		store := defaultStore()
		store.getReservation = func(string) (*model.Reservation, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := newBookingService(store, allowed(), &mockAvailability{free: true}, testNow)

		err := svc.CancelBooking(context.Background(), "res_1", owner, false)
		appErr := appError(t, err)
		assert.Equal(t, 404, appErr.StatusCode)
	})
}

func TestPickupTimeSlots(t *testing.T) {
	svc := newBookingService(defaultStore(), allowed(), &mockAvailability{free: true}, testNow)

	resp := svc.PickupTimeSlots(time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-09-03", resp.Date)
	assert.Equal(t, "2026-09-03", resp.EarliestPickup)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "10:00", resp.Slots[0])
}

func TestRentalDays(t *testing.T) {
	pickup := time.Date(2026, time.September, 5, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, RentalDays(pickup, pickup.Add(2*time.Hour)))
	assert.Equal(t, 1, RentalDays(pickup, pickup.Add(24*time.Hour)))
	assert.Equal(t, 2, RentalDays(pickup, pickup.Add(25*time.Hour)))
	assert.Equal(t, 2, RentalDays(pickup, pickup.Add(48*time.Hour)))
	assert.Equal(t, 1, RentalDays(pickup, pickup))
}

func TestBuildPricing(t *testing.T) {
	car := &model.Car{PricePerDay: 89.50}

	t.Run("car only", func(t *testing.T) {
		pricing := BuildPricing(car, nil, nil, 3)
		assert.Equal(t, 268.5, pricing.CarTotal)
		assert.Equal(t, 268.5, pricing.Total)
		assert.Equal(t, 0.0, pricing.Discount)
	})

	t.Run("extras and promo", func(t *testing.T) {
		extras := []model.Extra{
			{ID: "e1", Label: "Kindersitz", PricePerDay: 8},
			{ID: "e2", Label: "Navigationsgerät", PricePerDay: 5},
		}
		promo := &model.Promotion{Code: "SOMMER25", PercentOff: 25}

		pricing := BuildPricing(car, extras, promo, 2)
		assert.Equal(t, 179.0, pricing.CarTotal)
		assert.Equal(t, 26.0, pricing.ExtrasTotal)
		require.Len(t, pricing.Extras, 2)
		assert.Equal(t, 16.0, pricing.Extras[0].Total)
		assert.Equal(t, 51.25, pricing.Discount)
		assert.Equal(t, 153.75, pricing.Total)
	})
}
