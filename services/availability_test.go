package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpenrent/alpenrent_api/model"
)

type mockReservationStore struct {
	listRentableCars       func() ([]model.Car, error)
	findReservationsForCar func(carID string, pickupDate, dropoffDate time.Time) ([]model.Reservation, error)
}

func (m *mockReservationStore) ListRentableCars() ([]model.Car, error) {
	return m.listRentableCars()
}

func (m *mockReservationStore) FindReservationsForCar(carID string, pickupDate, dropoffDate time.Time) ([]model.Reservation, error) {
	return m.findReservationsForCar(carID, pickupDate, dropoffDate)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func confirmed(carID string, pickup, dropoff time.Time) model.Reservation {
	return model.Reservation{
		ID:          "res_1",
		CarID:       carID,
		PickupDate:  pickup,
		DropoffDate: dropoff,
		Status:      model.ReservationConfirmed,
	}
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint before", day(2026, 3, 1), day(2026, 3, 3), day(2026, 3, 5), day(2026, 3, 7), false},
		{"disjoint after", day(2026, 3, 5), day(2026, 3, 7), day(2026, 3, 1), day(2026, 3, 3), false},
		{"adjacent days do not overlap", day(2026, 3, 1), day(2026, 3, 3), day(2026, 3, 4), day(2026, 3, 7), false},
		{"shared boundary day overlaps", day(2026, 3, 1), day(2026, 3, 3), day(2026, 3, 3), day(2026, 3, 7), true},
		{"contained", day(2026, 3, 2), day(2026, 3, 4), day(2026, 3, 1), day(2026, 3, 7), true},
		{"containing", day(2026, 3, 1), day(2026, 3, 7), day(2026, 3, 2), day(2026, 3, 4), true},
		{"partial overlap", day(2026, 3, 1), day(2026, 3, 5), day(2026, 3, 4), day(2026, 3, 9), true},
		{"identical", day(2026, 3, 1), day(2026, 3, 5), day(2026, 3, 1), day(2026, 3, 5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestReservationBlocks(t *testing.T) {
	pickup, dropoff := day(2026, 3, 10), day(2026, 3, 14)

	t.Run("confirmed overlap blocks", func(t *testing.T) {
		res := confirmed("car_1", day(2026, 3, 12), day(2026, 3, 16))
		assert.True(t, ReservationBlocks(res, pickup, dropoff))
	})

	t.Run("cancelled does not block", func(t *testing.T) {
		res := confirmed("car_1", day(2026, 3, 12), day(2026, 3, 16))
		res.Status = model.ReservationCancelled
		assert.False(t, ReservationBlocks(res, pickup, dropoff))
	})

	t.Run("completed does not block", func(t *testing.T) {
		res := confirmed("car_1", day(2026, 3, 12), day(2026, 3, 16))
		res.Status = model.ReservationCompleted
		assert.False(t, ReservationBlocks(res, pickup, dropoff))
	})

	t.Run("confirmed outside interval does not block", func(t *testing.T) {
		res := confirmed("car_1", day(2026, 3, 15), day(2026, 3, 18))
		assert.False(t, ReservationBlocks(res, pickup, dropoff))
	})
}

func TestCarAvailable(t *testing.T) {
	pickup, dropoff := day(2026, 3, 10), day(2026, 3, 14)

	t.Run("free car", func(t *testing.T) {
		svc := &AvailabilityService{store: &mockReservationStore{
			findReservationsForCar: func(string, time.Time, time.Time) ([]model.Reservation, error) {
				return nil, nil
			},
		}}

		free, err := svc.CarAvailable("car_1", pickup, dropoff)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("blocked by confirmed reservation", func(t *testing.T) {
		svc := &AvailabilityService{store: &mockReservationStore{
			findReservationsForCar: func(string, time.Time, time.Time) ([]model.Reservation, error) {
				return []model.Reservation{confirmed("car_1", day(2026, 3, 13), day(2026, 3, 20))}, nil
			},
		}}

		free, err := svc.CarAvailable("car_1", pickup, dropoff)
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("only cancelled reservations in range", func(t *testing.T) {
		cancelled := confirmed("car_1", day(2026, 3, 13), day(2026, 3, 20))
		cancelled.Status = model.ReservationCancelled

		svc := &AvailabilityService{store: &mockReservationStore{
			findReservationsForCar: func(string, time.Time, time.Time) ([]model.Reservation, error) {
				return []model.Reservation{cancelled}, nil
			},
		}}

		free, err := svc.CarAvailable("car_1", pickup, dropoff)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("store error propagates", func(t *testing.T) {
		svc := &AvailabilityService{store: &mockReservationStore{
			findReservationsForCar: func(string, time.Time, time.Time) ([]model.Reservation, error) {
				return nil, errors.New("connection reset")
			},
		}}

		_, err := svc.CarAvailable("car_1", pickup, dropoff)
		assert.Error(t, err)
	})
}

func TestAvailableCars(t *testing.T) {
	pickup, dropoff := day(2026, 3, 10), day(2026, 3, 14)
	fleet := []model.Car{{ID: "car_1"}, {ID: "car_2"}, {ID: "car_3"}}

	t.Run("filters booked cars", func(t *testing.T) {
		svc := &AvailabilityService{store: &mockReservationStore{
			listRentableCars: func() ([]model.Car, error) { return fleet, nil },
			findReservationsForCar: func(carID string, _, _ time.Time) ([]model.Reservation, error) {
				if carID == "car_2" {
					return []model.Reservation{confirmed(carID, pickup, dropoff)}, nil
				}
				return nil, nil
			},
		}}

		cars, err := svc.AvailableCars(pickup, dropoff)
		require.NoError(t, err)
		require.Len(t, cars, 2)
		assert.Equal(t, "car_1", cars[0].ID)
		assert.Equal(t, "car_3", cars[1].ID)
	})

	t.Run("per-car error excludes the car only", func(t *testing.T) {
		svc := &AvailabilityService{store: &mockReservationStore{
			listRentableCars: func() ([]model.Car, error) { return fleet, nil },
			findReservationsForCar: func(carID string, _, _ time.Time) ([]model.Reservation, error) {
				if carID == "car_2" {
					return nil, errors.New("connection reset")
				}
				return nil, nil
			},
		}}

		cars, err := svc.AvailableCars(pickup, dropoff)
		require.NoError(t, err)
		require.Len(t, cars, 2)
	})

	t.Run("fleet listing error fails the call", func(t *testing.T) {
		svc := &AvailabilityService{store: &mockReservationStore{
			listRentableCars: func() ([]model.Car, error) { return nil, errors.New("connection reset") },
		}}

		_, err := svc.AvailableCars(pickup, dropoff)
		assert.Error(t, err)
	})
}
