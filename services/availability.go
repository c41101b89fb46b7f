package services

import (
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/alpenrent/alpenrent_api/model"
)

// ReservationStore is the slice of the persistence layer the resolver
// needs; PostgresService implements it. Kept as an interface so tests
// can inject fakes.
type ReservationStore interface {
	ListRentableCars() ([]model.Car, error)
	FindReservationsForCar(carID string, pickupDate, dropoffDate time.Time) ([]model.Reservation, error)
}

// AvailabilityService decides whether a car is bookable for a requested
// interval. It is used to filter the fleet listing and as the final
// guard before a reservation is committed.
type AvailabilityService struct {
	context.DefaultService

	store ReservationStore
}

const AVAILABILITY_SVC = "availability_svc"

func (svc AvailabilityService) Id() string {
	return AVAILABILITY_SVC
}

func (svc *AvailabilityService) Start() error {
	svc.store = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// CarAvailable reports whether no confirmed reservation for the car
// overlaps [pickupDate, dropoffDate] (inclusive calendar dates).
func (svc *AvailabilityService) CarAvailable(carID string, pickupDate, dropoffDate time.Time) (bool, error) {
	reservations, err := svc.store.FindReservationsForCar(carID, pickupDate, dropoffDate)
	if err != nil {
		return false, err
	}

	for _, r := range reservations {
		if ReservationBlocks(r, pickupDate, dropoffDate) {
			return false, nil
		}
	}
	return true, nil
}

// AvailableCars filters the rentable fleet down to cars free for the
// requested interval. A store error for a single car excludes that car
// instead of failing the whole listing.
func (svc *AvailabilityService) AvailableCars(pickupDate, dropoffDate time.Time) ([]model.Car, error) {
	cars, err := svc.store.ListRentableCars()
	if err != nil {
		return nil, err
	}

	available := make([]model.Car, 0, len(cars))
	for _, car := range cars {
		free, err := svc.CarAvailable(car.ID, pickupDate, dropoffDate)
		if err != nil {
			log.WithError(err).WithField("car_id", car.ID).
				Warn("Availability check failed, excluding car from listing")
			continue
		}
		if free {
			available = append(available, car)
		}
	}
	return available, nil
}

// ReservationBlocks reports whether an existing reservation makes the
// requested interval unbookable: only confirmed reservations block, and
// the classic inclusive interval-overlap test applies.
func ReservationBlocks(r model.Reservation, pickupDate, dropoffDate time.Time) bool {
	if r.Status != model.ReservationConfirmed {
		return false
	}
	return IntervalsOverlap(r.PickupDate, r.DropoffDate, pickupDate, dropoffDate)
}

// IntervalsOverlap is the inclusive calendar-date overlap test:
// a.start <= b.end && a.end >= b.start.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
