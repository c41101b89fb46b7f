package validation

import (
	"fmt"
	"time"
)

const (
	// Bookings submitted at or after this local hour need an extra
	// preparation day before the car can be picked up.
	pickupCutoffHour = 15

	// Minimum lead time between booking submission and pickup.
	minPickupLead = 48 * time.Hour

	FieldPickupDate  = "Abholdatum"
	FieldPickupTime  = "Abholzeit"
	FieldDropoffDate = "Rückgabedatum"
	FieldDropoffTime = "Rückgabezeit"
)

// EarliestPickupDate returns the first calendar date a rental may start
// on, normalized to midnight. After the 15:00 cutoff the fleet needs an
// extra preparation day.
func EarliestPickupDate(now time.Time) time.Time {
	days := 2
	if now.Hour() >= pickupCutoffHour {
		days = 3
	}
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// EarliestPickupTime returns the earliest legal pickup time of day as
// "HH:00". It only constrains the date returned by EarliestPickupDate;
// later dates carry no time-of-day restriction.
func EarliestPickupTime(now time.Time) string {
	return fmt.Sprintf("%02d:00", now.Add(minPickupLead).Hour())
}

// AvailableTimeSlots enumerates the on-the-hour pickup slots for a
// date. On the earliest legal date, slots before the 48h lead time are
// filtered out; every other date gets the full set.
func AvailableTimeSlots(date, now time.Time) []string {
	slots := make([]string, 0, 24)
	for h := 0; h < 24; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}

	if !sameDay(date, EarliestPickupDate(now)) {
		return slots
	}

	earliest := EarliestPickupTime(now)
	filtered := slots[:0]
	for _, slot := range slots {
		if slot >= earliest {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// IsDateDisabled reports whether a calendar date may not be selected as
// pickup date.
func IsDateDisabled(date, now time.Time) bool {
	return truncateToDay(date).Before(EarliestPickupDate(now))
}

// ValidateBookingDates checks a (pickup, dropoff) date/time pair.
// Rules run in a fixed priority order and only the first violation is
// returned, so callers can rely on which message surfaces first.
func ValidateBookingDates(pickupDate time.Time, pickupTime string, dropoffDate time.Time, dropoffTime string, now time.Time) *ValidationError {
	if pickupDate.IsZero() {
		return &ValidationError{Field: FieldPickupDate, Message: "Abholdatum ist erforderlich"}
	}
	if pickupTime == "" {
		return &ValidationError{Field: FieldPickupTime, Message: "Abholzeit ist erforderlich"}
	}
	if dropoffDate.IsZero() {
		return &ValidationError{Field: FieldDropoffDate, Message: "Rückgabedatum ist erforderlich"}
	}
	if dropoffTime == "" {
		return &ValidationError{Field: FieldDropoffTime, Message: "Rückgabezeit ist erforderlich"}
	}

	earliestDate := EarliestPickupDate(now)
	pickupDay := truncateToDay(pickupDate)

	if pickupDay.Before(earliestDate) {
		if now.Hour() >= pickupCutoffHour {
			return &ValidationError{
				Field: FieldPickupDate,
				Message: fmt.Sprintf("Abholung frühestens am %s möglich: Buchungen nach 15:00 Uhr benötigen einen zusätzlichen Vorbereitungstag",
					earliestDate.Format("02.01.2006")),
			}
		}
		return &ValidationError{
			Field: FieldPickupDate,
			Message: fmt.Sprintf("Abholung frühestens am %s möglich: es gilt eine Vorlaufzeit von mindestens 48 Stunden",
				earliestDate.Format("02.01.2006")),
		}
	}

	if sameDay(pickupDay, earliestDate) {
		if earliest := EarliestPickupTime(now); pickupTime < earliest {
			return &ValidationError{
				Field:   FieldPickupTime,
				Message: fmt.Sprintf("Abholung an diesem Tag frühestens um %s Uhr möglich (48 Stunden Vorlaufzeit)", earliest),
			}
		}
	}

	pickupAt, err := CombineDateTime(pickupDate, pickupTime)
	if err != nil {
		return &ValidationError{Field: FieldPickupTime, Message: "Ungültige Abholzeit"}
	}
	dropoffAt, err := CombineDateTime(dropoffDate, dropoffTime)
	if err != nil {
		return &ValidationError{Field: FieldDropoffTime, Message: "Ungültige Rückgabezeit"}
	}

	if pickupAt.Before(now) {
		return &ValidationError{Field: FieldPickupDate, Message: "Die Abholung darf nicht in der Vergangenheit liegen"}
	}
	if dropoffAt.Before(now) {
		return &ValidationError{Field: FieldDropoffDate, Message: "Die Rückgabe darf nicht in der Vergangenheit liegen"}
	}
	if !dropoffAt.After(pickupAt) {
		return &ValidationError{Field: FieldDropoffDate, Message: "Die Rückgabe muss nach der Abholung liegen"}
	}

	return nil
}

// CombineDateTime merges a calendar date with an "HH:MM" time of day.
func CombineDateTime(date time.Time, timeOfDay string) (time.Time, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day %q", timeOfDay)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
