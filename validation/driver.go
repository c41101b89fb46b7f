package validation

import (
	"fmt"
	"strings"
	"time"
)

const (
	minDriverAge      = 18
	FieldBirthDate    = "Geburtsdatum"
	FieldLicenseIssue = "Führerausweis"
)

// Driver is the subset of a driver record the consistency checks need.
type Driver struct {
	FirstName        string
	LastName         string
	BirthDate        time.Time
	LicenseIssueDate time.Time
}

// ValidateBirthDate rejects future birth dates and drivers under 18.
// Age is computed with calendar-aware year/month/day subtraction, not
// simple year arithmetic.
func ValidateBirthDate(birthDate, now time.Time, label string) *ValidationError {
	if birthDate.IsZero() {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist erforderlich", label)}
	}
	if birthDate.After(now) {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s darf nicht in der Zukunft liegen", label)}
	}
	if Age(birthDate, now) < minDriverAge {
		return &ValidationError{Field: label, Message: "Der Fahrer muss mindestens 18 Jahre alt sein"}
	}
	return nil
}

// ValidateLicenseIssueDate checks the license against the clock and the
// driver's birth date: not in the future, held for at least one year,
// and not issued before the 18th birthday.
func ValidateLicenseIssueDate(issueDate, birthDate, now time.Time, label string) *ValidationError {
	if issueDate.IsZero() {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist erforderlich", label)}
	}
	if issueDate.After(now) {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s darf nicht in der Zukunft liegen", label)}
	}
	if issueDate.After(now.AddDate(-1, 0, 0)) {
		return &ValidationError{Field: label, Message: "Der Führerausweis muss seit mindestens einem Jahr vorhanden sein"}
	}
	if !birthDate.IsZero() && issueDate.Before(birthDate.AddDate(minDriverAge, 0, 0)) {
		return &ValidationError{Field: label, Message: "Der Führerausweis kann nicht vor dem 18. Geburtstag ausgestellt worden sein"}
	}
	return nil
}

// DriversIdentical reports whether two driver records describe the same
// person: first name, last name and birth date all match after trimming
// and case folding. Used to forbid registering one person as both main
// and additional driver.
func DriversIdentical(a, b Driver) bool {
	return strings.EqualFold(strings.TrimSpace(a.FirstName), strings.TrimSpace(b.FirstName)) &&
		strings.EqualFold(strings.TrimSpace(a.LastName), strings.TrimSpace(b.LastName)) &&
		sameDay(a.BirthDate, b.BirthDate)
}

// Age returns full years between birthDate and now.
func Age(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		years--
	}
	return years
}
