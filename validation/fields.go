// Package validation contains the pure booking validation rules: field
// checks, the pickup lead-time engine and the driver consistency checks.
// Nothing in here touches the database or the network; functions that
// depend on the clock take `now` as a parameter.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ValidationError is a single user-correctable input problem. A nil
// *ValidationError means the field is valid. Validators never panic.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalRegex = regexp.MustCompile(`^\d{4}$`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// Filler substrings that show up when people type nonsense into name
// fields. Best-effort UX nudge, not a security control.
var fillerNameParts = []string{"test", "fake", "xxx", "asdf", "qwer", "aaa", "bbb"}

var fillerEmailPairs = []string{
	"test@test", "fake@fake", "example@example", "asdf@asdf",
	"abc@abc", "a@a", "mail@mail", "email@email", "demo@demo",
}

// ValidateName checks a person name field (Vorname/Nachname). Latin
// letters including accented ones, hyphens, apostrophes and spaces are
// allowed.
func ValidateName(value, label string) *ValidationError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist erforderlich", label)}
	}
	if len([]rune(trimmed)) < 2 {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s muss mindestens 2 Zeichen lang sein", label)}
	}
	for _, r := range trimmed {
		if unicode.Is(unicode.Latin, r) || r == '-' || r == '\'' || r == ' ' {
			continue
		}
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s darf nur Buchstaben, Bindestriche und Leerzeichen enthalten", label)}
	}
	if looksLikeFillerName(trimmed) {
		return &ValidationError{Field: label, Message: fmt.Sprintf("Bitte geben Sie einen echten %s an", label)}
	}
	return nil
}

func looksLikeFillerName(name string) bool {
	lower := strings.ToLower(name)
	if allSameRune(lower) {
		return true
	}
	for _, part := range fillerNameParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

func allSameRune(s string) bool {
	runes := []rune(s)
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}

// ValidateEmail checks basic local@domain.tld shape and rejects known
// placeholder addresses.
func ValidateEmail(value, label string) *ValidationError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist erforderlich", label)}
	}
	if !emailRegex.MatchString(trimmed) || strings.Count(trimmed, "@") != 1 {
		return &ValidationError{Field: label, Message: "Ungültige E-Mail-Adresse"}
	}
	lower := strings.ToLower(trimmed)
	for _, pair := range fillerEmailPairs {
		if strings.Contains(lower, pair) {
			return &ValidationError{Field: label, Message: "Bitte geben Sie eine echte E-Mail-Adresse an"}
		}
	}
	return nil
}

// ValidatePhone strips formatting and requires at least 10 digits so a
// country code fits. Known filler digit sequences are rejected.
func ValidatePhone(value, label string) *ValidationError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist erforderlich", label)}
	}
	digits := nonDigits.ReplaceAllString(trimmed, "")
	if len(digits) < 10 {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist unvollständig (mindestens 10 Ziffern inkl. Landesvorwahl)", label)}
	}
	if looksLikeFillerDigits(digits) {
		return &ValidationError{Field: label, Message: fmt.Sprintf("Bitte geben Sie eine echte %s an", label)}
	}
	return nil
}

func looksLikeFillerDigits(digits string) bool {
	if allSameRune(digits) {
		return true
	}
	if isSequentialRun(digits) {
		return true
	}
	return hasRepeatedBlock(digits)
}

// isSequentialRun reports digit strings like 0123456789 or 9876543210.
func isSequentialRun(digits string) bool {
	asc, desc := true, true
	for i := 1; i < len(digits); i++ {
		diff := int(digits[i]) - int(digits[i-1])
		if diff != 1 {
			asc = false
		}
		if diff != -1 {
			desc = false
		}
	}
	return asc || desc
}

// hasRepeatedBlock reports strings built from one short block repeated
// end to end, like 121212 or 123123123.
func hasRepeatedBlock(digits string) bool {
	for size := 2; size <= 3; size++ {
		if len(digits)%size != 0 || len(digits)/size < 2 {
			continue
		}
		block := digits[:size]
		repeated := true
		for i := size; i < len(digits); i += size {
			if digits[i:i+size] != block {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}

// ValidatePostalCode accepts the Swiss four-digit format.
func ValidatePostalCode(value, label string) *ValidationError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist erforderlich", label)}
	}
	if !postalRegex.MatchString(trimmed) {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s muss aus genau 4 Ziffern bestehen", label)}
	}
	return nil
}

// ValidateAddress requires a minimally useful free-text location.
func ValidateAddress(value, label string) *ValidationError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s ist erforderlich", label)}
	}
	if len([]rune(trimmed)) < 5 {
		return &ValidationError{Field: label, Message: fmt.Sprintf("%s muss mindestens 5 Zeichen lang sein", label)}
	}
	return nil
}
