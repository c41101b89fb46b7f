package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple name", "Max", false},
		{"accented name", "Jérôme", false},
		{"hyphenated name", "Anne-Sophie", false},
		{"name with apostrophe", "O'Brien", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"single letter", "A", true},
		{"contains digit", "M4x", true},
		{"repeated letter filler", "aaaa", true},
		{"test filler", "Testuser", true},
		{"asdf filler", "asdf", true},
		{"emoji", "Max😀", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.value, "Vorname")
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "Vorname", err.Field)
				assert.NotEmpty(t, err.Message)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "max.muster@bluewin.ch", false},
		{"valid subdomain", "max@mail.example.org", false},
		{"empty", "", true},
		{"missing at", "maxbluewin.ch", true},
		{"missing tld", "max@bluewin", true},
		{"two ats", "max@@bluewin.ch", true},
		{"placeholder test", "test@test.com", true},
		{"placeholder example", "example@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.value, "E-Mail")
			if tt.wantErr {
				require.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"swiss mobile with spaces", "+41 79 123 45 67", false},
		{"swiss mobile compact", "+41791234567", false},
		{"empty", "", true},
		{"too short", "079 123", true},
		{"all same digit", "1111111111", true},
		{"ascending run", "0123456789", true},
		{"descending run", "9876543210", true},
		{"repeated block", "121212121212", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.value, "Telefonnummer")
			if tt.wantErr {
				require.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidatePostalCode(t *testing.T) {
	assert.Nil(t, ValidatePostalCode("8004", "PLZ"))
	assert.Nil(t, ValidatePostalCode(" 3011 ", "PLZ"))
	require.NotNil(t, ValidatePostalCode("", "PLZ"))
	require.NotNil(t, ValidatePostalCode("800", "PLZ"))
	require.NotNil(t, ValidatePostalCode("80000", "PLZ"))
	require.NotNil(t, ValidatePostalCode("8O04", "PLZ"))
}

func TestValidateAddress(t *testing.T) {
	assert.Nil(t, ValidateAddress("Bahnhofstrasse 1, Zürich", "Abholort"))
	require.NotNil(t, ValidateAddress("", "Abholort"))
	require.NotNil(t, ValidateAddress("ZH", "Abholort"))
}
