package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAge(t *testing.T) {
	birth := date(2008, time.March, 10)

	assert.Equal(t, 17, Age(birth, date(2026, time.March, 9)))
	assert.Equal(t, 18, Age(birth, date(2026, time.March, 10)))
	assert.Equal(t, 18, Age(birth, date(2026, time.March, 11)))
	assert.Equal(t, 18, Age(birth, date(2027, time.February, 28)))
}

func TestValidateBirthDate(t *testing.T) {
	now := at(2026, time.March, 10, 12, 0)

	t.Run("adult passes", func(t *testing.T) {
		assert.Nil(t, ValidateBirthDate(date(1990, time.May, 4), now, FieldBirthDate))
	})

	t.Run("exactly 18 today passes", func(t *testing.T) {
		assert.Nil(t, ValidateBirthDate(date(2008, time.March, 10), now, FieldBirthDate))
	})

	t.Run("18 tomorrow fails", func(t *testing.T) {
		err := ValidateBirthDate(date(2008, time.March, 11), now, FieldBirthDate)
		require.NotNil(t, err)
		assert.Contains(t, err.Message, "18 Jahre")
	})

	t.Run("future birth date fails", func(t *testing.T) {
		err := ValidateBirthDate(date(2027, time.January, 1), now, FieldBirthDate)
		require.NotNil(t, err)
	})

	t.Run("zero value fails", func(t *testing.T) {
		err := ValidateBirthDate(time.Time{}, now, FieldBirthDate)
		require.NotNil(t, err)
	})
}

func TestValidateLicenseIssueDate(t *testing.T) {
	now := at(2026, time.March, 10, 12, 0)
	birth := date(1990, time.May, 4)

	t.Run("held for years passes", func(t *testing.T) {
		assert.Nil(t, ValidateLicenseIssueDate(date(2010, time.June, 1), birth, now, FieldLicenseIssue))
	})

	t.Run("issued exactly one year ago passes", func(t *testing.T) {
		assert.Nil(t, ValidateLicenseIssueDate(date(2025, time.March, 10), birth, now, FieldLicenseIssue))
	})

	t.Run("issued less than a year ago fails", func(t *testing.T) {
		err := ValidateLicenseIssueDate(date(2025, time.March, 11), birth, now, FieldLicenseIssue)
		require.NotNil(t, err)
		assert.Contains(t, err.Message, "einem Jahr")
	})

	t.Run("issued in the future fails", func(t *testing.T) {
		err := ValidateLicenseIssueDate(date(2026, time.April, 1), birth, now, FieldLicenseIssue)
		require.NotNil(t, err)
	})

	t.Run("issued before 18th birthday fails", func(t *testing.T) {
		err := ValidateLicenseIssueDate(date(2008, time.May, 3), birth, now, FieldLicenseIssue)
		require.NotNil(t, err)
		assert.Contains(t, err.Message, "18. Geburtstag")
	})

	t.Run("issued on 18th birthday passes", func(t *testing.T) {
		assert.Nil(t, ValidateLicenseIssueDate(date(2008, time.May, 4), birth, now, FieldLicenseIssue))
	})

	t.Run("zero value fails", func(t *testing.T) {
		err := ValidateLicenseIssueDate(time.Time{}, birth, now, FieldLicenseIssue)
		require.NotNil(t, err)
	})
}

func TestDriversIdentical(t *testing.T) {
	base := Driver{
		FirstName: "Anna",
		LastName:  "Keller",
		BirthDate: date(1990, time.May, 4),
	}

	t.Run("same person", func(t *testing.T) {
		assert.True(t, DriversIdentical(base, base))
	})

	t.Run("case and whitespace are ignored", func(t *testing.T) {
		other := Driver{FirstName: "  anna ", LastName: "KELLER", BirthDate: date(1990, time.May, 4)}
		assert.True(t, DriversIdentical(base, other))
	})

	t.Run("different birth date", func(t *testing.T) {
		other := base
		other.BirthDate = date(1991, time.May, 4)
		assert.False(t, DriversIdentical(base, other))
	})

	t.Run("different name", func(t *testing.T) {
		other := base
		other.FirstName = "Annina"
		assert.False(t, DriversIdentical(base, other))
	})
}
