package feed

import (
	"testing"
	"time"

	"github.com/ldelacroix/polycal/internal/config"
	"github.com/stretchr/testify/assert"
)

// TestCalculateNextOccurrence verifies the core temporal logic used to sort
// the contact list. It covers standard dates, year boundaries, and leaplings.
func TestCalculateNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (Non-Leap Year)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthDate    time.Time
		yearKnown    bool
		expectedDate time.Time
		expectedAge  int
		desc         string
	}{
		{
			name:         "Birthday in the past (this year)",
			birthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  36,
			desc:         "Jan 1 is before June 15, so next occurrence is 2026",
		},
		{
			name:         "Birthday in the future (this year)",
			birthDate:    time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
			desc:         "Dec 31 is after June 15, so next occurrence is 2025",
		},
		{
			name:         "Birthday is Today",
			birthDate:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
			desc:         "If birthday is today, it counts as the next occurrence",
		},
		{
			name:         "Year Unknown - Past",
			birthDate:    time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC),
			yearKnown:    false,
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  0,
			desc:         "Logic should calculate correct date but return age 0",
		},
		{
			name:         "Leapling - Non-Leap Year (Feb 29 -> Mar 1)",
			birthDate:    time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			yearKnown:    true,
			expectedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  26,
			desc:         "Go normalizes non-leap Feb 29 to Mar 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, age := calculateNextOccurrence(now, tt.birthDate, tt.yearKnown)
			assert.Equal(t, tt.expectedDate, next, tt.desc)
			assert.Equal(t, tt.expectedAge, age, "Age calculation mismatch")
		})
	}
}

// TestCalculateNextOccurrence_LeapYearContext verifies behavior when the
// *current* year is a leap year.
func TestCalculateNextOccurrence_LeapYearContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	birthDate := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	next, _ := calculateNextOccurrence(now, birthDate, true)

	// In 2024, Feb 29 exists. It should be preserved.
	expected := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, next, "In a leap year, the birthday should be Feb 29, not Mar 1")
}

// TestParseDate covers the vCard BDAY formats encountered in the wild,
// including the truncated year-unknown variants.
func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		yearKnown bool
		wantErr   bool
	}{
		{"ISO8601 Standard", "1990-10-25", 1990, 10, 25, true, false},
		{"Basic Format", "19901025", 1990, 10, 25, true, false},
		{"RFC3339", "1990-10-25T00:00:00Z", 1990, 10, 25, true, false},
		{"Truncated (Month-Day)", "--10-25", config.DefaultLeapYear, 10, 25, false, false},
		{"Truncated Basic", "--1025", config.DefaultLeapYear, 10, 25, false, false},
		{"Truncated Leapling", "--02-29", config.DefaultLeapYear, 2, 29, false, false},
		{"Garbage Data", "not-a-date", 0, 0, 0, false, true},
		{"Empty", "", 0, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, yearKnown, err := parseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.yearKnown, yearKnown)
			assert.Equal(t, tt.wantYear, got.Year())
			assert.Equal(t, tt.wantMonth, got.Month())
			assert.Equal(t, tt.wantDay, got.Day())
		})
	}
}
