package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFloorDiv verifies floor semantics on the sign combinations where Go's
// native division would truncate the wrong way.
func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
		{0, 5, 0, 0},
		{-1, 100, -1, 99},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.q, floorDiv(tt.a, tt.b), "floorDiv(%d, %d)", tt.a, tt.b)
		assert.Equal(t, tt.r, floorMod(tt.a, tt.b), "floorMod(%d, %d)", tt.a, tt.b)
	}
}

// TestGregorianToJDN_Fixtures checks the conversion against externally known
// day numbers, including the JDN origin itself.
func TestGregorianToJDN_Fixtures(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   int
		jdn   JDN
	}{
		{"JDN origin", -4713, 11, 24, 0},
		{"MJD epoch", 1858, 11, 17, 2400001},
		{"J2000", 2000, 1, 1, 2451545},
		{"recent new year", 2024, 1, 1, 2460311},
		{"recent leap day", 2024, 2, 29, 2460370},
		{"year zero", 0, 1, 1, 1721060},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.jdn, GregorianToJDN(tt.year, tt.month, tt.day))

			y, m, d := JDNToGregorian(tt.jdn)
			assert.Equal(t, tt.year, y)
			assert.Equal(t, tt.month, m)
			assert.Equal(t, tt.day, d)
		})
	}
}

// TestJulianToJDN_Fixtures anchors the Julian-calendar formulas: its own
// epoch and the 13-day offset against the modern Gregorian calendar.
func TestJulianToJDN_Fixtures(t *testing.T) {
	// The JDN origin is Julian -4712-01-01 by definition.
	assert.Equal(t, JDN(0), JulianToJDN(-4712, 1, 1))

	// Gregorian 2024-01-01 is Julian 2023-12-19 (13-day offset).
	assert.Equal(t, GregorianToJDN(2024, 1, 1), JulianToJDN(2023, 12, 19))

	y, m, d := JDNToJulian(GregorianToJDN(2024, 1, 1))
	assert.Equal(t, 2023, y)
	assert.Equal(t, 12, m)
	assert.Equal(t, 19, d)
}

// TestJDN_RoundTrip sweeps a wide JDN span, including pre-epoch dates, and
// verifies both formula pairs invert exactly.
func TestJDN_RoundTrip(t *testing.T) {
	// Step 97 keeps the sweep fast while hitting every weekday and month.
	for jdn := JDN(-200000); jdn <= 3000000; jdn += 97 {
		gy, gm, gd := JDNToGregorian(jdn)
		assert.Equal(t, jdn, GregorianToJDN(gy, gm, gd), "gregorian at JDN %d", jdn)

		jy, jm, jd := JDNToJulian(jdn)
		assert.Equal(t, jdn, JulianToJDN(jy, jm, jd), "julian at JDN %d", jdn)
	}
}

// TestDayOfWeek anchors the weekday cycle on known dates.
func TestDayOfWeek(t *testing.T) {
	// 2024-01-01 was a Monday.
	assert.Equal(t, 1, DayOfWeek(GregorianToJDN(2024, 1, 1)))
	// 2000-01-01 was a Saturday.
	assert.Equal(t, 6, DayOfWeek(GregorianToJDN(2000, 1, 1)))
	// The cycle is 7-periodic everywhere, including negative JDNs.
	assert.Equal(t, DayOfWeek(-3), DayOfWeek(-3+7*1000))
}

// TestLeapYearRules covers the century boundaries where the two calendars
// diverge.
func TestLeapYearRules(t *testing.T) {
	assert.True(t, IsGregorianLeapYear(2000))
	assert.False(t, IsGregorianLeapYear(1900))
	assert.True(t, IsGregorianLeapYear(2024))
	assert.False(t, IsGregorianLeapYear(2023))
	assert.True(t, IsGregorianLeapYear(0), "year zero is leap (divisible by 400)")
	assert.True(t, IsGregorianLeapYear(-4), "negative leap years use floored arithmetic")

	assert.True(t, IsJulianLeapYear(1900), "all multiples of 4 are Julian leap years")
	assert.False(t, IsJulianLeapYear(1901))
	assert.True(t, IsJulianLeapYear(-8))
}

// TestMonthDays verifies the month-length tables at the February boundary.
func TestMonthDays(t *testing.T) {
	assert.Equal(t, 29, gregorianMonthDays(2024, 2))
	assert.Equal(t, 28, gregorianMonthDays(1900, 2))
	assert.Equal(t, 29, julianMonthDays(1900, 2))
	assert.Equal(t, 31, gregorianMonthDays(2023, 12))
	assert.Equal(t, 0, gregorianMonthDays(2023, 13), "invalid month yields zero")
}
