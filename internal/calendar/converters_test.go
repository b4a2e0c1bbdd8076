package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEpochInvariants verifies that the first day of each calendar maps
// exactly onto its declared epoch JDN. The Mayan/Aztec cycle converters use
// their repurposed field encodings for the epoch position.
func TestEpochInvariants(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		kind  Kind
		year  int
		month int
		day   int
	}{
		{Gregorian, 1, 1, 1},
		{Julian, 1, 1, 1},
		{Islamic, 1, 1, 1},
		{Hebrew, 1, 1, 1},
		{Persian, 1, 1, 1},
		{Chinese, 1900, 1, 1},
		{Ethiopian, 1, 1, 1},
		{Coptic, 1, 1, 1},
		{IndianSaka, 1, 1, 1},
		{Bahai, 1, 1, 1},
		{ThaiBuddhist, 1, 1, 1},
		{MayanTzolkin, 0, 20, 4}, // 4 Ajaw
		{MayanHaab, 0, 18, 9},    // Kumk'u 9 (1-based)
		{MayanLongCount, 0, 0, 0},
		{Cherokee, 1, 1, 1},
		{Iroquois, 1, 1, 1},
		{AztecXiuhpohualli, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			conv, err := reg.Converter(tt.kind)
			require.NoError(t, err)

			jdn, err := conv.ToJDN(tt.year, tt.month, tt.day)
			require.NoError(t, err)
			assert.Equal(t, conv.Info().EpochJDN, jdn)
		})
	}
}

// TestFromJDN_ReferenceDay converts one modern day (Gregorian 2024-01-01,
// JDN 2460311) into every calendar and pins the expected engine output.
func TestFromJDN_ReferenceDay(t *testing.T) {
	const refJDN = JDN(2460311)
	reg := NewRegistry()

	tests := []struct {
		kind  Kind
		year  int
		month int
		day   int
		era   string
	}{
		{Gregorian, 2024, 1, 1, "CE"},
		{Julian, 2023, 12, 19, "CE"},
		{Islamic, 1445, 6, 20, "AH"},
		{Hebrew, 5784, 1, 15, "AM"},
		{Persian, 1402, 10, 11, "AP"},
		{Chinese, 2023, 12, 15, ""},
		{Ethiopian, 2016, 4, 22, "EE"},
		{Coptic, 1740, 4, 22, "AM"},
		{IndianSaka, 1945, 10, 11, "Saka"},
		{Bahai, 180, 16, 2, "BE"},
		{ThaiBuddhist, 2567, 1, 1, "BE"},
		{MayanTzolkin, 7215, 8, 2, ""}, // 2 Lamat
		{MayanHaab, 5140, 14, 17, ""},  // K'ank'in
		{MayanLongCount, 13, 0, 4468, ""},
		{Cherokee, 2024, 1, 1, ""},
		{Iroquois, 2024, 1, 1, ""},
		{AztecXiuhpohualli, 5139, 15, 14, ""},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			conv, err := reg.Converter(tt.kind)
			require.NoError(t, err)

			d := conv.FromJDN(refJDN)
			assert.Equal(t, tt.year, d.Year)
			assert.Equal(t, tt.month, d.Month)
			assert.Equal(t, tt.day, d.Day)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.era, d.Era)

			// The mapping must invert exactly.
			back, err := conv.ToJDN(d.Year, d.Month, d.Day)
			require.NoError(t, err)
			assert.Equal(t, refJDN, back)
		})
	}
}

// TestAllConverters_RoundTrip sweeps a 6000+ year JDN span through every
// calendar, including each system's pre-epoch region, and checks that
// FromJDN followed by ToJDN is the identity.
func TestAllConverters_RoundTrip(t *testing.T) {
	reg := NewRegistry()

	for _, kind := range Kinds() {
		conv, err := reg.Converter(kind)
		require.NoError(t, err)

		for jdn := JDN(300000); jdn <= 2600000; jdn += 5009 {
			d := conv.FromJDN(jdn)
			back, err := conv.ToJDN(d.Year, d.Month, d.Day)
			require.NoError(t, err, "%s at JDN %d gave %+v", kind, jdn, d)
			assert.Equal(t, jdn, back, "%s at JDN %d", kind, jdn)
		}
	}
}

// TestToJDN_RejectsInvalidDates exercises the per-calendar validation rules,
// including the pairs where one calendar accepts a date another rejects.
func TestToJDN_RejectsInvalidDates(t *testing.T) {
	reg := NewRegistry()

	invalid := []struct {
		name  string
		kind  Kind
		year  int
		month int
		day   int
	}{
		{"gregorian non-leap Feb 29", Gregorian, 1900, 2, 29},
		{"gregorian month 13", Gregorian, 2024, 13, 1},
		{"gregorian day zero", Gregorian, 2024, 1, 0},
		{"islamic month 13", Islamic, 1445, 13, 1},
		{"islamic Safar 30", Islamic, 1445, 2, 30},
		{"hebrew month 13 in common year", Hebrew, 5783, 13, 1},
		{"hebrew Cheshvan 30 in deficient year", Hebrew, 5784, 2, 30},
		{"persian Esfand 30 in common year", Persian, 1402, 12, 30},
		{"coptic 6th epagomenal day in common year", Coptic, 1740, 13, 6},
		{"bahai 5th intercalary day in common year", Bahai, 181, 19, 5},
		{"tzolkin name index 21", MayanTzolkin, 0, 21, 1},
		{"tzolkin number 14", MayanTzolkin, 0, 1, 14},
		{"haab Wayeb' day 6", MayanHaab, 0, 19, 6},
		{"aztec Nemontemi day 6", AztecXiuhpohualli, 0, 19, 6},
		{"long count katun 20", MayanLongCount, 0, 20, 0},
		{"long count tun 20", MayanLongCount, 0, 0, 8000},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := reg.Converter(tt.kind)
			require.NoError(t, err)

			_, err = conv.ToJDN(tt.year, tt.month, tt.day)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}

	valid := []struct {
		name  string
		kind  Kind
		year  int
		month int
		day   int
	}{
		{"julian Feb 29 1900 (leap there)", Julian, 1900, 2, 29},
		{"hebrew Cheshvan 30 in full year", Hebrew, 5777, 2, 30},
		{"persian Esfand 30 in leap year", Persian, 1403, 12, 30},
		{"coptic 6th epagomenal day in leap year", Coptic, 1739, 13, 6},
		{"bahai 5th intercalary day in leap year", Bahai, 180, 19, 5},
	}
	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := reg.Converter(tt.kind)
			require.NoError(t, err)

			_, err = conv.ToJDN(tt.year, tt.month, tt.day)
			assert.NoError(t, err)
		})
	}
}

// TestCycleLengths pins each arithmetic calendar's full leap cycle to its
// fixed day count, far from and across the epoch.
func TestCycleLengths(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		kind      Kind
		cycleYrs  int
		cycleDays int64
	}{
		{Islamic, 30, 10631},
		{Hebrew, 19, 6940},
		{Persian, 33, 12053},
		{Coptic, 4, 1461},
		{Ethiopian, 4, 1461},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			conv, err := reg.Converter(tt.kind)
			require.NoError(t, err)

			for _, year := range []int{-40, 1, 100, 5000} {
				a, err := conv.ToJDN(year, 1, 1)
				require.NoError(t, err)
				b, err := conv.ToJDN(year+tt.cycleYrs, 1, 1)
				require.NoError(t, err)
				assert.Equal(t, tt.cycleDays, int64(b-a), "cycle starting at year %d", year)
			}
		})
	}
}

// TestLunisolarLeapYears checks the Metonic leap predicates and the
// resulting month counts.
func TestLunisolarLeapYears(t *testing.T) {
	// 5784 sits at cycle position 8, a leap position.
	assert.True(t, HebrewIsLeapYear(5784))
	assert.False(t, HebrewIsLeapYear(5783))
	// Periodicity must hold for negative years too.
	assert.Equal(t, HebrewIsLeapYear(3), HebrewIsLeapYear(3-19*400))

	assert.True(t, ChineseIsLeapYear(1902)) // position 3
	assert.False(t, ChineseIsLeapYear(1900))

	assert.True(t, IslamicIsLeapYear(2))
	assert.False(t, IslamicIsLeapYear(1))
	assert.Equal(t, IslamicIsLeapYear(5), IslamicIsLeapYear(5-30*100))

	reg := NewRegistry()
	heb, err := reg.Converter(Hebrew)
	require.NoError(t, err)

	// A leap year admits month 13 and a common year does not.
	_, err = heb.ToJDN(5784, 13, 1)
	assert.NoError(t, err)
	_, err = heb.ToJDN(5783, 13, 1)
	assert.ErrorIs(t, err, ErrInvalidDate)

	chn, err := reg.Converter(Chinese)
	require.NoError(t, err)
	_, err = chn.ToJDN(1902, 13, 1)
	assert.NoError(t, err)
	_, err = chn.ToJDN(1900, 13, 1)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

// TestIslamic_PreEpochFallback drives the backward year walk past its
// iteration cap and verifies the total FromJDN degrades to the flagged
// epoch-date fallback instead of looping.
func TestIslamic_PreEpochFallback(t *testing.T) {
	conv := &islamicConverter{}

	// Roughly 11,000 Islamic years before the epoch: beyond the scan cap.
	d := conv.FromJDN(-2000000)
	assert.Equal(t, Date{Year: 1, Month: 1, Day: 1, Kind: Islamic, Era: "AH"}, d)

	// The strict path surfaces the typed error.
	_, err := conv.fromJDN(-2000000)
	assert.ErrorIs(t, err, ErrNonConvergence)

	// A pre-epoch date within the cap still converts exactly.
	d = conv.FromJDN(islamicEpochJDN - 1)
	assert.Equal(t, 0, d.Year)
	assert.Equal(t, 12, d.Month)
	back, err := conv.ToJDN(d.Year, d.Month, d.Day)
	require.NoError(t, err)
	assert.Equal(t, islamicEpochJDN-1, back)
}

// TestIroquois_MoonStructure verifies the fixed 28-day partition and the
// absorbing thirteenth moon.
func TestIroquois_MoonStructure(t *testing.T) {
	conv := &iroquoisConverter{}

	// Dec 31 falls in moon 13: day 365 - 336 = 29 (30 in leap years).
	d := conv.FromJDN(GregorianToJDN(2023, 12, 31))
	assert.Equal(t, Date{Year: 2023, Month: 13, Day: 29, Kind: Iroquois}, d)

	d = conv.FromJDN(GregorianToJDN(2024, 12, 31))
	assert.Equal(t, Date{Year: 2024, Month: 13, Day: 30, Kind: Iroquois}, d)

	// Moon 13 day 30 is only valid in leap years.
	_, err := conv.ToJDN(2023, 13, 30)
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = conv.ToJDN(2024, 13, 30)
	assert.NoError(t, err)
}

// TestLongCount_DottedNotation covers the canonical rendering and parsing
// of the positional day count.
func TestLongCount_DottedNotation(t *testing.T) {
	conv := &longCountConverter{}

	epoch := conv.FromJDN(mayanEpochJDN)
	assert.Equal(t, "0.0.0.0.0", conv.Format(epoch, ""))

	d, ok := conv.Parse("13.0.11.3.8")
	require.True(t, ok)
	jdn, err := conv.ToJDN(d.Year, d.Month, d.Day)
	require.NoError(t, err)
	assert.Equal(t, GregorianToJDN(2024, 1, 1), jdn)
	assert.Equal(t, "13.0.11.3.8", conv.Format(d, ""))

	// Out-of-range positional digits must not parse.
	_, ok = conv.Parse("13.0.11.18.8") // uinal > 17
	assert.False(t, ok)
	_, ok = conv.Parse("13.0.11.3") // too few fields
	assert.False(t, ok)
}
