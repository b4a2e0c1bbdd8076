package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormat_Tokens exercises the pattern grammar against a fixed Monday.
func TestFormat_Tokens(t *testing.T) {
	reg := NewRegistry()
	conv, err := reg.Converter(Gregorian)
	require.NoError(t, err)

	d := Date{Year: 2024, Month: 1, Day: 1, Kind: Gregorian, Era: "CE"}

	tests := []struct {
		pattern  string
		expected string
	}{
		{"YYYY-MM-DD", "2024-01-01"},
		{"D M YYYY", "1 1 2024"},
		{"DD MMMM YYYY ERA", "01 January 2024 CE"},
		{"MMM", "Jan"},
		{"EEEE", "Monday"},
		{"EEE", "Mon"},
		{"E", "Mo"},
		{"ERA", "CE"},
		{"YY", "24"},
		{"EEEE, DD MMMM YYYY", "Monday, 01 January 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.expected, conv.Format(d, tt.pattern))
		})
	}
}

// TestFormat_DefaultPattern verifies the empty pattern falls back to the
// standard long form.
func TestFormat_DefaultPattern(t *testing.T) {
	reg := NewRegistry()
	conv, err := reg.Converter(Gregorian)
	require.NoError(t, err)

	d := Date{Year: 2024, Month: 1, Day: 1, Kind: Gregorian, Era: "CE"}
	assert.Equal(t, "01 January 2024 CE", conv.Format(d, ""))
}

// TestFormat_BCEDisplay checks the uniform era inversion: internal year 0 is
// 1 BCE, internal year -99 is 100 BCE.
func TestFormat_BCEDisplay(t *testing.T) {
	reg := NewRegistry()
	conv, err := reg.Converter(Gregorian)
	require.NoError(t, err)

	tests := []struct {
		year     int
		expected string
	}{
		{0, "0001 BCE"},
		{-99, "0100 BCE"},
		{1, "0001 CE"},
		{2024, "2024 CE"},
	}
	for _, tt := range tests {
		d := Date{Year: tt.year, Month: 1, Day: 1, Kind: Gregorian}
		assert.Equal(t, tt.expected, conv.Format(d, "YYYY ERA"))
	}
}

// TestFormat_NonASCIITruncation ensures MMM truncation counts runes, not
// bytes; several native month tables are non-ASCII.
func TestFormat_NonASCIITruncation(t *testing.T) {
	assert.Equal(t, "Wo'", truncateName("Wo'", 3))
	assert.Equal(t, "农历月", truncateName("农历月名", 3))
	assert.Equal(t, "ab", truncateName("ab", 3))
}

// TestFormat_LunisolarMonthNames verifies names shift around the inserted
// leap months.
func TestFormat_LunisolarMonthNames(t *testing.T) {
	reg := NewRegistry()

	heb, err := reg.Converter(Hebrew)
	require.NoError(t, err)
	assert.Equal(t, "Adar I", heb.Format(Date{Year: 5784, Month: 6, Day: 1, Kind: Hebrew}, "MMMM"))
	assert.Equal(t, "Adar", heb.Format(Date{Year: 5783, Month: 6, Day: 1, Kind: Hebrew}, "MMMM"))

	chn, err := reg.Converter(Chinese)
	require.NoError(t, err)
	assert.Equal(t, "Run Liuyue", chn.Format(Date{Year: 1902, Month: 7, Day: 1, Kind: Chinese}, "MMMM"))
	assert.Equal(t, "Qiyue", chn.Format(Date{Year: 1902, Month: 8, Day: 1, Kind: Chinese}, "MMMM"))
	assert.Equal(t, "Qiyue", chn.Format(Date{Year: 1900, Month: 7, Day: 1, Kind: Chinese}, "MMMM"))
}

// TestParseDashed covers the shared numeric input grammar, including the
// astronomical negative-year form.
func TestParseDashed(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month int
		day   int
		ok    bool
	}{
		{"2024-01-01", 2024, 1, 1, true},
		{"2024-1-1", 2024, 1, 1, true},
		{"-0099-12-31", -99, 12, 31, true},
		{" 5784-6-30 ", 5784, 6, 30, true},
		{"", 0, 0, 0, false},
		{"2024-01", 0, 0, 0, false},
		{"2024-01-01-05", 0, 0, 0, false},
		{"2024-ab-01", 0, 0, 0, false},
		{"--01-01", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			y, m, d, ok := parseDashed(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.year, y)
				assert.Equal(t, tt.month, m)
				assert.Equal(t, tt.day, d)
			}
		})
	}
}

// TestConverterParse_Validates ensures Parse applies the same validation as
// ToJDN rather than just the grammar.
func TestConverterParse_Validates(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Parse("1900-02-29", Gregorian)
	assert.False(t, ok, "Gregorian rejects the non-leap Feb 29")

	d, ok := reg.Parse("1900-02-29", Julian)
	require.True(t, ok, "Julian accepts it")
	assert.Equal(t, Julian, d.Kind)

	d, ok = reg.Parse("-0001-03-04", Gregorian)
	require.True(t, ok)
	assert.Equal(t, -1, d.Year)
}
