// Package timerange resolves a Gregorian-anchored period (a day, week,
// month, year or decade) into its bounds expressed in another calendar
// system. The bounds are computed on the Julian Day Number axis, so a
// week that straddles a month or year boundary in the target calendar
// still converts exactly.
package timerange

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ldelacroix/polycal/internal/calendar"
	"github.com/ldelacroix/polycal/internal/config"
)

// ErrUnknownGranularity is returned by ParseGranularity for unsupported values.
var ErrUnknownGranularity = errors.New(config.ErrUnknownPeriod)

// Granularity selects the size of the resolved period.
type Granularity string

const (
	Day    Granularity = "day"
	Week   Granularity = "week"
	Month  Granularity = "month"
	Year   Granularity = "year"
	Decade Granularity = "decade"
)

// ParseGranularity maps a CLI or query string onto a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Day, Week, Month, Year, Decade:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
	}
}

// TranslationKey returns the i18n message key naming this granularity.
func (g Granularity) TranslationKey() string {
	switch g {
	case Week:
		return config.TKeyPeriodWeek
	case Month:
		return config.TKeyPeriodMonth
	case Year:
		return config.TKeyPeriodYear
	case Decade:
		return config.TKeyPeriodDecade
	default:
		return config.TKeyPeriodDay
	}
}

// Range is a resolved period expressed in the target calendar.
type Range struct {
	Granularity Granularity

	// Start and End are the first and last day of the period, inclusive.
	Start calendar.Date
	End   calendar.Date

	StartJDN calendar.JDN
	EndJDN   calendar.JDN

	// Representative is the anchor date itself converted to the target
	// calendar, always inside [Start, End].
	Representative calendar.Date

	// Label is a human-readable description of the range. It is filled
	// by the Labeler when one is set, otherwise left empty.
	Label string
}

// Labeler renders a human label for a resolved range. The start and end
// strings are already formatted in the target calendar.
type Labeler func(g Granularity, start, end string) string

// Resolver converts Gregorian-anchored periods into target-calendar ranges.
type Resolver struct {
	Registry *calendar.Registry

	// Pattern formats the Start/End dates for the label; empty selects
	// the converter's default rendering.
	Pattern string

	// Labeler is optional; when nil no Label is produced.
	Labeler Labeler
}

// Resolve computes the period of the given granularity containing the
// Gregorian date (year, month, day), and expresses its bounds in the
// target calendar.
func (r *Resolver) Resolve(year, month, day int, g Granularity, target calendar.Kind) (Range, error) {
	anchor := calendar.GregorianToJDN(year, month, day)

	startJDN, endJDN := periodBounds(anchor, year, g)

	conv, err := r.Registry.Converter(target)
	if err != nil {
		return Range{}, err
	}

	res := Range{
		Granularity:    g,
		Start:          conv.FromJDN(startJDN),
		End:            conv.FromJDN(endJDN),
		StartJDN:       startJDN,
		EndJDN:         endJDN,
		Representative: conv.FromJDN(anchor),
	}

	if r.Labeler != nil {
		res.Label = r.Labeler(g,
			conv.Format(res.Start, r.Pattern),
			conv.Format(res.End, r.Pattern),
		)
	}

	slog.Debug("Resolved period",
		config.LogKeyComponent, config.CompRange,
		config.LogKeyValue, string(g),
		config.LogKeyTarget, target.String(),
		config.LogKeyJDN, int64(startJDN),
	)
	return res, nil
}

// periodBounds returns the inclusive JDN bounds of the period of the
// given granularity containing the anchor day. The Gregorian year of the
// anchor is passed separately to avoid re-deriving it.
func periodBounds(anchor calendar.JDN, year int, g Granularity) (calendar.JDN, calendar.JDN) {
	switch g {
	case Week:
		// Weeks start on Monday; DayOfWeek yields 0 for Sunday.
		back := (calendar.DayOfWeek(anchor) + 6) % 7
		start := anchor - calendar.JDN(back)
		return start, start + 6

	case Month:
		gy, gm, _ := calendar.JDNToGregorian(anchor)
		start := calendar.GregorianToJDN(gy, gm, 1)
		var next calendar.JDN
		if gm == 12 {
			next = calendar.GregorianToJDN(gy+1, 1, 1)
		} else {
			next = calendar.GregorianToJDN(gy, gm+1, 1)
		}
		return start, next - 1

	case Year:
		return calendar.GregorianToJDN(year, 1, 1), calendar.GregorianToJDN(year, 12, 31)

	case Decade:
		sy, ey := decadeYears(year)
		return calendar.GregorianToJDN(sy, 1, 1), calendar.GregorianToJDN(ey, 12, 31)

	default: // Day
		return anchor, anchor
	}
}

// decadeYears returns the first and last internal year of the decade
// containing the given year. CE decades follow the usual convention
// (2020 through 2029). For years at or below zero the decade is grouped
// by the displayed BCE magnitude (1 BCE through 10 BCE form one decade),
// which runs against the internal year axis.
func decadeYears(year int) (int, int) {
	if year > 0 {
		start := year - year%10
		return start, start + 9
	}
	disp := 1 - year
	dispStart := ((disp-1)/10)*10 + 1
	// Display years dispStart..dispStart+9 map to internal years
	// (1-dispStart) down to (1-dispStart-9).
	return 1 - dispStart - 9, 1 - dispStart
}
