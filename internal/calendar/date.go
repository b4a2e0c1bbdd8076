// Package calendar implements a universal calendar conversion engine.
//
// Every calendar system is defined by a deterministic, total mapping to and
// from the Julian Day Number (JDN), so any cross-calendar conversion reduces
// to one forward and one backward call through that pivot. Several systems
// (Chinese, Iroquois, the Hebrew year-length heuristic) are deliberate
// arithmetic approximations of their authentic definitions; the engine
// guarantees internal round-trip consistency, not astronomical accuracy.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/ldelacroix/polycal/internal/config"
)

// Sentinel errors of the engine.
var (
	// ErrInvalidDate indicates a month/day outside the calendar's valid
	// range for the given year. ToJDN never clamps; it fails.
	ErrInvalidDate = errors.New(config.ErrInvalidDate)

	// ErrConverterNotFound indicates a lookup for an unregistered kind.
	// This is a programming error, not bad user input.
	ErrConverterNotFound = errors.New(config.ErrConverterMissing)

	// ErrNonConvergence indicates an internal year search exceeded its
	// iteration cap. FromJDN converts this into a flagged fallback date;
	// strict entry points surface it to the caller.
	ErrNonConvergence = errors.New(config.ErrNonConvergence)
)

// Type classifies how a calendar tracks the year.
type Type string

const (
	TypeSolar     Type = "solar"
	TypeLunar     Type = "lunar"
	TypeLunisolar Type = "lunisolar"
	TypeOther     Type = "other"
)

// Date is a calendar-tagged date. Month and Day ranges are calendar-specific
// and validated by the owning converter. For fixed-cycle systems the three
// fields are repurposed (see the Mayan converters).
type Date struct {
	Year  int
	Month int
	Day   int
	Kind  Kind
	Era   string
}

// Info is the static descriptor of a calendar system. One immutable value
// per kind, constructed at package init.
type Info struct {
	Kind        Kind
	Name        string
	NativeName  string
	Type        Type
	Months      int // maximum months per year (13 for lunisolar leap years)
	MinYearDays int
	MaxYearDays int
	EpochJDN    JDN
	Era         string
	LeapRule    string
}

// Converter is the uniform per-calendar contract. Implementations are pure;
// the only hidden state permitted is internal memoization.
type Converter interface {
	// ToJDN converts a calendar date to its JDN. It fails with
	// ErrInvalidDate when month or day is out of range for the year.
	ToJDN(year, month, day int) (JDN, error)

	// FromJDN converts a JDN to a calendar date. It is total: every
	// integer JDN produces a result, resolving internal failures to a
	// flagged fallback rather than erroring.
	FromJDN(jdn JDN) Date

	// Info returns the static descriptor of the calendar.
	Info() Info

	// Format renders the date with the token pattern grammar of the
	// engine (YYYY, MMMM, DD, EEEE, ERA, ...).
	Format(d Date, pattern string) string

	// Parse interprets a string in the calendar's own input grammar.
	// It reports false on malformed input and never panics.
	Parse(s string) (Date, bool)
}

// FromTime converts a host time (assumed Gregorian, midnight-local) into a
// date of the requested calendar.
func FromTime(t time.Time, kind Kind, reg *Registry) (Date, error) {
	conv, err := reg.Converter(kind)
	if err != nil {
		return Date{}, err
	}
	jdn := GregorianToJDN(t.Year(), int(t.Month()), t.Day())
	return conv.FromJDN(jdn), nil
}

// ToTime converts a calendar date back into a host time at midnight local.
// It fails when the date is invalid or the resulting year does not fit the
// host time representation.
func ToTime(d Date, reg *Registry) (time.Time, error) {
	conv, err := reg.Converter(d.Kind)
	if err != nil {
		return time.Time{}, err
	}
	jdn, err := conv.ToJDN(d.Year, d.Month, d.Day)
	if err != nil {
		return time.Time{}, err
	}
	y, m, day := JDNToGregorian(jdn)
	if y < -9999 || y > 9999 {
		return time.Time{}, fmt.Errorf("%s: year %d", config.ErrTimeOutOfRange, y)
	}
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.Local), nil
}
