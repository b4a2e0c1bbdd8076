package calendar

import "fmt"

// persianEpochJDN is 1 Farvardin AP 1 (19 March 622 CE Gregorian).
const persianEpochJDN JDN = 1948320

// persianCycleDays is the length of the 33-year arithmetic leap cycle
// (25 common years and 8 leap years).
const persianCycleDays = 12053

var persianMonthNames = [12]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

// persianConverter implements the arithmetic (33-year cycle) Solar Hijri
// calendar: six 31-day months, five 30-day months, and a 29/30-day Esfand.
type persianConverter struct{}

func persianIsLeapYear(year int) bool {
	return floorMod(25*int64(year)+11, 33) < 8
}

// persianLeapsBefore counts leap years in [1, year), extended to negative
// years by the same floored arithmetic.
func persianLeapsBefore(year int) int64 {
	return floorDiv(8*int64(year-1)+29, 33)
}

func persianMonthDays(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	default:
		if persianIsLeapYear(year) {
			return 30
		}
		return 29
	}
}

func persianDaysBeforeMonth(month int) int {
	if month <= 7 {
		return (month - 1) * 31
	}
	return 186 + (month-7)*30
}

func (c *persianConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: persian month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > persianMonthDays(year, month) {
		return 0, fmt.Errorf("%w: persian %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	jdn := int64(persianEpochJDN) + 365*int64(year-1) + persianLeapsBefore(year) +
		int64(persianDaysBeforeMonth(month)) + int64(day-1)
	return JDN(jdn), nil
}

func (c *persianConverter) FromJDN(jdn JDN) Date {
	offset := int64(jdn) - int64(persianEpochJDN)
	year := int(floorDiv(33*offset, persianCycleDays)) + 1

	// The average-length estimate can land one year off near boundaries.
	for {
		next, _ := c.ToJDN(year+1, 1, 1)
		if next > jdn {
			break
		}
		year++
	}
	for {
		start, _ := c.ToJDN(year, 1, 1)
		if start <= jdn {
			break
		}
		year--
	}

	start, _ := c.ToJDN(year, 1, 1)
	dayOfYear := int(jdn - start) // zero-based
	var month int
	if dayOfYear < 186 {
		month = dayOfYear/31 + 1
	} else {
		month = (dayOfYear-186)/30 + 7
	}
	day := dayOfYear - persianDaysBeforeMonth(month) + 1
	return Date{Year: year, Month: month, Day: day, Kind: Persian, Era: "AP"}
}

func (c *persianConverter) Info() Info {
	return Info{
		Kind:        Persian,
		Name:        "Persian",
		NativeName:  "تقویم جلالی",
		Type:        TypeSolar,
		Months:      12,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    persianEpochJDN,
		Era:         "AP",
		LeapRule:    "8 leap years per 33-year arithmetic cycle",
	}
}

func (c *persianConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "AP",
		monthName: func(d Date) string { return monthNameFrom(persianMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *persianConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Persian, Era: "AP"}, true
}
