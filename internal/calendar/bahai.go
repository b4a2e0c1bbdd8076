package calendar

import "fmt"

// bahaiYearOffset anchors year 1 BE to the Gregorian year 1844.
const bahaiYearOffset = 1843

// bahaiMonthNames covers the nineteen 19-day months plus the intercalary
// Ayyam-i-Ha period, encoded here as month 19 so that the final month Ala
// (month 20) stays in calendar order.
var bahaiMonthNames = [20]string{
	"Baha", "Jalal", "Jamal", "Azamat", "Nur", "Rahmat", "Kalimat",
	"Kamal", "Asma", "Izzat", "Mashiyyat", "Ilm", "Qudrat", "Qawl",
	"Masail", "Sharaf", "Sultan", "Mulk", "Ayyam-i-Ha", "Ala",
}

// bahaiConverter implements the Badi calendar with the fixed 21 March new
// year used before the 2015 reform, matching the engine's no-astronomy rule.
type bahaiConverter struct{}

func (c *bahaiConverter) isLeapYear(year int) bool {
	// The intercalary days fall in the February of the Gregorian year the
	// Badi year runs into.
	return IsGregorianLeapYear(bahaiYearOffset + year + 1)
}

func (c *bahaiConverter) yearStart(year int) JDN {
	return GregorianToJDN(bahaiYearOffset+year, 3, 21)
}

func (c *bahaiConverter) monthDays(year, month int) int {
	switch {
	case month == 19:
		if c.isLeapYear(year) {
			return 5
		}
		return 4
	default:
		return 19
	}
}

func (c *bahaiConverter) daysBeforeMonth(year, month int) int {
	if month <= 19 {
		return (month - 1) * 19
	}
	return 18*19 + c.monthDays(year, 19)
}

func (c *bahaiConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 20 {
		return 0, fmt.Errorf("%w: bahai month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > c.monthDays(year, month) {
		return 0, fmt.Errorf("%w: bahai %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return c.yearStart(year) + JDN(c.daysBeforeMonth(year, month)+day-1), nil
}

func (c *bahaiConverter) FromJDN(jdn JDN) Date {
	gy, _, _ := JDNToGregorian(jdn)
	year := gy - bahaiYearOffset
	if jdn < c.yearStart(year) {
		year--
	}

	dayOfYear := int(jdn - c.yearStart(year)) // zero-based
	var month, day int
	switch {
	case dayOfYear < 18*19:
		month = dayOfYear/19 + 1
		day = dayOfYear%19 + 1
	case dayOfYear < 18*19+c.monthDays(year, 19):
		month = 19
		day = dayOfYear - 18*19 + 1
	default:
		month = 20
		day = dayOfYear - c.daysBeforeMonth(year, 20) + 1
	}
	return Date{Year: year, Month: month, Day: day, Kind: Bahai, Era: "BE"}
}

func (c *bahaiConverter) Info() Info {
	return Info{
		Kind:        Bahai,
		Name:        "Baha'i",
		NativeName:  "بديع",
		Type:        TypeSolar,
		Months:      20,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    GregorianToJDN(1844, 3, 21),
		Era:         "BE",
		LeapRule:    "intercalary Ayyam-i-Ha gains a 5th day when the concurrent Gregorian year is leap",
	}
}

func (c *bahaiConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "BE",
		monthName: func(d Date) string { return monthNameFrom(bahaiMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *bahaiConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Bahai, Era: "BE"}, true
}
