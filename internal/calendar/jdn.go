package calendar

// JDN is a Julian Day Number: a continuous signed count of days from the
// proleptic epoch of -4712-01-01 (Julian). It is the single pivot through
// which every calendar conversion in this package travels.
type JDN int64

// floorDiv divides with floor semantics (rounding toward negative infinity).
// The conversion formulas below are specified in terms of floored division;
// Go's native integer division truncates toward zero, which silently breaks
// century boundaries and negative years.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns the non-negative remainder of floorDiv.
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// GregorianToJDN converts a proleptic Gregorian date to its Julian Day Number
// using the Fliegel-van Flandern closed form. Year numbering is astronomical:
// year 0 is 1 BCE, year -1 is 2 BCE.
func GregorianToJDN(year, month, day int) JDN {
	y := int64(year)
	m := int64(month)
	d := int64(day)

	a := floorDiv(14-m, 12)
	y2 := y + 4800 - a
	m2 := m + 12*a - 3

	jdn := d + floorDiv(153*m2+2, 5) + 365*y2 +
		floorDiv(y2, 4) - floorDiv(y2, 100) + floorDiv(y2, 400) - 32045
	return JDN(jdn)
}

// JDNToGregorian converts a Julian Day Number back to a proleptic Gregorian
// date. It is total: every JDN maps to exactly one (year, month, day).
func JDNToGregorian(jdn JDN) (year, month, day int) {
	a := int64(jdn) + 32044
	b := floorDiv(4*a+3, 146097)
	c := a - floorDiv(146097*b, 4)
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)

	day = int(e - floorDiv(153*m+2, 5) + 1)
	month = int(m + 3 - 12*floorDiv(m, 10))
	year = int(100*b + d - 4800 + floorDiv(m, 10))
	return year, month, day
}

// JulianToJDN converts a proleptic Julian-calendar date to its Julian Day
// Number. Same formula family as the Gregorian variant, without the
// century corrections.
func JulianToJDN(year, month, day int) JDN {
	y := int64(year)
	m := int64(month)
	d := int64(day)

	a := floorDiv(14-m, 12)
	y2 := y + 4800 - a
	m2 := m + 12*a - 3

	jdn := d + floorDiv(153*m2+2, 5) + 365*y2 + floorDiv(y2, 4) - 32083
	return JDN(jdn)
}

// JDNToJulian converts a Julian Day Number to a proleptic Julian-calendar date.
func JDNToJulian(jdn JDN) (year, month, day int) {
	c := int64(jdn) + 32082
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)

	day = int(e - floorDiv(153*m+2, 5) + 1)
	month = int(m + 3 - 12*floorDiv(m, 10))
	year = int(d - 4800 + floorDiv(m, 10))
	return year, month, day
}

// DayOfWeek returns the Gregorian weekday of a JDN: 0 = Sunday .. 6 = Saturday.
func DayOfWeek(jdn JDN) int {
	return int(floorMod(int64(jdn)+1, 7))
}

// IsGregorianLeapYear reports whether the astronomical year is a Gregorian
// leap year: divisible by 4, not by 100, unless also by 400.
func IsGregorianLeapYear(year int) bool {
	y := int64(year)
	return floorMod(y, 4) == 0 && (floorMod(y, 100) != 0 || floorMod(y, 400) == 0)
}

// IsJulianLeapYear reports whether the astronomical year is a Julian leap
// year: divisible by 4.
func IsJulianLeapYear(year int) bool {
	return floorMod(int64(year), 4) == 0
}

// gregorianMonthDays returns the length of a Gregorian month.
func gregorianMonthDays(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsGregorianLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

// julianMonthDays returns the length of a Julian-calendar month.
func julianMonthDays(year, month int) int {
	if month == 2 {
		if IsJulianLeapYear(year) {
			return 29
		}
		return 28
	}
	return gregorianMonthDays(1, month) // non-February lengths are identical
}
