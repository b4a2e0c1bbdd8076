package calendar

import (
	"fmt"
	"math"
)

// The Chinese converter is explicitly an approximation: it runs on a mean
// lunar month rather than true new-moon computation, places leap months by
// the same 19-year heuristic as the Hebrew calendar, and fixes the leap
// month after month 6. It guarantees internal round-trip consistency, not
// agreement with the authentic Chinese calendar.

// chineseRefJDN is the arbitrary modern reference point the offsets are
// scaled from: 5 February 1900 (Gregorian), taken as month 1, day 1 of
// reference year 1900.
const chineseRefJDN JDN = 2415056

// chineseRefYear is the Gregorian-aligned year number at the reference
// point. The converter keeps Gregorian-aligned year numbering throughout.
const chineseRefYear = 1900

// chineseAvgMonth is the mean synodic month in days.
const chineseAvgMonth = 29.53059

// chineseLeapPositions are the 19-year-cycle leap positions, anchored so
// that the reference year is position 1.
var chineseLeapPositions = map[int]bool{
	3: true, 6: true, 9: true, 11: true, 14: true, 17: true, 19: true,
}

// chineseLeapPrefix[n] counts leap positions in 1..n.
var chineseLeapPrefix = func() [20]int {
	var pfx [20]int
	for p := 1; p <= 19; p++ {
		pfx[p] = pfx[p-1]
		if chineseLeapPositions[p] {
			pfx[p]++
		}
	}
	return pfx
}()

var chineseMonthNames = [12]string{
	"Zhengyue", "Eryue", "Sanyue", "Siyue", "Wuyue", "Liuyue",
	"Qiyue", "Bayue", "Jiuyue", "Shiyue", "Shiyiyue", "Layue",
}

// ChineseIsLeapYear reports whether the approximated year carries a leap
// month.
func ChineseIsLeapYear(year int) bool {
	pos := int(floorMod(int64(year-chineseRefYear), 19)) + 1
	return chineseLeapPositions[pos]
}

type chineseConverter struct{}

func (c *chineseConverter) monthsInYear(year int) int {
	if ChineseIsLeapYear(year) {
		return 13
	}
	return 12
}

// monthsBefore counts lunar months between the reference new year and the
// start of the given year (negative before the reference).
func (c *chineseConverter) monthsBefore(year int) int64 {
	years := int64(year - chineseRefYear)
	cycles := floorDiv(years, 19)
	rem := years - 19*cycles
	return 12*years + 7*cycles + int64(chineseLeapPrefix[rem])
}

// monthStart is the JDN a global month index begins on, from the mean month
// length. Floating point is fine here: this converter is outside the JDN
// core and defined as an approximation.
func (c *chineseConverter) monthStart(monthIndex int64) JDN {
	return chineseRefJDN + JDN(math.Floor(float64(monthIndex)*chineseAvgMonth+0.5))
}

func (c *chineseConverter) monthDays(year, month int) int {
	k := c.monthsBefore(year) + int64(month-1)
	return int(c.monthStart(k+1) - c.monthStart(k))
}

func (c *chineseConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > c.monthsInYear(year) {
		return 0, fmt.Errorf("%w: chinese month %d in year %d", ErrInvalidDate, month, year)
	}
	if day < 1 || day > c.monthDays(year, month) {
		return 0, fmt.Errorf("%w: chinese %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	k := c.monthsBefore(year) + int64(month-1)
	return c.monthStart(k) + JDN(day-1), nil
}

func (c *chineseConverter) FromJDN(jdn JDN) Date {
	days := float64(int64(jdn) - int64(chineseRefJDN))

	// Estimate the global month index, then correct; the estimate is off
	// by at most one month.
	k := int64(math.Floor(days / chineseAvgMonth))
	for c.monthStart(k+1) <= jdn {
		k++
	}
	for c.monthStart(k) > jdn {
		k--
	}

	// Estimate the year holding month k the same way.
	year := chineseRefYear + int(math.Floor(float64(k)/12.3684))
	for c.monthsBefore(year+1) <= k {
		year++
	}
	for c.monthsBefore(year) > k {
		year--
	}

	month := int(k-c.monthsBefore(year)) + 1
	day := int(jdn-c.monthStart(k)) + 1
	return Date{Year: year, Month: month, Day: day, Kind: Chinese}
}

func (c *chineseConverter) Info() Info {
	return Info{
		Kind:        Chinese,
		Name:        "Chinese",
		NativeName:  "农历",
		Type:        TypeLunisolar,
		Months:      13,
		MinYearDays: 354,
		MaxYearDays: 385,
		EpochJDN:    chineseRefJDN,
		Era:         "",
		LeapRule:    "7 leap months per 19-year cycle, always inserted after month 6 (approximation)",
	}
}

// monthName resolves names around the inserted leap month: in leap years
// month 7 is the intercalary Run Liuyue and later months shift back one.
func (c *chineseConverter) monthName(d Date) string {
	if ChineseIsLeapYear(d.Year) {
		switch {
		case d.Month == 7:
			return "Run Liuyue"
		case d.Month > 7:
			return monthNameFrom(chineseMonthNames[:], d.Month-1)
		}
	}
	return monthNameFrom(chineseMonthNames[:], d.Month)
}

func (c *chineseConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		monthName: c.monthName,
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *chineseConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Chinese}, true
}
