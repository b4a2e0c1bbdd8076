package calendar

import "fmt"

// islamicEpochJDN is 1 Muharram AH 1 (16 July 622 CE Julian).
const islamicEpochJDN JDN = 1948439

// islamicCycleDays is the length of the 30-year cycle: 19 common years of
// 354 days and 11 leap years of 355.
const islamicCycleDays = 10631

// islamicLeapPositions are the leap positions within the 30-year cycle.
var islamicLeapPositions = map[int]bool{
	2: true, 5: true, 7: true, 10: true, 13: true, 16: true,
	18: true, 21: true, 24: true, 26: true, 29: true,
}

var islamicMonthNames = [12]string{
	"Muharram", "Safar", "Rabi' al-Awwal", "Rabi' al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Sha'ban",
	"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// IslamicIsLeapYear reports whether a tabular Islamic year is leap. Negative
// years normalize into the cycle by floored arithmetic, so the predicate is
// periodic over the whole timeline.
func IslamicIsLeapYear(year int) bool {
	pos := int(floorMod(int64(year-1), 30)) + 1
	return islamicLeapPositions[pos]
}

// islamicLeapsBefore counts leap years in [1, year) via closed-form cycle
// arithmetic. Valid for year >= 1.
func islamicLeapsBefore(year int) int64 {
	return floorDiv(11*int64(year)+3, 30)
}

func islamicYearDays(year int) int {
	if IslamicIsLeapYear(year) {
		return 355
	}
	return 354
}

func islamicMonthDays(year, month int) int {
	if month == 12 && IslamicIsLeapYear(year) {
		return 30
	}
	if month%2 == 1 {
		return 30
	}
	return 29
}

// islamicDaysBeforeMonth sums the alternating 30/29 pattern.
func islamicDaysBeforeMonth(month int) int {
	return 29*(month-1) + month/2
}

// islamicConverter implements the tabular (arithmetic) Islamic calendar.
type islamicConverter struct{}

// yearStart returns the JDN of 1 Muharram. For year >= 1 it is closed-form;
// for earlier years it walks backward year-by-year from year 0 toward the
// same epoch reference.
func (c *islamicConverter) yearStart(year int) JDN {
	if year >= 1 {
		return islamicEpochJDN + JDN(354*int64(year-1)+islamicLeapsBefore(year))
	}
	start := islamicEpochJDN
	for yy := 0; yy >= year; yy-- {
		start -= JDN(islamicYearDays(yy))
	}
	return start
}

func (c *islamicConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: islamic month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > islamicMonthDays(year, month) {
		return 0, fmt.Errorf("%w: islamic %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return c.yearStart(year) + JDN(islamicDaysBeforeMonth(month)+day-1), nil
}

func (c *islamicConverter) FromJDN(jdn JDN) Date {
	d, err := c.fromJDN(jdn)
	if err != nil {
		return flaggedFallback(Islamic, "AH", jdn, err)
	}
	return d
}

func (c *islamicConverter) fromJDN(jdn JDN) (Date, error) {
	offset := int64(jdn) - int64(islamicEpochJDN)

	var year int
	if offset >= 0 {
		// Estimate via the average year length, then correct: the
		// estimate is off by at most one year.
		year = int(floorDiv(30*offset, islamicCycleDays)) + 1
		for c.yearStart(year+1) <= jdn {
			year++
		}
		for c.yearStart(year) > jdn {
			year--
		}
	} else {
		year = 0
		start := c.yearStart(0)
		converged := false
		for i := 0; i < negativeYearScanCap; i++ {
			if jdn >= start {
				converged = true
				break
			}
			year--
			start -= JDN(islamicYearDays(year))
		}
		if !converged {
			return Date{}, fmt.Errorf("%w: islamic year for JDN %d", ErrNonConvergence, jdn)
		}
	}

	rem := int(jdn - c.yearStart(year))
	month := 1
	for month < 12 && rem >= islamicMonthDays(year, month) {
		rem -= islamicMonthDays(year, month)
		month++
	}
	return Date{Year: year, Month: month, Day: rem + 1, Kind: Islamic, Era: "AH"}, nil
}

func (c *islamicConverter) Info() Info {
	return Info{
		Kind:        Islamic,
		Name:        "Islamic",
		NativeName:  "التقويم الهجري",
		Type:        TypeLunar,
		Months:      12,
		MinYearDays: 354,
		MaxYearDays: 355,
		EpochJDN:    islamicEpochJDN,
		Era:         "AH",
		LeapRule:    "11 leap years per 30-year cycle (positions 2,5,7,10,13,16,18,21,24,26,29)",
	}
}

func (c *islamicConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "AH",
		monthName: func(d Date) string { return monthNameFrom(islamicMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *islamicConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Islamic, Era: "AH"}, true
}
