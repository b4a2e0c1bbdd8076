package calendar

import (
	"fmt"
	"sync"
)

// hebrewEpochJDN is 1 Tishrei AM 1.
const hebrewEpochJDN JDN = 347997

// hebrewLeapPositions are the leap positions of the 19-year Metonic cycle.
var hebrewLeapPositions = map[int]bool{
	3: true, 6: true, 8: true, 11: true, 14: true, 17: true, 19: true,
}

// Month numbering runs from Tishrei. In leap years Adar I is inserted as
// month 6, pushing Adar (as Adar II) and the following months down one slot.
var hebrewMonthNamesCommon = [12]string{
	"Tishrei", "Cheshvan", "Kislev", "Tevet", "Shevat", "Adar",
	"Nisan", "Iyar", "Sivan", "Tammuz", "Av", "Elul",
}

var hebrewMonthNamesLeap = [13]string{
	"Tishrei", "Cheshvan", "Kislev", "Tevet", "Shevat", "Adar I", "Adar II",
	"Nisan", "Iyar", "Sivan", "Tammuz", "Av", "Elul",
}

var hebrewMonthLensCommon = [12]int{30, 29, 30, 29, 30, 29, 30, 29, 30, 29, 30, 29}
var hebrewMonthLensLeap = [13]int{30, 29, 30, 29, 30, 30, 29, 30, 29, 30, 29, 30, 29}

// HebrewIsLeapYear reports whether the year carries the intercalary month.
// Floored arithmetic keeps the predicate periodic for negative years.
func HebrewIsLeapYear(year int) bool {
	return hebrewLeapPositions[hebrewCyclePos(year)]
}

func hebrewCyclePos(year int) int {
	return int(floorMod(int64(year-1), 19)) + 1
}

// hebrewYearLengthHeuristic is the engine's simplified year length: 354/384
// base with one extra Cheshvan day at non-leap cycle positions congruent to
// 1 mod 4, giving the 19-year cycle a fixed 6,940-day total. This is a
// deliberate approximation of the molad computation, not a correction of it.
func hebrewYearLengthHeuristic(year int) int {
	pos := hebrewCyclePos(year)
	if hebrewLeapPositions[pos] {
		return 384
	}
	if pos%4 == 1 {
		return 355
	}
	return 354
}

// hebrewMonthLen is the pure month-length computation. The year length is
// always computed first and passed in explicitly; this function never calls
// back into year-length computation, which keeps the call graph acyclic by
// construction.
func hebrewMonthLen(month int, leap bool, yearLen int) int {
	var base int
	if leap {
		if month < 1 || month > 13 {
			return 0
		}
		base = hebrewMonthLensLeap[month-1]
	} else {
		if month < 1 || month > 12 {
			return 0
		}
		base = hebrewMonthLensCommon[month-1]
	}
	// A full year (355/385) gains its day in Cheshvan.
	if month == 2 && yearLen%10 == 5 {
		base++
	}
	return base
}

// hebrewConverter implements the simplified arithmetic Hebrew calendar.
// Year and month lengths are memoized process-wide; both caches are
// append-only and safe for concurrent readers.
type hebrewConverter struct {
	// yearLen is the year-length function, overridable in tests to verify
	// that the year searches stay bounded on corrupt input.
	yearLen func(year int) int

	yearLenCache  sync.Map // int -> int
	monthLenCache sync.Map // [2]int -> int

	cycleOnce sync.Once
	cycleDays JDN
	cyclePfx  [20]JDN // cyclePfx[n] = days of cycle years 1..n
}

func newHebrewConverter() *hebrewConverter {
	return &hebrewConverter{yearLen: hebrewYearLengthHeuristic}
}

func (c *hebrewConverter) yearLength(year int) int {
	if v, ok := c.yearLenCache.Load(year); ok {
		return v.(int)
	}
	n := c.yearLen(year)
	c.yearLenCache.Store(year, n)
	return n
}

func (c *hebrewConverter) monthLength(year, month int) int {
	key := [2]int{year, month}
	if v, ok := c.monthLenCache.Load(key); ok {
		return v.(int)
	}
	// Year length first, then month length with it passed down.
	yl := c.yearLength(year)
	n := hebrewMonthLen(month, HebrewIsLeapYear(year), yl)
	c.monthLenCache.Store(key, n)
	return n
}

func (c *hebrewConverter) monthsInYear(year int) int {
	if HebrewIsLeapYear(year) {
		return 13
	}
	return 12
}

// initCycle derives the cumulative day counts of one Metonic cycle from the
// year-length function.
func (c *hebrewConverter) initCycle() {
	c.cycleOnce.Do(func() {
		for p := 1; p <= 19; p++ {
			c.cyclePfx[p] = c.cyclePfx[p-1] + JDN(c.yearLength(p))
		}
		c.cycleDays = c.cyclePfx[19]
	})
}

// yearStart returns the JDN of 1 Tishrei via cycle arithmetic. Because year
// length depends only on cycle position, the closed form covers negative
// years as well.
func (c *hebrewConverter) yearStart(year int) JDN {
	c.initCycle()
	cycles := floorDiv(int64(year-1), 19)
	rem := int64(year-1) - 19*cycles
	return hebrewEpochJDN + JDN(cycles)*c.cycleDays + c.cyclePfx[rem]
}

func (c *hebrewConverter) ToJDN(year, month, day int) (JDN, error) {
	months := c.monthsInYear(year)
	if month < 1 || month > months {
		return 0, fmt.Errorf("%w: hebrew month %d in year %d", ErrInvalidDate, month, year)
	}
	if day < 1 || day > c.monthLength(year, month) {
		return 0, fmt.Errorf("%w: hebrew %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	jdn := c.yearStart(year)
	for m := 1; m < month; m++ {
		jdn += JDN(c.monthLength(year, m))
	}
	return jdn + JDN(day-1), nil
}

func (c *hebrewConverter) FromJDN(jdn JDN) Date {
	d, err := c.FromJDNStrict(jdn)
	if err != nil {
		return flaggedFallback(Hebrew, "AM", jdn, err)
	}
	return d
}

// FromJDNStrict is FromJDN with the non-convergence result surfaced as a
// typed error instead of a fallback date.
func (c *hebrewConverter) FromJDNStrict(jdn JDN) (Date, error) {
	var year int
	if jdn >= hebrewEpochJDN {
		y, err := c.searchForward(jdn)
		if err != nil {
			return Date{}, err
		}
		year = y
	} else {
		y, err := c.searchBackward(jdn)
		if err != nil {
			return Date{}, err
		}
		year = y
	}

	rem := int(jdn - c.yearStart(year))
	months := c.monthsInYear(year)
	month := 1
	for month < months && rem >= c.monthLength(year, month) {
		rem -= c.monthLength(year, month)
		month++
	}
	return Date{Year: year, Month: month, Day: rem + 1, Kind: Hebrew, Era: "AM"}, nil
}

// searchForward locates the year containing jdn (>= epoch) by bounded binary
// search over the cumulative-days function.
func (c *hebrewConverter) searchForward(jdn JDN) (int, error) {
	hi := 1
	grow := 0
	for ; grow < binarySearchCap; grow++ {
		if c.yearStart(hi+1) > jdn {
			break
		}
		hi *= 2
	}
	if grow == binarySearchCap {
		return 0, fmt.Errorf("%w: hebrew upper bound for JDN %d", ErrNonConvergence, jdn)
	}

	lo := 1
	for i := 0; i < binarySearchCap; i++ {
		if lo >= hi {
			return lo, nil
		}
		mid := lo + (hi-lo+1)/2
		if c.yearStart(mid) <= jdn {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return 0, fmt.Errorf("%w: hebrew year for JDN %d", ErrNonConvergence, jdn)
}

// searchBackward walks year-by-year into negative years. Pre-epoch Hebrew
// dates are rare and bounded in practice, so linear scanning with a hard cap
// is sufficient.
func (c *hebrewConverter) searchBackward(jdn JDN) (int, error) {
	year := 0
	start := c.yearStart(0)
	for i := 0; i < negativeYearScanCap; i++ {
		if jdn >= start {
			return year, nil
		}
		year--
		yl := c.yearLength(year)
		if yl <= 0 {
			break // a non-positive year length can never reach jdn
		}
		start -= JDN(yl)
	}
	return 0, fmt.Errorf("%w: hebrew year for JDN %d", ErrNonConvergence, jdn)
}

func (c *hebrewConverter) Info() Info {
	return Info{
		Kind:        Hebrew,
		Name:        "Hebrew",
		NativeName:  "הלוח העברי",
		Type:        TypeLunisolar,
		Months:      13,
		MinYearDays: 354,
		MaxYearDays: 385,
		EpochJDN:    hebrewEpochJDN,
		Era:         "AM",
		LeapRule:    "7 leap years per 19-year Metonic cycle (positions 3,6,8,11,14,17,19)",
	}
}

func (c *hebrewConverter) monthName(d Date) string {
	if HebrewIsLeapYear(d.Year) {
		return monthNameFrom(hebrewMonthNamesLeap[:], d.Month)
	}
	return monthNameFrom(hebrewMonthNamesCommon[:], d.Month)
}

func (c *hebrewConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "AM",
		monthName: c.monthName,
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *hebrewConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Hebrew, Era: "AM"}, true
}
