package calendar

import "fmt"

// iroquoisMoonDays is floor(365.25 / 13): the fixed moon length of this
// adapted calendar. The thirteenth moon absorbs the year's remainder. This is
// a design approximation, not an authentic lunar observation.
const iroquoisMoonDays = 28

var iroquoisMoonNames = [13]string{
	"Midwinter Moon", "Sugar Moon", "Fishing Moon", "Planting Moon",
	"Strawberry Moon", "Blooming Moon", "Green Bean Moon", "Green Corn Moon",
	"Freshness Moon", "Harvest Moon", "Hunting Moon", "Cold Moon",
	"Long Night Moon",
}

// iroquoisConverter repartitions the Gregorian day-of-year into thirteen
// fixed-length moons.
type iroquoisConverter struct{}

func (c *iroquoisConverter) yearDays(year int) int {
	if IsGregorianLeapYear(year) {
		return 366
	}
	return 365
}

// lastMoonDays is the length of moon 13 for the year: the remainder after
// twelve 28-day moons.
func (c *iroquoisConverter) lastMoonDays(year int) int {
	return c.yearDays(year) - 12*iroquoisMoonDays
}

func (c *iroquoisConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 13 {
		return 0, fmt.Errorf("%w: iroquois moon %d", ErrInvalidDate, month)
	}
	maxDay := iroquoisMoonDays
	if month == 13 {
		maxDay = c.lastMoonDays(year)
	}
	if day < 1 || day > maxDay {
		return 0, fmt.Errorf("%w: iroquois %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	dayOfYear := (month-1)*iroquoisMoonDays + day
	return GregorianToJDN(year, 1, 1) + JDN(dayOfYear-1), nil
}

func (c *iroquoisConverter) FromJDN(jdn JDN) Date {
	year, _, _ := JDNToGregorian(jdn)
	dayOfYear := int(jdn-GregorianToJDN(year, 1, 1)) + 1

	moon := (dayOfYear-1)/iroquoisMoonDays + 1
	if moon > 13 {
		moon = 13
	}
	day := dayOfYear - (moon-1)*iroquoisMoonDays
	return Date{Year: year, Month: moon, Day: day, Kind: Iroquois}
}

func (c *iroquoisConverter) Info() Info {
	return Info{
		Kind:        Iroquois,
		Name:        "Iroquois",
		NativeName:  "Haudenosaunee",
		Type:        TypeOther,
		Months:      13,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    GregorianToJDN(1, 1, 1),
		Era:         "",
		LeapRule:    "Gregorian year repartitioned into 13 fixed 28-day moons",
	}
}

func (c *iroquoisConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		monthName: func(d Date) string { return monthNameFrom(iroquoisMoonNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *iroquoisConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Iroquois}, true
}
