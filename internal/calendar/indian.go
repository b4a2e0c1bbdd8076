package calendar

import "fmt"

// indianSakaYearOffset separates the Saka Era from the Common Era.
const indianSakaYearOffset = 78

var indianMonthNames = [12]string{
	"Chaitra", "Vaishakha", "Jyeshtha", "Ashadha", "Shravana", "Bhadrapada",
	"Ashwin", "Kartika", "Agrahayana", "Pausha", "Magha", "Phalguna",
}

// indianSakaConverter implements the Indian national (civil) calendar:
// Chaitra 1 falls on 22 March, or 21 March when the concurrent Gregorian
// year is leap, in which case Chaitra has 31 days instead of 30.
type indianSakaConverter struct{}

func (c *indianSakaConverter) gregorianYear(year int) int {
	return year + indianSakaYearOffset
}

func (c *indianSakaConverter) isLeapYear(year int) bool {
	return IsGregorianLeapYear(c.gregorianYear(year))
}

// yearStart is the JDN of Chaitra 1.
func (c *indianSakaConverter) yearStart(year int) JDN {
	gy := c.gregorianYear(year)
	start := GregorianToJDN(gy, 3, 22)
	if IsGregorianLeapYear(gy) {
		start--
	}
	return start
}

func (c *indianSakaConverter) monthDays(year, month int) int {
	switch {
	case month == 1:
		if c.isLeapYear(year) {
			return 31
		}
		return 30
	case month <= 6:
		return 31
	default:
		return 30
	}
}

func (c *indianSakaConverter) daysBeforeMonth(year, month int) int {
	if month == 1 {
		return 0
	}
	chaitra := c.monthDays(year, 1)
	if month <= 6 {
		return chaitra + (month-2)*31
	}
	return chaitra + 5*31 + (month-7)*30
}

func (c *indianSakaConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: indian-saka month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > c.monthDays(year, month) {
		return 0, fmt.Errorf("%w: indian-saka %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return c.yearStart(year) + JDN(c.daysBeforeMonth(year, month)+day-1), nil
}

func (c *indianSakaConverter) FromJDN(jdn JDN) Date {
	gy, _, _ := JDNToGregorian(jdn)
	year := gy - indianSakaYearOffset
	if jdn < c.yearStart(year) {
		year--
	}

	dayOfYear := int(jdn - c.yearStart(year)) // zero-based
	chaitra := c.monthDays(year, 1)
	var month, day int
	switch {
	case dayOfYear < chaitra:
		month = 1
		day = dayOfYear + 1
	case dayOfYear < chaitra+5*31:
		rem := dayOfYear - chaitra
		month = 2 + rem/31
		day = rem%31 + 1
	default:
		rem := dayOfYear - chaitra - 5*31
		month = 7 + rem/30
		day = rem%30 + 1
	}
	return Date{Year: year, Month: month, Day: day, Kind: IndianSaka, Era: "Saka"}
}

func (c *indianSakaConverter) Info() Info {
	return Info{
		Kind:        IndianSaka,
		Name:        "Indian National",
		NativeName:  "भारतीय राष्ट्रीय पंचांग",
		Type:        TypeSolar,
		Months:      12,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    GregorianToJDN(1+indianSakaYearOffset, 3, 22),
		Era:         "Saka",
		LeapRule:    "Gregorian rule applied to year+78; leap years add the day to Chaitra",
	}
}

func (c *indianSakaConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "Saka",
		monthName: func(d Date) string { return monthNameFrom(indianMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *indianSakaConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: IndianSaka, Era: "Saka"}, true
}
