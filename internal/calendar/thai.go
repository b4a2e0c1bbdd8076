package calendar

import "fmt"

// thaiYearOffset separates the Buddhist Era from the Common Era.
const thaiYearOffset = 543

var thaiMonthNames = [12]string{
	"Mokkarakhom", "Kumphaphan", "Minakhom", "Mesayon",
	"Phruetsaphakhom", "Mithunayon", "Karakadakhom", "Singhakhom",
	"Kanyayon", "Tulakhom", "Phruetsachikayon", "Thanwakhom",
}

// thaiBuddhistConverter is a year-remapped Gregorian calendar: identical
// month structure, Buddhist Era year numbering.
type thaiBuddhistConverter struct{}

func (c *thaiBuddhistConverter) ToJDN(year, month, day int) (JDN, error) {
	gy := year - thaiYearOffset
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: thai-buddhist month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > gregorianMonthDays(gy, month) {
		return 0, fmt.Errorf("%w: thai-buddhist %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return GregorianToJDN(gy, month, day), nil
}

func (c *thaiBuddhistConverter) FromJDN(jdn JDN) Date {
	y, m, d := JDNToGregorian(jdn)
	return Date{Year: y + thaiYearOffset, Month: m, Day: d, Kind: ThaiBuddhist, Era: "BE"}
}

func (c *thaiBuddhistConverter) Info() Info {
	return Info{
		Kind:        ThaiBuddhist,
		Name:        "Thai Buddhist",
		NativeName:  "พุทธศักราช",
		Type:        TypeSolar,
		Months:      12,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    GregorianToJDN(1-thaiYearOffset, 1, 1),
		Era:         "BE",
		LeapRule:    "Gregorian rule applied to year-543",
	}
}

func (c *thaiBuddhistConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "BE",
		monthName: func(d Date) string { return monthNameFrom(thaiMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *thaiBuddhistConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: ThaiBuddhist, Era: "BE"}, true
}
