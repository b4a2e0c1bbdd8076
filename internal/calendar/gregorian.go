package calendar

import "fmt"

var gregorianMonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type gregorianConverter struct{}

func (c *gregorianConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: gregorian month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > gregorianMonthDays(year, month) {
		return 0, fmt.Errorf("%w: gregorian %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return GregorianToJDN(year, month, day), nil
}

func (c *gregorianConverter) FromJDN(jdn JDN) Date {
	y, m, d := JDNToGregorian(jdn)
	return Date{Year: y, Month: m, Day: d, Kind: Gregorian, Era: "CE"}
}

func (c *gregorianConverter) Info() Info {
	return Info{
		Kind:        Gregorian,
		Name:        "Gregorian",
		NativeName:  "Gregorian",
		Type:        TypeSolar,
		Months:      12,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    GregorianToJDN(1, 1, 1),
		Era:         "CE",
		LeapRule:    "divisible by 4, except centuries not divisible by 400",
	}
}

func (c *gregorianConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "CE",
		monthName: func(d Date) string { return monthNameFrom(gregorianMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *gregorianConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Gregorian, Era: "CE"}, true
}

// monthNameFrom indexes a month-name table defensively: formatting never
// panics, even on a date that failed validation.
func monthNameFrom(names []string, month int) string {
	if month < 1 || month > len(names) {
		return ""
	}
	return names[month-1]
}
