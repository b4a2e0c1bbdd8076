package calendar

import "fmt"

type julianConverter struct{}

func (c *julianConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: julian month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > julianMonthDays(year, month) {
		return 0, fmt.Errorf("%w: julian %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return JulianToJDN(year, month, day), nil
}

func (c *julianConverter) FromJDN(jdn JDN) Date {
	y, m, d := JDNToJulian(jdn)
	return Date{Year: y, Month: m, Day: d, Kind: Julian, Era: "CE"}
}

func (c *julianConverter) Info() Info {
	return Info{
		Kind:        Julian,
		Name:        "Julian",
		NativeName:  "Julian",
		Type:        TypeSolar,
		Months:      12,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    JulianToJDN(1, 1, 1),
		Era:         "CE",
		LeapRule:    "divisible by 4",
	}
}

func (c *julianConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       "CE",
		monthName: func(d Date) string { return monthNameFrom(gregorianMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *julianConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Julian, Era: "CE"}, true
}
