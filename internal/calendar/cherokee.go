package calendar

import "fmt"

// cherokeeMonthNames are the traditional moon names mapped onto the
// Gregorian months, the convention this adapted calendar follows.
var cherokeeMonthNames = [12]string{
	"Dunolvtani", "Kagali", "Anvyi", "Kawoni", "Anisguti", "Dehaluyi",
	"Guyegwoni", "Galoni", "Duliisdi", "Duninodi", "Nudadaequa", "Vsgiyi",
}

// cherokeeConverter delegates structurally to the Gregorian machinery and
// substitutes the Cherokee month-name table at format time.
type cherokeeConverter struct{}

func (c *cherokeeConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: cherokee month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > gregorianMonthDays(year, month) {
		return 0, fmt.Errorf("%w: cherokee %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return GregorianToJDN(year, month, day), nil
}

func (c *cherokeeConverter) FromJDN(jdn JDN) Date {
	y, m, d := JDNToGregorian(jdn)
	return Date{Year: y, Month: m, Day: d, Kind: Cherokee}
}

func (c *cherokeeConverter) Info() Info {
	return Info{
		Kind:        Cherokee,
		Name:        "Cherokee",
		NativeName:  "ᏣᎳᎩ",
		Type:        TypeSolar,
		Months:      12,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    GregorianToJDN(1, 1, 1),
		Era:         "",
		LeapRule:    "Gregorian rule (adapted calendar)",
	}
}

func (c *cherokeeConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		monthName: func(d Date) string { return monthNameFrom(cherokeeMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *cherokeeConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: Cherokee}, true
}
