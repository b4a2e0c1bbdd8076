package calendar

import "fmt"

// aztecMonthNames are the eighteen veintenas plus the five nemontemi days.
var aztecMonthNames = [19]string{
	"Atlcahualo", "Tlacaxipehualiztli", "Tozoztontli", "Huey Tozoztli",
	"Toxcatl", "Etzalcualiztli", "Tecuilhuitontli", "Huey Tecuilhuitl",
	"Tlaxochimaco", "Xocotl Huetzi", "Ochpaniztli", "Teotleco",
	"Tepeilhuitl", "Quecholli", "Panquetzaliztli", "Atemoztli",
	"Tititl", "Izcalli", "Nemontemi",
}

// aztecConverter mirrors the Haab' structure (18 x 20 + 5) with its own
// month names, aligned directly at the shared Mesoamerican epoch. Like the
// Mayan converters it applies no leap correction.
type aztecConverter struct{}

func (c *aztecConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 19 {
		return 0, fmt.Errorf("%w: aztec month %d", ErrInvalidDate, month)
	}
	maxDay := 20
	if month == 19 {
		maxDay = 5
	}
	if day < 1 || day > maxDay {
		return 0, fmt.Errorf("%w: aztec %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	pos := int64((month-1)*20 + day - 1)
	return mayanEpochJDN + JDN(int64(year)*365+pos), nil
}

func (c *aztecConverter) FromJDN(jdn JDN) Date {
	days := int64(jdn) - int64(mayanEpochJDN)
	pos := int(floorMod(days, 365))
	return Date{
		Year:  int(floorDiv(days, 365)),
		Month: pos/20 + 1,
		Day:   pos%20 + 1,
		Kind:  AztecXiuhpohualli,
	}
}

func (c *aztecConverter) Info() Info {
	return Info{
		Kind:        AztecXiuhpohualli,
		Name:        "Aztec Xiuhpohualli",
		NativeName:  "Xiuhpohualli",
		Type:        TypeOther,
		Months:      19,
		MinYearDays: 365,
		MaxYearDays: 365,
		EpochJDN:    mayanEpochJDN,
		Era:         "",
		LeapRule:    "none; fixed 365-day year drifting against the seasons",
	}
}

func (c *aztecConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		monthName: func(d Date) string { return monthNameFrom(aztecMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *aztecConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: AztecXiuhpohualli}, true
}
