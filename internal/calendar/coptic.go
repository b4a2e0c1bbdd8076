package calendar

import "fmt"

// Coptic and Ethiopian share the same 13-month solar structure: twelve
// 30-day months plus a 5- or 6-day epagomenal month, leap every fourth year
// (cycle position 3). Only the epoch and the name tables differ.

const (
	copticEpochJDN    JDN = 1825030 // 1 Thout AM 1 = 29 Aug 284 CE (Julian)
	ethiopianEpochJDN JDN = 1724221 // 1 Meskerem EE 1 = 29 Aug 8 CE (Julian)
)

var copticMonthNames = [13]string{
	"Thout", "Paopi", "Hathor", "Koiak", "Tobi", "Meshir", "Paremhat",
	"Parmouti", "Pashons", "Paoni", "Epip", "Mesori", "Nasie",
}

var ethiopianMonthNames = [13]string{
	"Meskerem", "Tikimt", "Hidar", "Tahsas", "Tir", "Yekatit", "Megabit",
	"Miyazya", "Ginbot", "Sene", "Hamle", "Nehase", "Pagumen",
}

// copticStyleConverter implements the shared machinery, parameterized by
// epoch and naming.
type copticStyleConverter struct {
	kind     Kind
	epoch    JDN
	months   []string
	name     string
	native   string
	era      string
	leapRule string
}

func newCopticConverter() *copticStyleConverter {
	return &copticStyleConverter{
		kind:     Coptic,
		epoch:    copticEpochJDN,
		months:   copticMonthNames[:],
		name:     "Coptic",
		native:   "Ⲡⲓⲕⲗⲁⲧⲟⲥ",
		era:      "AM",
		leapRule: "every 4th year (cycle position 3) adds a 6th epagomenal day",
	}
}

func newEthiopianConverter() *copticStyleConverter {
	return &copticStyleConverter{
		kind:     Ethiopian,
		epoch:    ethiopianEpochJDN,
		months:   ethiopianMonthNames[:],
		name:     "Ethiopian",
		native:   "የኢትዮጵያ ዘመን አቆጣጠር",
		era:      "EE",
		leapRule: "every 4th year (cycle position 3) adds a 6th epagomenal day",
	}
}

func (c *copticStyleConverter) isLeapYear(year int) bool {
	return floorMod(int64(year), 4) == 3
}

func (c *copticStyleConverter) epagomenalDays(year int) int {
	if c.isLeapYear(year) {
		return 6
	}
	return 5
}

func (c *copticStyleConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 13 {
		return 0, fmt.Errorf("%w: %s month %d", ErrInvalidDate, c.kind, month)
	}
	maxDay := 30
	if month == 13 {
		maxDay = c.epagomenalDays(year)
	}
	if day < 1 || day > maxDay {
		return 0, fmt.Errorf("%w: %s %d-%02d-%02d", ErrInvalidDate, c.kind, year, month, day)
	}
	y := int64(year)
	jdn := int64(c.epoch) - 1 + 365*(y-1) + floorDiv(y, 4) + int64(30*(month-1)) + int64(day)
	return JDN(jdn), nil
}

func (c *copticStyleConverter) FromJDN(jdn JDN) Date {
	offset := int64(jdn) - int64(c.epoch)
	year := int(floorDiv(4*offset+1463, 1461))
	yearStart, _ := c.ToJDN(year, 1, 1)
	dayOfYear := int(jdn - yearStart) // zero-based
	month := dayOfYear/30 + 1
	day := dayOfYear - 30*(month-1) + 1
	return Date{Year: year, Month: month, Day: day, Kind: c.kind, Era: c.era}
}

func (c *copticStyleConverter) Info() Info {
	return Info{
		Kind:        c.kind,
		Name:        c.name,
		NativeName:  c.native,
		Type:        TypeSolar,
		Months:      13,
		MinYearDays: 365,
		MaxYearDays: 366,
		EpochJDN:    c.epoch,
		Era:         c.era,
		LeapRule:    c.leapRule,
	}
}

func (c *copticStyleConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		era:       c.era,
		monthName: func(d Date) string { return monthNameFrom(c.months, d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *copticStyleConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: c.kind, Era: c.era}, true
}
