package calendar

import "fmt"

// mayanEpochJDN is the Long Count epoch 0.0.0.0.0 (11 August 3114 BCE) under
// the GMT correlation. All four fixed-cycle converters share it, and none of
// them applies a leap-year correction: the 365-day Haab' year drifts against
// the seasons exactly as the authentic calendar does.
const mayanEpochJDN JDN = 584283

// -----------------------------------------------------------------------------
// Tzolk'in
// -----------------------------------------------------------------------------

// tzolkinDayNames are the twenty day names combined with the numbers 1-13
// into the 260-day cycle.
var tzolkinDayNames = [20]string{
	"Imix", "Ik'", "Ak'b'al", "K'an", "Chikchan", "Kimi", "Manik'",
	"Lamat", "Muluk", "Ok", "Chuwen", "Eb'", "B'en", "Ix", "Men",
	"K'ib'", "Kab'an", "Etz'nab'", "Kawak", "Ajaw",
}

// Epoch alignment: JDN 584,283 is 4 Ajaw, the authentic correlation.
const (
	tzolkinNumberShift = 3  // epoch day carries number 4
	tzolkinNameShift   = 19 // epoch day carries the 20th name (Ajaw)
)

// tzolkinConverter models the pure 260-day cycle. The Date fields are
// repurposed: Year is a free-running cycle counter, Month the day-name index
// (1-20), Day the number (1-13).
type tzolkinConverter struct{}

func (c *tzolkinConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 20 {
		return 0, fmt.Errorf("%w: tzolkin day-name index %d", ErrInvalidDate, month)
	}
	if day < 1 || day > 13 {
		return 0, fmt.Errorf("%w: tzolkin number %d", ErrInvalidDate, day)
	}
	// 13 and 20 are coprime, so exactly one position of the 260-day cycle
	// carries this (number, name) pair.
	for p := int64(0); p < 260; p++ {
		if int(floorMod(p+tzolkinNumberShift, 13))+1 == day &&
			int(floorMod(p+tzolkinNameShift, 20))+1 == month {
			return mayanEpochJDN + JDN(int64(year)*260+p), nil
		}
	}
	return 0, fmt.Errorf("%w: tzolkin %d/%d", ErrInvalidDate, month, day)
}

func (c *tzolkinConverter) FromJDN(jdn JDN) Date {
	days := int64(jdn) - int64(mayanEpochJDN)
	return Date{
		Year:  int(floorDiv(days, 260)),
		Month: int(floorMod(days+tzolkinNameShift, 20)) + 1,
		Day:   int(floorMod(days+tzolkinNumberShift, 13)) + 1,
		Kind:  MayanTzolkin,
	}
}

func (c *tzolkinConverter) Info() Info {
	return Info{
		Kind:        MayanTzolkin,
		Name:        "Mayan Tzolk'in",
		NativeName:  "Tzolk'in",
		Type:        TypeOther,
		Months:      20,
		MinYearDays: 260,
		MaxYearDays: 260,
		EpochJDN:    mayanEpochJDN,
		Era:         "",
		LeapRule:    "none; pure 260-day cycle (13 numbers x 20 day names)",
	}
}

func (c *tzolkinConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		monthName: func(d Date) string { return monthNameFrom(tzolkinDayNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *tzolkinConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: MayanTzolkin}, true
}

// -----------------------------------------------------------------------------
// Haab'
// -----------------------------------------------------------------------------

var haabMonthNames = [19]string{
	"Pop", "Wo'", "Sip", "Sotz'", "Sek", "Xul", "Yaxk'in", "Mol",
	"Ch'en", "Yax", "Sak'", "Keh", "Mak", "K'ank'in", "Muwan", "Pax",
	"K'ayab", "Kumk'u", "Wayeb'",
}

// haabEpochOffset aligns the epoch to 8 Kumk'u, day 348 of the 365-day
// cycle, matching the authentic correlation.
const haabEpochOffset = 348

// haabConverter models the 365-day vague year: 18 months of 20 days plus the
// five epilogual Wayeb' days. Year is a free-running year counter.
type haabConverter struct{}

func (c *haabConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 1 || month > 19 {
		return 0, fmt.Errorf("%w: haab month %d", ErrInvalidDate, month)
	}
	maxDay := 20
	if month == 19 {
		maxDay = 5
	}
	if day < 1 || day > maxDay {
		return 0, fmt.Errorf("%w: haab %d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	pos := int64((month-1)*20 + day - 1)
	return mayanEpochJDN + JDN(int64(year)*365+pos-haabEpochOffset), nil
}

func (c *haabConverter) FromJDN(jdn JDN) Date {
	days := int64(jdn) - int64(mayanEpochJDN) + haabEpochOffset
	pos := int(floorMod(days, 365))
	return Date{
		Year:  int(floorDiv(days, 365)),
		Month: pos/20 + 1,
		Day:   pos%20 + 1,
		Kind:  MayanHaab,
	}
}

func (c *haabConverter) Info() Info {
	return Info{
		Kind:        MayanHaab,
		Name:        "Mayan Haab'",
		NativeName:  "Haab'",
		Type:        TypeOther,
		Months:      19,
		MinYearDays: 365,
		MaxYearDays: 365,
		EpochJDN:    mayanEpochJDN,
		Era:         "",
		LeapRule:    "none; fixed 365-day year drifting against the seasons",
	}
}

func (c *haabConverter) Format(d Date, pattern string) string {
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		monthName: func(d Date) string { return monthNameFrom(haabMonthNames[:], d.Month) },
		jdn:       jdn,
		jdnOK:     err == nil,
	})
}

func (c *haabConverter) Parse(s string) (Date, bool) {
	y, m, d, ok := parseDashed(s)
	if !ok {
		return Date{}, false
	}
	if _, err := c.ToJDN(y, m, d); err != nil {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d, Kind: MayanHaab}, true
}

// -----------------------------------------------------------------------------
// Long Count
// -----------------------------------------------------------------------------

// Long Count unit sizes in days.
const (
	longCountKatun  = 7200
	longCountBaktun = 144000
	longCountTun    = 360
	longCountUinal  = 20
)

// longCountConverter models the positional linear day count. Date fields are
// repurposed: Year carries the baktun, Month the katun, and Day packs the
// three finer units as tun*400 + uinal*20 + kin so they round-trip through a
// single integer field.
type longCountConverter struct{}

// packLongCount encodes tun/uinal/kin into the Day field.
func packLongCount(tun, uinal, kin int) int {
	return tun*400 + uinal*20 + kin
}

// unpackLongCount is the inverse of packLongCount.
func unpackLongCount(day int) (tun, uinal, kin int) {
	return day / 400, (day % 400) / 20, day % 20
}

func (c *longCountConverter) ToJDN(year, month, day int) (JDN, error) {
	if month < 0 || month > 19 {
		return 0, fmt.Errorf("%w: long-count katun %d", ErrInvalidDate, month)
	}
	tun, uinal, kin := unpackLongCount(day)
	if day < 0 || tun > 19 || uinal > 17 {
		return 0, fmt.Errorf("%w: long-count packed day %d", ErrInvalidDate, day)
	}
	days := int64(year)*longCountBaktun + int64(month)*longCountKatun +
		int64(tun)*longCountTun + int64(uinal)*longCountUinal + int64(kin)
	return mayanEpochJDN + JDN(days), nil
}

func (c *longCountConverter) FromJDN(jdn JDN) Date {
	days := int64(jdn) - int64(mayanEpochJDN)
	baktun := floorDiv(days, longCountBaktun)
	rem := int(floorMod(days, longCountBaktun))
	katun := rem / longCountKatun
	rem %= longCountKatun
	tun := rem / longCountTun
	rem %= longCountTun
	uinal := rem / longCountUinal
	kin := rem % longCountUinal
	return Date{
		Year:  int(baktun),
		Month: katun,
		Day:   packLongCount(tun, uinal, kin),
		Kind:  MayanLongCount,
	}
}

func (c *longCountConverter) Info() Info {
	return Info{
		Kind:        MayanLongCount,
		Name:        "Mayan Long Count",
		NativeName:  "Long Count",
		Type:        TypeOther,
		Months:      20,
		MinYearDays: 144000,
		MaxYearDays: 144000,
		EpochJDN:    mayanEpochJDN,
		Era:         "",
		LeapRule:    "none; positional base-20/base-18 day count",
	}
}

// Format renders the canonical dotted notation when the pattern is empty;
// token patterns apply to the packed fields otherwise.
func (c *longCountConverter) Format(d Date, pattern string) string {
	if pattern == "" {
		tun, uinal, kin := unpackLongCount(d.Day)
		return fmt.Sprintf("%d.%d.%d.%d.%d", d.Year, d.Month, tun, uinal, kin)
	}
	jdn, err := c.ToJDN(d.Year, d.Month, d.Day)
	return formatTokens(d, pattern, formatOpts{
		jdn:   jdn,
		jdnOK: err == nil,
	})
}

// Parse reads the dotted baktun.katun.tun.uinal.kin notation.
func (c *longCountConverter) Parse(s string) (Date, bool) {
	parts, ok := parseDotted(s, 5)
	if !ok {
		return Date{}, false
	}
	d := Date{
		Year:  parts[0],
		Month: parts[1],
		Day:   packLongCount(parts[2], parts[3], parts[4]),
		Kind:  MayanLongCount,
	}
	if parts[2] < 0 || parts[3] < 0 || parts[4] < 0 || parts[2] > 19 || parts[3] > 17 || parts[4] > 19 {
		return Date{}, false
	}
	if _, err := c.ToJDN(d.Year, d.Month, d.Day); err != nil {
		return Date{}, false
	}
	return d, true
}
