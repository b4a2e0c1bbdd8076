package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ldelacroix/polycal/internal/config"
)

// eraBCE is the uniform display era for non-positive years, applied across
// every calendar: year 0 renders as 1 BCE, year -1 as 2 BCE.
const eraBCE = "BCE"

// dayNames are the Gregorian-week day names. Day-of-week is always
// Gregorian-week-anchored, regardless of the target calendar.
var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// formatOpts carries the per-calendar tables the token engine substitutes.
type formatOpts struct {
	era string // era name for positive years; may be empty

	// monthName resolves the full month name for the date, or "" when the
	// calendar has no name for the month index. It receives the whole date
	// because lunisolar month names shift in leap years.
	monthName func(d Date) string

	// jdn is the day number of the date, used for weekday tokens.
	// jdnOK is false when the date did not convert (invalid input).
	jdn   JDN
	jdnOK bool
}

// displayYear applies the uniform era rule: non-positive years display as
// their BCE magnitude.
func displayYear(year int) (int, bool) {
	if year <= 0 {
		return 1 - year, true
	}
	return year, false
}

// formatTokens is the token-substitution engine shared by every converter.
// At each position the longest token is tried first so that MMMM is never
// corrupted into MM + MM.
func formatTokens(d Date, pattern string, opts formatOpts) string {
	if pattern == "" {
		pattern = config.DefaultPattern
	}
	year, bce := displayYear(d.Year)
	era := opts.era
	if bce {
		era = eraBCE
	}

	monthName := ""
	if opts.monthName != nil {
		monthName = opts.monthName(d)
	}
	if monthName == "" {
		monthName = strconv.Itoa(d.Month)
	}

	weekday := ""
	if opts.jdnOK {
		weekday = dayNames[DayOfWeek(opts.jdn)]
	}

	var b strings.Builder
	i := 0
	for i < len(pattern) {
		rest := pattern[i:]
		switch {
		case strings.HasPrefix(rest, "YYYY"):
			b.WriteString(fmt.Sprintf("%04d", year))
			i += 4
		case strings.HasPrefix(rest, "YY"):
			b.WriteString(fmt.Sprintf("%02d", floorMod(int64(year), 100)))
			i += 2
		case strings.HasPrefix(rest, "MMMM"):
			b.WriteString(monthName)
			i += 4
		case strings.HasPrefix(rest, "MMM"):
			b.WriteString(truncateName(monthName, 3))
			i += 3
		case strings.HasPrefix(rest, "MM"):
			b.WriteString(fmt.Sprintf("%02d", d.Month))
			i += 2
		case strings.HasPrefix(rest, "M"):
			b.WriteString(strconv.Itoa(d.Month))
			i++
		case strings.HasPrefix(rest, "DD"):
			b.WriteString(fmt.Sprintf("%02d", d.Day))
			i += 2
		case strings.HasPrefix(rest, "D"):
			b.WriteString(strconv.Itoa(d.Day))
			i++
		case strings.HasPrefix(rest, "EEEE"):
			b.WriteString(weekday)
			i += 4
		case strings.HasPrefix(rest, "EEE"):
			b.WriteString(truncateName(weekday, 3))
			i += 3
		case strings.HasPrefix(rest, "ERA"):
			b.WriteString(era)
			i += 3
		case strings.HasPrefix(rest, "E"):
			b.WriteString(truncateName(weekday, 2))
			i++
		default:
			b.WriteByte(pattern[i])
			i++
		}
	}
	return strings.TrimSpace(b.String())
}

// truncateName shortens a name to n runes without splitting multi-byte
// characters (several native month-name tables are non-ASCII).
func truncateName(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// parseDashed interprets "[-]Y-M-D" input, the shared numeric grammar of the
// year/month/day calendars. It reports false on malformed input.
func parseDashed(s string) (year, month, day int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, false
	}
	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || p == "" {
			return 0, 0, 0, false
		}
		nums[i] = v
	}
	year = nums[0]
	if negative {
		year = -year
	}
	return year, nums[1], nums[2], true
}

// parseDotted interprets "a.b.c..." positional input used by the Mayan
// Long Count grammar. It reports false unless exactly want fields parse.
func parseDotted(s string, want int) ([]int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != want {
		return nil, false
	}
	out := make([]int, want)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
