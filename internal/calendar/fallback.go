package calendar

import (
	"log/slog"

	"github.com/ldelacroix/polycal/internal/config"
)

// Iteration caps for the year searches. They convert "would loop forever on
// corrupt input" into "returns a flagged fallback".
const (
	// binarySearchCap bounds the forward binary search over candidate
	// years. log2 of any representable year span fits well inside it.
	binarySearchCap = 50

	// negativeYearScanCap bounds the linear backward walk used for
	// pre-epoch dates, which are rare and bounded in practice.
	negativeYearScanCap = 10000
)

// flaggedFallback logs a non-convergent search and returns the calendar's
// documented fallback: its own epoch date. FromJDN must stay total, so the
// fallback is constructed directly rather than through another search.
func flaggedFallback(kind Kind, era string, jdn JDN, err error) Date {
	slog.Warn(config.MsgFallbackDate,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyCalendar, kind.String(),
		config.LogKeyJDN, int64(jdn),
		config.LogKeyError, err,
	)
	return Date{Year: 1, Month: 1, Day: 1, Kind: kind, Era: era}
}
