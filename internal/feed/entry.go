package feed

import (
	"time"

	"github.com/ldelacroix/polycal/internal/calendar"
)

// BirthdayEntry is a lightweight contact record decoupled from the vCard
// parsing layer. Besides the Gregorian birth date it carries the same date
// expressed in the feed's target calendar.
type BirthdayEntry struct {
	// UID is a deterministic hash identifier, stable across refreshes.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the original parsed Gregorian date.
	DateOfBirth time.Time

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool

	// NextOccurrence is the date of the birthday in the current or next
	// year, the primary sorting key for upcoming views.
	NextOccurrence time.Time

	// AgeNext is the age turned at NextOccurrence, valid when YearKnown.
	AgeNext int

	// Converted is the birth date expressed in the target calendar.
	Converted calendar.Date

	// Display is Converted rendered with the feed's format pattern.
	Display string
}
