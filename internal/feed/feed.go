// Package feed turns a vCard contact source into an iCalendar birthday feed
// whose event summaries are written in a configurable calendar system. The
// conversion itself is delegated to the calendar registry; this package owns
// acquisition, parsing and ICS assembly.
package feed

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/ldelacroix/polycal/internal/calendar"
	"github.com/ldelacroix/polycal/internal/config"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode            string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath       string // Absolute path to the .vcf file
	WebURL          string // CardDAV or WebDAV URL
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
}

// Generator fetches contacts and produces the calendar feed. Target selects
// the calendar system the event summaries are written in; Pattern is the
// format pattern applied to the converted dates (empty selects the target
// converter's default rendering).
type Generator struct {
	Clock    Clock
	Fetcher  VCardFetcher
	Registry *calendar.Registry
	Target   calendar.Kind
	Pattern  string

	// FormatSummary injects localized summary strings. The date argument
	// is already rendered in the target calendar.
	FormatSummary func(name, date string, age int, yearKnown bool) string
}

// RunSync executes the fetching, parsing, and generation pipeline.
// It returns the ICS data, the contact list, the count of birthdays today,
// and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []BirthdayEntry, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyMode, cfg.Mode,
		config.LogKeyTarget, g.Target.String(),
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	if g.Registry == nil {
		return nil, nil, 0, errors.New(config.ErrRegistryMissing)
	}

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	ics, contacts, count, err := g.generateCalendar(ctx, reader, cfg.ReminderTrigger)
	if err == nil {
		log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, contacts, count, err
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// convertDisplay expresses a Gregorian calendar day in the target calendar
// and renders it with the configured pattern.
func (g *Generator) convertDisplay(year int, month time.Month, day int) (calendar.Date, string) {
	conv, err := g.Registry.Converter(g.Target)
	if err != nil {
		// Unregistered target is a wiring bug; degrade to ISO text.
		slog.Error(config.ErrConverterMissing,
			config.LogKeyComponent, config.CompFeed,
			config.LogKeyTarget, g.Target.String(),
		)
		return calendar.Date{}, fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
	}
	d := conv.FromJDN(calendar.GregorianToJDN(year, int(month), day))
	return d, conv.Format(d, g.Pattern)
}

// generateCalendar parses the vCard stream and constructs the iCalendar
// object, converting every event date into the target calendar for display.
func (g *Generator) generateCalendar(ctx context.Context, r io.Reader, reminderTrigger string) ([]byte, []BirthdayEntry, int, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: suggest a refresh interval.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time drives the logic; UTC is only for ICS stamping. A birthday
	// is defined by the person's local calendar date, not a UTC instant.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	decoder := vcard.NewDecoder(r)
	stats := struct{ processed, withBday, today int }{0, 0, 0}
	var contacts []BirthdayEntry

	for {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Continue to the next card to maximize data recovery.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompFeed,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompFeed,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		// Name strategy: FN (Formatted) > N (Structured) > fallback.
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		// Deterministic UID generation for stability across refreshes.
		input := fmt.Sprintf(config.FormatHashInput, name, birthDate.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		nextOcc, ageNext := calculateNextOccurrence(now, birthDate, yearKnown)
		converted, display := g.convertDisplay(birthDate.Year(), birthDate.Month(), birthDate.Day())

		contacts = append(contacts, BirthdayEntry{
			UID:            uidBase,
			Name:           name,
			DateOfBirth:    birthDate,
			YearKnown:      yearKnown,
			NextOccurrence: nextOcc,
			AgeNext:        ageNext,
			Converted:      converted,
			Display:        display,
		})

		events, isToday := g.createEvents(name, birthDate, yearKnown, reminderTrigger, now, uidBase)
		if isToday {
			stats.today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompFeed,
				config.LogKeyName, name,
				config.LogKeyDOB, birthDate.Format(config.DateFormatFullDash))
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// A valid (if empty) VCALENDAR keeps clients from flagging the feed.
	if len(cal.Children) == 0 {
		g.logSuccess(stats)
		return []byte(config.StubVCalendar), contacts, 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	return buf.Bytes(), contacts, stats.today, nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats struct{ processed, withBday, today int }) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompFeed,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}

// calculateNextOccurrence determines the next birthday date relative to
// 'now', used for sorting the contact list.
func calculateNextOccurrence(now time.Time, birthDate time.Time, yearKnown bool) (time.Time, int) {
	currentYear := now.Year()
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st in non-leap years.
	candidate := time.Date(currentYear, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(currentYear+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - birthDate.Year()
	}
	return candidate, ageNext
}

// createEvents generates events for the previous, current, and next year so
// calendar apps scrolling either way see entries without a re-sync. The
// summary of each event carries that year's date in the target calendar.
func (g *Generator) createEvents(name string, birthDate time.Time, yearKnown bool, reminderTrigger string, now time.Time, uidBase string) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	isToday := false

	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		// No event before the person is born.
		if yearKnown && y < birthDate.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := 0
		if yearKnown {
			age = y - birthDate.Year()
		}

		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
		_, display := g.convertDisplay(eventDate.Year(), eventDate.Month(), eventDate.Day())

		summary := fmt.Sprintf(config.FallbackSummary, name, display)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(name, display, age, yearKnown && age >= 0)
		}
		event.Props.SetText(config.PropSummary, summary)

		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, isToday
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the trigger manually to avoid a VALUE=TEXT param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// parseDate handles the vCard BDAY formats, including the truncated
// year-unknown variants.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (year unknown); the leap-year fallback keeps --02-29
	// parseable.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
