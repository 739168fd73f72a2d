package calendar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/misteinb/fluent-controls-go/internal/config"
)

// SeedEntry is a date extracted from a contact stream, ready to seed a
// date input.
type SeedEntry struct {
	// Name is the contact's formatted name, when present.
	Name string

	// Date is the parsed birthday.
	Date time.Time

	// YearKnown indicates whether the source carried a year or just --MM-DD.
	YearKnown bool
}

// ParseSeedValue handles the date formats a vCard BDAY field may carry,
// including year-less truncated forms.
func ParseSeedValue(value string) (time.Time, bool, error) {
	// Full dates (year known)
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

	// Truncated dates (year unknown). The leap-year fallback keeps
	// --02-29 representable.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

// FirstSeed scans a vCard stream and returns the first card carrying a
// usable BDAY value. Malformed cards are logged and skipped to maximize
// data recovery.
func FirstSeed(ctx context.Context, r io.Reader) (SeedEntry, error) {
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return SeedEntry{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSeedSkipped,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		date, yearKnown, err := ParseSeedValue(bday.Value)
		if err != nil {
			slog.Debug(config.ErrDateParse,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyValue, bday.Value)
			continue
		}

		entry := SeedEntry{Date: date, YearKnown: yearKnown}
		if fn := card.Get(config.VCardFN); fn != nil {
			entry.Name = fn.Value
		}
		return entry, nil
	}

	return SeedEntry{}, errors.New(config.ErrNoBirthday)
}
