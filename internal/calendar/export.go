package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/misteinb/fluent-controls-go/internal/config"
	"github.com/misteinb/fluent-controls-go/internal/dateinput"
)

// Pick is one confirmed date selection, as recorded by the host.
type Pick struct {
	// Date is the selected calendar value.
	Date time.Time

	// Value is the canonical string that was delivered to the host.
	Value string

	// Source names the channel the pick arrived on ("change" or "paste").
	Source string

	// PickedAt is when the user confirmed the value.
	PickedAt time.Time
}

// Exporter renders confirmed picks as iCalendar documents.
type Exporter struct {
	// Clock is injected for deterministic DTSTAMP values in tests.
	Clock dateinput.Clock

	// Reminder is an ISO 8601 trigger offset (e.g. "-PT1H"). When set,
	// each exported event carries a display alarm at that offset.
	Reminder string
}

// NewExporter creates an Exporter backed by the real clock.
func NewExporter() *Exporter {
	return &Exporter{Clock: dateinput.RealClock{}}
}

// Export encodes a single-event calendar for the pick. The summary is
// host-supplied (typically localized); an empty summary falls back to a
// plain label.
func (e *Exporter) Export(pick Pick, summary string) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	if summary == "" {
		summary = fmt.Sprintf(config.FallbackSummary, pick.Date.Format(config.DateFormatDisplay))
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, pickUID(pick))
	event.Props.SetText(config.PropSummary, summary)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(pick.Date)
	event.Props.Set(dtStart)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(e.Clock.Now().UTC())
	event.Props.Set(dtStamp)

	if e.Reminder != "" {
		addAlarm(event, e.Reminder, summary)
	}

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// pickUID derives a stable identifier from the pick's canonical value, so
// re-exporting the same date updates rather than duplicates the event in
// subscribing clients.
func pickUID(pick Pick) string {
	input := fmt.Sprintf(config.FormatHashInput, pick.Value, pick.Date.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
