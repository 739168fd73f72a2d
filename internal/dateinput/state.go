package dateinput

import (
	"time"

	"github.com/misteinb/fluent-controls-go/internal/config"
)

// State is an immutable snapshot of the date input. Transitions produce a
// new State; nothing is mutated in place.
type State struct {
	// Buffer is the literal text currently shown. Empty is a valid,
	// non-error state meaning "no input yet".
	Buffer string

	// Date is the parsed calendar value; meaningful only when HasDate.
	Date time.Time

	// HasDate reports whether Buffer fully parses to a calendar-valid date.
	HasDate bool

	// Valid is false exactly when Buffer is non-empty and does not parse.
	Valid bool

	// Ref is the last known usable date. Its time of day is carried into
	// newly parsed values that have none of their own.
	Ref time.Time
}

// NotifyKind selects the channel a settled edit is delivered on.
type NotifyKind int

const (
	// NotifyNone means the edit settled without an observable change.
	NotifyNone NotifyKind = iota
	// NotifyChange is the standard change channel.
	NotifyChange
	// NotifyPaste is the distinct channel for a pasted, fully valid date.
	NotifyPaste
)

// Notification is the single outcome of a settled edit. Value is the
// canonical RFC 3339 UTC string, empty for a cleared buffer, or the literal
// "invalid" sentinel.
type Notification struct {
	Kind  NotifyKind
	Value string
}

// SeedKind discriminates the externally supplied initial value.
type SeedKind int

const (
	// SeedNone means no initial value was supplied.
	SeedNone SeedKind = iota
	// SeedText is a free-form date string.
	SeedText
	// SeedDate is a structured date value.
	SeedDate
)

// Seed is the optional externally supplied initial value. Changing it
// resets the state wholesale via a Reseed event.
type Seed struct {
	Kind SeedKind
	Text string
	Date time.Time
}

// TextSeed builds a string seed.
func TextSeed(s string) Seed { return Seed{Kind: SeedText, Text: s} }

// DateSeed builds a structured seed.
func DateSeed(t time.Time) Seed { return Seed{Kind: SeedDate, Date: t} }

// Event is a discrete input fed into the machine.
type Event interface{ isEvent() }

// Edit carries the raw buffer an input widget settled on, with Paste set
// when the edit originated from a paste action.
type Edit struct {
	Text  string
	Paste bool
}

// Select carries a fully-formed date picked on the calendar overlay.
type Select struct {
	Date time.Time
}

// Reseed carries a new external initial value.
type Reseed struct {
	Seed Seed
}

func (Edit) isEvent()   {}
func (Select) isEvent() {}
func (Reseed) isEvent() {}

// Machine owns the configuration of one date input: segment format,
// timezone mode, and the clock used for "now" anchoring. It is stateless
// across events; all per-input state lives in State values.
type Machine struct {
	format Format
	loc    *time.Location
	clock  Clock
}

// NewMachine constructs a Machine. A nil location means local time; a nil
// clock means the real one.
func NewMachine(format Format, loc *time.Location, clock Clock) *Machine {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Machine{format: format, loc: loc, clock: clock}
}

// Format returns the configured segment order.
func (m *Machine) Format() Format { return m.format }

// Location returns the configured timezone mode.
func (m *Machine) Location() *time.Location { return m.loc }

// Canonical renders t in the canonical form emitted to the host.
func Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Resolve produces the initial State for a seed.
//
// No seed yields an empty, valid buffer. A string seed goes through the
// free-form parser; on failure the raw text stays in the buffer and the
// state is invalid. A structured seed is formatted directly; the zero value
// counts as unusable and only contributes the displayed attempt. In every
// failure path "now" becomes the internal-only reference anchor, without
// surfacing as a parsed date.
func (m *Machine) Resolve(seed Seed) State {
	now := m.clock.Now().In(m.loc)

	switch seed.Kind {
	case SeedText:
		if seed.Text == "" {
			return State{Valid: true, Ref: now}
		}
		if d, ok := m.parseFree(seed.Text, time.Time{}); ok {
			return State{Buffer: m.format.FormatDate(d), Date: d, HasDate: true, Valid: true, Ref: d}
		}
		return State{Buffer: seed.Text, Ref: now}

	case SeedDate:
		if seed.Date.IsZero() {
			return State{Buffer: m.format.FormatDate(seed.Date), Ref: now}
		}
		d := seed.Date.In(m.loc)
		return State{Buffer: m.format.FormatDate(d), Date: d, HasDate: true, Valid: true, Ref: d}

	default:
		return State{Valid: true, Ref: now}
	}
}

// Apply is the pure transition function: (state, event) -> (state,
// notification). At most one notification is produced per event.
func (m *Machine) Apply(prev State, ev Event) (State, Notification) {
	switch ev := ev.(type) {
	case Edit:
		next := m.applyEdit(prev, ev.Text, ev.Paste)
		return next, m.emit(prev, next, ev.Paste)

	case Select:
		d := ev.Date.In(m.loc)
		if !prev.Ref.IsZero() && d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 {
			h, min, sec := prev.Ref.Clock()
			d = time.Date(d.Year(), d.Month(), d.Day(), h, min, sec, 0, m.loc)
		}
		next := State{Buffer: m.format.FormatDate(d), Date: d, HasDate: true, Valid: true, Ref: d}
		return next, m.emit(prev, next, false)

	case Reseed:
		// A wholesale reset mirrors the external value; it is not an edit,
		// so nothing is echoed back to the host.
		return m.Resolve(ev.Seed), Notification{}

	default:
		return prev, Notification{}
	}
}

// applyEdit classifies a raw buffer against the previous state and returns
// the settled state. Cases follow a strict priority: paste, deletion to
// empty, end-deletion, addition, and finally a plain reparse, with the
// over-long free-form retry applied last.
func (m *Machine) applyEdit(prev State, raw string, paste bool) State {
	next := prev
	// "Invalid" for classification purposes means the buffer has left the
	// segment discipline entirely (mid-string edits, failed pastes, raw
	// over-length text), not merely that it is incomplete. A partially
	// typed date still gets the assist; free text does not.
	offTrack := !m.onTrack(prev.Buffer)

	switch {
	case paste:
		if d, ok := m.parseFree(raw, prev.Ref); ok {
			next = State{Buffer: m.format.FormatDate(d), Date: d, HasDate: true, Valid: true, Ref: d}
		} else {
			next.Buffer = raw
			next.markInvalid()
		}

	case raw == "":
		// Deleting everything is not an error.
		next = State{Valid: true, Ref: prev.Ref}

	case len(raw) == len(prev.Buffer)-1 && lastByte(raw) != lastByte(prev.Buffer):
		// The trailing character was deleted. Deleting a separator also
		// takes the digit that ended up trailing with it.
		b := raw
		if lastByte(prev.Buffer) == config.SegmentSeparator && b != "" {
			b = b[:len(b)-1]
		}
		next.Buffer = b
		if len(b) <= config.MaxBufferLen {
			m.reparse(&next)
		} else {
			next.markInvalid()
		}

	case len(raw) > len(prev.Buffer):
		appended := len(raw) == len(prev.Buffer)+1 && raw[:len(raw)-1] == prev.Buffer
		switch {
		case len(prev.Buffer) >= config.MaxBufferLen:
			if !offTrack {
				// Full and valid so far: the extra character is dropped.
				return prev
			}
			// Once invalid the cap is lifted so the free-form retry below
			// can recover from continued typing.
			next.Buffer = raw
			next.markInvalid()
		case appended && !offTrack:
			next.Buffer = m.assistTyping(prev.Buffer, raw[len(raw)-1])
			m.reparse(&next)
		case appended:
			next.Buffer = raw
			m.reparse(&next)
		default:
			// Mid-string insertion: taken literally, no assist.
			next.Buffer = raw
			next.markInvalid()
		}

	default:
		next.Buffer = raw
		m.reparse(&next)
	}

	if len(next.Buffer) > config.FreeParseThreshold && !next.HasDate {
		// Escape hatch: typing past the fixed width re-enters generic
		// parsing so the user can still recover.
		if d, ok := m.parseFree(next.Buffer, prev.Ref); ok {
			next = State{Buffer: m.format.FormatDate(d), Date: d, HasDate: true, Valid: true, Ref: d}
		} else {
			next.markInvalid()
		}
	}
	return next
}

// reparse reruns the full-string parser over the state's buffer and updates
// the derived fields, persisting the reference date on success.
func (m *Machine) reparse(s *State) {
	if s.Buffer == "" {
		s.Date, s.HasDate, s.Valid = time.Time{}, false, true
		return
	}
	if d, ok := m.parseBuffer(s.Buffer, s.Ref); ok {
		s.Date, s.HasDate, s.Valid = d, true, true
		s.Ref = d
		return
	}
	s.markInvalid()
}

func (s *State) markInvalid() {
	s.Date, s.HasDate, s.Valid = time.Time{}, false, false
}

// emit produces the single post-settle notification. Nothing is emitted
// when the buffer did not change, except that a processed paste always
// reports its outcome.
func (m *Machine) emit(prev, next State, paste bool) Notification {
	if next.Buffer == prev.Buffer && !paste {
		return Notification{}
	}
	if next.HasDate {
		v := Canonical(next.Date)
		if paste {
			return Notification{Kind: NotifyPaste, Value: v}
		}
		return Notification{Kind: NotifyChange, Value: v}
	}
	if next.Buffer == "" {
		return Notification{Kind: NotifyChange}
	}
	return Notification{Kind: NotifyChange, Value: config.InvalidValue}
}

func lastByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}
