package ui

import (
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/misteinb/fluent-controls-go/internal/config"
	"github.com/misteinb/fluent-controls-go/internal/dateinput"
)

// DateEntry is a custom Entry widget backed by a date input machine. The
// widget only relays text edits and displays the settled buffer; typing
// assist, parsing, and notification routing all live in the machine.
type DateEntry struct {
	widget.Entry

	// OnDateChange receives the canonical value after a confirmed change,
	// the "invalid" sentinel, or an empty string for a cleared buffer.
	OnDateChange func(value string)

	// OnDatePaste receives the canonical value when a paste settles on a
	// fully valid date.
	OnDatePaste func(value string)

	machine *dateinput.Machine
	state   dateinput.State

	// updating suppresses the OnChanged round-trip while the widget text
	// is being synchronized with a settled machine state.
	updating  bool
	pasteNext bool
}

// NewDateEntry creates a DateEntry seeded with the given initial value.
func NewDateEntry(machine *dateinput.Machine, seed dateinput.Seed) *DateEntry {
	e := &DateEntry{machine: machine}
	e.ExtendBaseWidget(e)
	e.state = machine.Resolve(seed)
	e.syncText(e.state.Buffer)
	e.OnChanged = e.handleChanged
	return e
}

// State exposes the current machine snapshot.
func (e *DateEntry) State() dateinput.State {
	return e.state
}

// TypedRune intercepts text input events.
// It admits digits and the segment separator; everything else is dropped.
// Arbitrary text can still arrive via paste, which the machine handles.
func (e *DateEntry) TypedRune(r rune) {
	if (r >= '0' && r <= '9') || r == config.SegmentSeparator {
		e.Entry.TypedRune(r)
	}
}

// TypedShortcut marks the next settled edit as a paste before letting the
// embedded Entry perform it.
func (e *DateEntry) TypedShortcut(s fyne.Shortcut) {
	if _, ok := s.(*fyne.ShortcutPaste); ok {
		e.pasteNext = true
	}
	e.Entry.TypedShortcut(s)
}

// Keyboard requests a numeric keypad on mobile devices.
func (e *DateEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// SelectDate feeds a calendar pick into the machine and displays the result.
func (e *DateEntry) SelectDate(t time.Time) {
	next, notif := e.machine.Apply(e.state, dateinput.Select{Date: t})
	e.state = next
	e.syncText(next.Buffer)
	e.dispatch(notif)
}

// Reseed resets the entry wholesale from a new external value.
func (e *DateEntry) Reseed(seed dateinput.Seed) {
	next, notif := e.machine.Apply(e.state, dateinput.Reseed{Seed: seed})
	e.state = next
	e.syncText(next.Buffer)
	e.dispatch(notif)
}

// Reconfigure swaps the machine (format or timezone change) while keeping
// the current value.
func (e *DateEntry) Reconfigure(machine *dateinput.Machine) {
	e.machine = machine
	if e.state.HasDate {
		e.Reseed(dateinput.DateSeed(e.state.Date))
	} else {
		e.Reseed(dateinput.TextSeed(e.state.Buffer))
	}
}

// handleChanged feeds every settled widget edit through the machine and
// writes the machine's buffer back when it differs (assist, revert, cap).
func (e *DateEntry) handleChanged(text string) {
	if e.updating {
		return
	}

	ev := dateinput.Edit{Text: text, Paste: e.pasteNext}
	e.pasteNext = false

	next, notif := e.machine.Apply(e.state, ev)
	e.state = next
	if next.Buffer != text {
		e.syncText(next.Buffer)
	}
	e.dispatch(notif)
}

// syncText updates the widget text without re-entering handleChanged.
func (e *DateEntry) syncText(text string) {
	e.updating = true
	e.SetText(text)
	e.CursorColumn = len(text)
	e.updating = false
}

func (e *DateEntry) dispatch(n dateinput.Notification) {
	switch n.Kind {
	case dateinput.NotifyChange:
		slog.Debug(config.MsgDateChanged,
			config.LogKeyComponent, config.CompInput,
			config.LogKeyBuffer, e.state.Buffer,
			config.LogKeyValue, n.Value)
		if e.OnDateChange != nil {
			e.OnDateChange(n.Value)
		}
	case dateinput.NotifyPaste:
		slog.Debug(config.MsgDatePasted,
			config.LogKeyComponent, config.CompInput,
			config.LogKeyBuffer, e.state.Buffer,
			config.LogKeyValue, n.Value)
		if e.OnDatePaste != nil {
			e.OnDatePaste(n.Value)
		}
	}
}
