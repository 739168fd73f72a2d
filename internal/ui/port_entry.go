package ui

import (
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/misteinb/fluent-controls-go/internal/config"
)

// PortEntry is an Entry restricted to digits, used for the feed server port.
// Range validation is attached by the settings window so the error text can
// be localized.
type PortEntry struct {
	widget.Entry
}

// NewPortEntry creates a new instance of PortEntry.
func NewPortEntry() *PortEntry {
	entry := &PortEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune filters input to digits. Pasted text bypasses this and is
// caught by the validator instead.
func (e *PortEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests a numeric keypad on mobile devices.
func (e *PortEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Port returns the entered port number, or the default when the text does
// not parse to a usable port.
func (e *PortEntry) Port() string {
	p, err := strconv.Atoi(e.Text)
	if err != nil || p < config.MinPort || p > config.MaxPort {
		return config.DefaultPort
	}
	return e.Text
}
