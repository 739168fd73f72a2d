package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/misteinb/fluent-controls-go/internal/dateinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOverlay(t *testing.T) (*CalendarOverlay, *DateEntry, fyne.Window) {
	t.Helper()
	a := test.NewApp()
	w := a.NewWindow("overlay")

	clock := MockClock{CurrentTime: time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)}
	machine := dateinput.NewMachine(dateinput.MonthDayYear, time.UTC, clock)
	e := NewDateEntry(machine, dateinput.Seed{})

	w.SetContent(container.NewVBox(e))
	w.Resize(fyne.NewSize(400, 400))

	o := NewCalendarOverlay(w.Canvas(), e, clock)
	return o, e, w
}

// TestOverlay_FocusShows verifies focusing the entry shows the overlay and
// focusing elsewhere dismisses it.
func TestOverlay_FocusShows(t *testing.T) {
	o, e, _ := newTestOverlay(t)

	assert.False(t, o.Visible())

	o.HandleFocus(e)
	assert.True(t, o.Visible())

	other := widget.NewEntry()
	o.HandleFocus(other)
	assert.False(t, o.Visible())
}

// TestOverlay_TapInsideStaysOpen verifies taps on overlay content (month
// navigation, day buttons) do not dismiss it.
func TestOverlay_TapInsideStaysOpen(t *testing.T) {
	o, e, _ := newTestOverlay(t)

	o.HandleFocus(e)
	require.True(t, o.Visible())

	// Any object registered in the overlay's node graph is inside.
	require.NotEmpty(t, o.grid.Objects)
	o.HandleTap(o.grid.Objects[0])
	assert.True(t, o.Visible())

	o.HandleTap(e)
	assert.True(t, o.Visible(), "Taps on the input never dismiss")
}

// TestOverlay_TapOutsideDismisses verifies unknown targets count as outside.
func TestOverlay_TapOutsideDismisses(t *testing.T) {
	o, e, _ := newTestOverlay(t)

	o.HandleFocus(e)
	require.True(t, o.Visible())

	o.HandleTap(widget.NewLabel("elsewhere"))
	assert.False(t, o.Visible())
}

// TestOverlay_DayPickFeedsEntry verifies tapping a day button selects that
// date in the entry and closes the overlay.
func TestOverlay_DayPickFeedsEntry(t *testing.T) {
	o, e, _ := newTestOverlay(t)

	o.HandleFocus(e)
	require.True(t, o.Visible())

	// June 2024 starts on a Saturday: 6 leading blanks, then day buttons.
	var day3 *widget.Button
	for _, obj := range o.grid.Objects {
		if btn, ok := obj.(*widget.Button); ok && btn.Text == "3" {
			day3 = btn
			break
		}
	}
	require.NotNil(t, day3)

	test.Tap(day3)

	assert.Equal(t, "06/03/2024", e.Text)
	assert.True(t, e.State().HasDate)
	assert.False(t, o.Visible(), "Picking a day closes the overlay")
}

// TestOverlay_MonthNavigation verifies paging changes the displayed month
// without touching the entry.
func TestOverlay_MonthNavigation(t *testing.T) {
	o, e, _ := newTestOverlay(t)

	initial := o.month
	o.setMonth(o.month.AddDate(0, 1, 0))
	assert.Equal(t, initial.AddDate(0, 1, 0), o.month)
	assert.Equal(t, "July 2024", o.monthLabel.Text)
	assert.Equal(t, "", e.Text)
}

// TestOverlay_ShowAbove verifies the placement flag flips the popup to the
// other side of the entry.
func TestOverlay_ShowAbove(t *testing.T) {
	o, _, _ := newTestOverlay(t)
	anchor := fyne.NewPos(50, 200)

	below := o.popupAnchor(anchor)
	assert.Equal(t, anchor.Y+o.entry.Size().Height, below.Y)

	o.ShowAbove = true
	above := o.popupAnchor(anchor)
	assert.Equal(t, anchor.Y-o.popup.MinSize().Height, above.Y)
	assert.Less(t, above.Y, below.Y)
}

// TestOverlay_WalkBound verifies containment gives up beyond the bounded
// ancestor depth, treating deeply nested targets as outside.
func TestOverlay_WalkBound(t *testing.T) {
	o, e, _ := newTestOverlay(t)

	o.HandleFocus(e)
	require.True(t, o.Visible())

	// Build a synthetic chain of registered nodes hanging off the root.
	parent := o.rootNode
	var leaf *objectNode
	for i := 0; i < 8; i++ {
		obj := widget.NewLabel("nested")
		leaf = o.register(obj, parent)
		parent = leaf
	}

	o.HandleTap(leaf.obj)
	assert.False(t, o.Visible(), "Targets past the ancestor walk bound count as outside")
}
