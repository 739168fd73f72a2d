package ui

import (
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/misteinb/fluent-controls-go/internal/config"
	"github.com/misteinb/fluent-controls-go/internal/dateinput"
)

// objectNode adapts a canvas object into the tracker's node graph. Fyne
// does not expose parent pointers, so the overlay registers them explicitly
// while assembling its widget tree.
type objectNode struct {
	obj    fyne.CanvasObject
	parent *objectNode
}

func (n *objectNode) Parent() dateinput.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// CalendarOverlay is the month-grid popup attached to a DateEntry. Its
// visibility is decided by a DropdownTracker fed with focus and window-level
// tap events.
type CalendarOverlay struct {
	entry   *DateEntry
	popup   *widget.PopUp
	tracker *dateinput.DropdownTracker
	clock   dateinput.Clock

	// ShowAbove places the popup above the entry instead of below it,
	// for hosts anchoring the entry near the bottom of the window.
	ShowAbove bool

	month      time.Time // first day of the displayed month
	monthLabel *widget.Label
	grid       *fyne.Container

	// nodes maps canvas objects back to their tracker nodes.
	nodes    map[fyne.CanvasObject]*objectNode
	rootNode *objectNode
}

// NewCalendarOverlay builds the overlay for the given entry. Picking a day
// feeds a Select event into the entry's machine.
func NewCalendarOverlay(canvas fyne.Canvas, entry *DateEntry, clock dateinput.Clock) *CalendarOverlay {
	if clock == nil {
		clock = dateinput.RealClock{}
	}

	o := &CalendarOverlay{
		entry: entry,
		clock: clock,
		nodes: map[fyne.CanvasObject]*objectNode{},
	}

	o.monthLabel = widget.NewLabel("")
	o.monthLabel.Alignment = fyne.TextAlignCenter

	prevBtn := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		o.setMonth(o.month.AddDate(0, -1, 0))
	})
	nextBtn := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		o.setMonth(o.month.AddDate(0, 1, 0))
	})

	o.grid = container.NewGridWithColumns(config.CalendarGridColumns)

	header := container.NewBorder(nil, nil, prevBtn, nextBtn, o.monthLabel)
	content := container.NewVBox(header, o.grid)
	o.popup = widget.NewPopUp(content, canvas)

	// Node graph for containment checks: every interactive object inside
	// the overlay resolves to a node whose ancestor chain reaches the root.
	o.rootNode = o.register(content, nil)
	headerNode := o.register(header, o.rootNode)
	o.register(prevBtn, headerNode)
	o.register(nextBtn, headerNode)
	o.register(o.monthLabel, headerNode)
	o.register(o.grid, o.rootNode)
	o.register(entry, nil)

	o.tracker = dateinput.NewDropdownTracker(o.nodes[entry], o.rootNode)

	start := entry.State().Ref
	if start.IsZero() {
		start = clock.Now()
	}
	o.setMonth(time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location()))

	return o
}

func (o *CalendarOverlay) register(obj fyne.CanvasObject, parent *objectNode) *objectNode {
	n := &objectNode{obj: obj, parent: parent}
	o.nodes[obj] = n
	return n
}

// nodeFor resolves a canvas object to its tracker node, or nil for objects
// outside the tracked tree.
func (o *CalendarOverlay) nodeFor(obj fyne.CanvasObject) dateinput.Node {
	if n, ok := o.nodes[obj]; ok {
		return n
	}
	return nil
}

// Visible reports whether the overlay is currently shown.
func (o *CalendarOverlay) Visible() bool {
	return o.tracker.Visible()
}

// HandleFocus routes a focus-in event on the given object to the tracker.
func (o *CalendarOverlay) HandleFocus(obj fyne.CanvasObject) {
	o.tracker.HandleFocus(o.nodeFor(obj))
	o.sync()
}

// HandleTap routes a window-level tap to the tracker. Taps on objects the
// overlay does not know about count as outside and dismiss it.
func (o *CalendarOverlay) HandleTap(obj fyne.CanvasObject) {
	o.tracker.HandleWindowEvent(o.nodeFor(obj))
	o.sync()
}

// Toggle flips visibility from the explicit calendar button.
func (o *CalendarOverlay) Toggle() {
	if o.tracker.Visible() {
		o.HandleTap(nil)
		return
	}
	o.HandleFocus(o.entry)
}

// sync reconciles the popup with the tracker's decision.
func (o *CalendarOverlay) sync() {
	if o.tracker.Visible() {
		if st := o.entry.State(); st.HasDate {
			o.setMonth(time.Date(st.Date.Year(), st.Date.Month(), 1, 0, 0, 0, 0, st.Date.Location()))
		}
		entryPos := fyne.CurrentApp().Driver().AbsolutePositionForObject(o.entry)
		o.popup.ShowAtPosition(o.popupAnchor(entryPos))
		return
	}
	o.popup.Hide()
}

// popupAnchor returns the popup's top-left corner for the given entry
// position, honoring the placement flag.
func (o *CalendarOverlay) popupAnchor(entryPos fyne.Position) fyne.Position {
	if o.ShowAbove {
		return entryPos.Subtract(fyne.NewPos(0, o.popup.MinSize().Height))
	}
	return entryPos.Add(fyne.NewPos(0, o.entry.Size().Height))
}

// setMonth rebuilds the day grid for the month containing t.
func (o *CalendarOverlay) setMonth(first time.Time) {
	o.month = first
	o.monthLabel.SetText(first.Format(config.CalendarMonthFormat))

	// Drop last month's day buttons from the node graph before rebuilding.
	for _, obj := range o.grid.Objects {
		delete(o.nodes, obj)
	}
	o.grid.RemoveAll()

	gridNode := o.nodes[o.grid]

	// Leading blanks align day 1 with its weekday column.
	for i := 0; i < int(first.Weekday()); i++ {
		spacer := widget.NewLabel(config.BlankCell)
		o.register(spacer, gridNode)
		o.grid.Add(spacer)
	}

	daysInMonth := first.AddDate(0, 1, -1).Day()
	for day := 1; day <= daysInMonth; day++ {
		picked := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
		btn := widget.NewButton(picked.Format(config.CalendarDayFormat), func() {
			slog.Debug(config.MsgDaySelected,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyDate, picked.Format(config.DateFormatDisplay))
			o.entry.SelectDate(picked)
			o.HandleTap(nil)
		})
		o.register(btn, gridNode)
		o.grid.Add(btn)
	}
	o.grid.Refresh()
}
