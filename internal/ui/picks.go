package ui

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/misteinb/fluent-controls-go/internal/calendar"
	"github.com/misteinb/fluent-controls-go/internal/config"
)

// PickColumn maps a pick to the text of one table column. The host owns the
// mapper; a nil or misbehaving mapper is reported once and the cell renders
// blank instead of crashing the table.
type PickColumn struct {
	TitleKey string
	Map      func(calendar.Pick) string
}

// DefaultPickColumns returns the standard three-column layout.
func DefaultPickColumns() []PickColumn {
	return []PickColumn{
		{TitleKey: config.TKeyColPicked, Map: func(p calendar.Pick) string {
			return p.PickedAt.Format(config.TimeFormatDisplay)
		}},
		{TitleKey: config.TKeyColValue, Map: func(p calendar.Pick) string {
			return p.Value
		}},
		{TitleKey: config.TKeyColSource, Map: func(p calendar.Pick) string {
			return p.Source
		}},
	}
}

// cellText runs the mapper defensively. Diagnostics go to the injected
// logger; the table always gets something displayable back.
func cellText(log *slog.Logger, col PickColumn, rowID, colID int, pick calendar.Pick) string {
	if col.Map == nil {
		log.Error(config.ErrNilMapper, config.LogKeyColumn, colID)
		return config.BlankCell
	}
	value := col.Map(pick)
	if !utf8.ValidString(value) {
		log.Error(config.ErrBadMapperValue,
			config.LogKeyRow, rowID,
			config.LogKeyColumn, colID)
		log.Debug(config.MsgCellBlanked, config.LogKeyColumn, colID)
		return config.BlankCell
	}
	return value
}

// ShowPicksWindow displays every confirmed pick in a sortable table. It is a
// singleton: a second request focuses the existing window.
func (app *PickerApp) ShowPicksWindow() {
	if app.picksWindow != nil {
		app.picksWindow.RequestFocus()
		return
	}

	title := app.GetMsg(config.TKeyWinPicks)
	app.picksWindow = app.App.NewWindow(title)
	app.picksWindow.Resize(fyne.NewSize(config.PicksWinWidth, config.PicksWinHeight))

	// Local copy for sorting and display, so the table never races the
	// callbacks appending new picks.
	app.PicksMut.RLock()
	displayPicks := make([]calendar.Pick, len(app.Picks))
	copy(displayPicks, app.Picks)
	app.PicksMut.RUnlock()

	log := slog.With(config.LogKeyComponent, config.CompUI)
	log.Info(config.MsgOpenPicksWin, config.LogKeyCount, len(displayPicks))

	columns := app.PickColumns
	if len(columns) == 0 {
		columns = DefaultPickColumns()
	}

	currentSortCol := config.ColIDPicked
	sortAsc := true

	var refreshTable func()

	performSort := func() {
		sort.Slice(displayPicks, func(i, j int) bool {
			a, b := displayPicks[i], displayPicks[j]
			var less bool
			switch currentSortCol {
			case config.ColIDValue:
				less = strings.ToLower(a.Value) < strings.ToLower(b.Value)
			case config.ColIDSource:
				if a.Source == b.Source {
					less = a.PickedAt.Before(b.PickedAt)
				} else {
					less = a.Source < b.Source
				}
			default: // config.ColIDPicked
				less = a.PickedAt.Before(b.PickedAt)
			}

			if !sortAsc {
				return !less
			}
			return less
		})

		log.Debug(config.MsgPicksSorted,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}

	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(displayPicks), len(columns)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(displayPicks) || id.Col >= len(columns) {
				return
			}
			label.SetText(cellText(log, columns[id.Col], id.Row, id.Col, displayPicks[id.Row]))
		},
	)

	table.ShowHeaderRow = true

	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}

	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		if id.Col >= len(columns) {
			return
		}

		text := app.GetMsg(columns[id.Col].TitleKey)
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	for i := range columns {
		table.SetColumnWidth(i, config.ColWidthDefault)
	}

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	app.picksWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.picksWindow.SetOnClosed(func() {
		app.picksWindow = nil
	})

	app.picksWindow.Show()
}
