// Package ui hosts the Fyne front end of the date picker demo: the
// assisted entry widget, the calendar overlay, the picks table, and the
// settings window binding everything to preferences.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/misteinb/fluent-controls-go/internal/calendar"
	"github.com/misteinb/fluent-controls-go/internal/config"
	"github.com/misteinb/fluent-controls-go/internal/dateinput"
	"github.com/misteinb/fluent-controls-go/internal/server"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/zalando/go-keyring"
)

// PickerApp encapsulates the UI state, preferences, and background services.
type PickerApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server   *server.FeedServer
	Fetcher  calendar.SeedFetcher
	Exporter *calendar.Exporter
	Clock    dateinput.Clock // Injected clock for testability

	SupportedLanguages []string

	// PickColumns configures the picks table; empty means the default
	// three-column layout.
	PickColumns []PickColumn

	entry   *DateEntry
	overlay *CalendarOverlay

	lastChangeLabel *widget.Label
	lastPasteLabel  *widget.Label

	// Picks State
	PicksMut       sync.RWMutex
	Picks          []calendar.Pick
	picksWindow    fyne.Window
	settingsWindow fyne.Window
}

// NewPickerApp constructs the application and wires dependencies.
func NewPickerApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher calendar.SeedFetcher) *PickerApp {
	return &PickerApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Exporter:           calendar.NewExporter(),
		Clock:              dateinput.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		Picks:              make([]calendar.Pick, 0),
	}
}

// Run launches the feed server and the main UI loop.
func (app *PickerApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.buildMainWindow()
	app.App.Run()
}

// newMachine assembles a date input machine from the current preferences.
func (app *PickerApp) newMachine() *dateinput.Machine {
	format := dateinput.ParseFormat(
		app.Preferences.StringWithFallback(config.PrefDateFormat, config.DefaultDateFormat))

	loc := time.Local
	if app.Preferences.String(config.PrefTimezone) == config.TimezoneFixed {
		loc = time.UTC
	}

	return dateinput.NewMachine(format, loc, app.Clock)
}

// buildMainWindow assembles the demo window around a single date entry.
func (app *PickerApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	app.entry = NewDateEntry(app.newMachine(), dateinput.Seed{})
	app.entry.OnDateChange = func(value string) { app.recordPick(config.SourceChange, value) }
	app.entry.OnDatePaste = func(value string) { app.recordPick(config.SourcePaste, value) }

	// Error styling follows the machine's validity, not a syntax regex.
	app.entry.Validator = func(string) error {
		if st := app.entry.State(); !st.Valid && st.Buffer != "" {
			return errors.New(app.GetMsg(config.TKeyErrBadDate))
		}
		return nil
	}

	app.overlay = NewCalendarOverlay(w.Canvas(), app.entry, app.Clock)
	app.overlay.ShowAbove = app.Preferences.Bool(config.PrefShowAbove)

	// Enter confirms the current value and dismisses the overlay.
	app.entry.OnSubmitted = func(string) { app.overlay.HandleTap(nil) }

	calendarBtn := widget.NewButtonWithIcon("", theme.MenuDropDownIcon(), func() {
		app.overlay.Toggle()
	})

	app.lastChangeLabel = widget.NewLabel(app.GetMsg(config.TKeyLblNone))
	app.lastPasteLabel = widget.NewLabel(app.GetMsg(config.TKeyLblNone))

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblDate),
			container.NewBorder(nil, nil, nil, calendarBtn, app.entry)),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLastChange), app.lastChangeLabel),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLastPaste), app.lastPasteLabel),
	)

	btnExport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), app.exportLastPick)
	btnExport.Importance = widget.HighImportance
	btnPicks := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPicks), theme.ListIcon(), app.ShowPicksWindow)
	btnSeed := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImportSeed), theme.DownloadIcon(), app.importSeed)
	btnSettings := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	w.SetContent(container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnExport, btnPicks),
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnSeed, btnSettings),
	)))

	w.Resize(fyne.NewSize(config.MainWinWidth, config.MainWinHeight))
	w.SetMaster()
	w.Show()
}

// recordPick mirrors a confirmed value in the main window and appends it to
// the picks history.
func (app *PickerApp) recordPick(source, value string) {
	label := app.lastChangeLabel
	if source == config.SourcePaste {
		label = app.lastPasteLabel
	}
	if value == "" {
		label.SetText(app.GetMsg(config.TKeyLblNone))
	} else {
		label.SetText(value)
	}

	st := app.entry.State()
	if !st.HasDate {
		return
	}

	app.PicksMut.Lock()
	app.Picks = append(app.Picks, calendar.Pick{
		Date:     st.Date,
		Value:    value,
		Source:   source,
		PickedAt: app.Clock.Now(),
	})
	app.PicksMut.Unlock()
}

// exportLastPick renders the most recent pick as an iCalendar document and
// publishes it on the feed server.
func (app *PickerApp) exportLastPick() {
	app.PicksMut.RLock()
	var last *calendar.Pick
	if n := len(app.Picks); n > 0 {
		p := app.Picks[n-1]
		last = &p
	}
	app.PicksMut.RUnlock()

	if last == nil {
		return
	}

	summary := app.GetMsg(config.TKeyEvtSummary)
	if summary == config.TKeyEvtSummary {
		summary = ""
	}

	data, err := app.Exporter.Export(*last, summary)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	app.Server.Publish(data)
	slog.Info(config.MsgPickExported,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyValue, last.Value)

	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifExported)))
}

// importSeed fetches the configured vCard source in the background and
// reseeds the entry with its first birthday.
func (app *PickerApp) importSeed() {
	url := app.Preferences.String(config.PrefSeedURL)
	if url == "" {
		slog.Warn(config.ErrSeedURLEmpty, config.LogKeyComponent, config.CompUI)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSeedFail)))
		return
	}

	user := app.Preferences.String(config.PrefSeedUser)
	pass := ""
	if user != "" {
		if p, err := keyring.Get(config.KeyringService, user); err == nil {
			pass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, user,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	go func() {
		entry, err := app.fetchSeed(url, user, pass)
		fyne.Do(func() {
			if err != nil {
				slog.Error(config.ErrVCardParse,
					config.LogKeyComponent, config.CompUI,
					config.LogKeyError, err)
				app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSeedFail)))
				return
			}
			slog.Info(config.MsgSeedImported,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyDate, entry.Date.Format(config.DateFormatDisplay))
			app.entry.Reseed(dateinput.DateSeed(entry.Date))
		})
	}()
}

// fetchSeed runs the network and parse pipeline off the UI goroutine.
func (app *PickerApp) fetchSeed(url, user, pass string) (calendar.SeedEntry, error) {
	if app.Fetcher == nil {
		return calendar.SeedEntry{}, fmt.Errorf(config.ErrFetcherMissing)
	}

	rc, err := app.Fetcher.Fetch(app.Ctx, url, user, pass)
	if err != nil {
		return calendar.SeedEntry{}, err
	}
	defer func() { _ = rc.Close() }()

	return calendar.FirstSeed(app.Ctx, rc)
}

// applySettings rebuilds the entry's machine after preference changes and
// refreshes localized labels.
func (app *PickerApp) applySettings() {
	app.UpdateLocalizer()
	if app.entry != nil {
		app.entry.Reconfigure(app.newMachine())
	}
	if app.overlay != nil {
		app.overlay.ShowAbove = app.Preferences.Bool(config.PrefShowAbove)
	}
}
