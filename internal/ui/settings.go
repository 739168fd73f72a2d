package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/misteinb/fluent-controls-go/internal/config"
	"github.com/misteinb/fluent-controls-go/internal/dateinput"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval
// during save.
type settingsWidgets struct {
	langSelect     *widget.Select
	formatSelect   *widget.Select
	tzSelect       *widget.Select
	showAboveCheck *widget.Check
	urlEntry       *widget.Entry
	userEntry      *widget.Entry
	passEntry      *widget.Entry
	entryPort      *PortEntry
}

// formatChoices are the selectable segment orders, in display order.
var formatChoices = []string{
	dateinput.MonthDayYear.String(),
	dateinput.DayMonthYear.String(),
	dateinput.YearMonthDay.String(),
}

// ShowSettingsWindow displays the configuration dialog.
func (app *PickerApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. General Section (Language, Format, Timezone, Port) ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.formatSelect = widget.NewSelect(formatChoices, nil)
	sw.formatSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefDateFormat, config.DefaultDateFormat))

	sw.tzSelect = widget.NewSelect([]string{config.TimezoneLocal, config.TimezoneFixed}, nil)
	sw.tzSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefTimezone, config.TimezoneLocal))

	// Port requires strict validation (range 1-65535); a bad value blocks
	// saving.
	sw.entryPort = NewPortEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemFormat := widget.NewFormItem(app.GetMsg(config.TKeyLblFormat), sw.formatSelect)
	itemFormat.HintText = app.GetMsg(config.TKeyHelpFormat)

	itemTz := widget.NewFormItem(app.GetMsg(config.TKeyLblTimezone), sw.tzSelect)
	itemTz.HintText = app.GetMsg(config.TKeyHelpTimezone)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	sw.showAboveCheck = widget.NewCheck("", nil)
	sw.showAboveCheck.SetChecked(app.Preferences.Bool(config.PrefShowAbove))
	itemAbove := widget.NewFormItem(app.GetMsg(config.TKeyLblShowAbove), sw.showAboveCheck)
	itemAbove.HintText = app.GetMsg(config.TKeyHelpShowAbove)

	generalForm := widget.NewForm(itemLang, itemFormat, itemTz, itemAbove, itemPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 2. Seed Source Section ---
	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefSeedURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefSeedUser))

	sw.passEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblSeedURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpSeedURL)
	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)

	seedForm := widget.NewForm(itemURL, itemUser, itemPass)
	seedCard := widget.NewCard(app.GetMsg(config.TKeyLblSeed), "", seedForm)

	// --- Actions ---
	saveAction := func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		seedCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// saveSettings persists the data and rebuilds the entry's machine.
func (app *PickerApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences",
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyFormat, sw.formatSelect.Selected)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefDateFormat, sw.formatSelect.Selected)
	app.Preferences.SetString(config.PrefTimezone, sw.tzSelect.Selected)
	app.Preferences.SetBool(config.PrefShowAbove, sw.showAboveCheck.Checked)
	app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Port())
	app.Preferences.SetString(config.PrefSeedURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefSeedUser, sw.userEntry.Text)

	// Save password to keyring only if provided
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring", config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.applySettings()
	w.Close()
}
