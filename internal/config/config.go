package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote seed retrieval.
var UserAgent = "FluentControls/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Fluent Controls Demo"
	AppID             = "com.github.misteinb.fluent-controls-go"
	KeyringService    = "com.github.misteinb.fluent-controls-go"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Date Input: Formats & Limits
// -----------------------------------------------------------------------------

const (
	// SegmentSeparator divides the three numeric segments of the buffer.
	SegmentSeparator = '/'

	// MaxBufferLen is the length of a fully typed date (two 2-digit
	// segments, one 4-digit segment, two separators).
	MaxBufferLen = 10

	// FreeParseThreshold is the buffer length past which segment logic is
	// abandoned and the free-form parser gets another attempt.
	FreeParseThreshold = 11

	// YearDigits caps the year segment; it receives no typing assist.
	YearDigits = 4

	// SegmentDigits is the width of the month and day segments.
	SegmentDigits = 2

	// InvalidValue is the literal sentinel delivered on the change channel
	// when the buffer is non-empty and does not denote a calendar date.
	InvalidValue = "invalid"

	// MaxAncestorWalk bounds the upward walk when deciding whether an
	// event target lives inside the tracked overlay container.
	MaxAncestorWalk = 6
)

// Display layouts, one per date format.
const (
	LayoutMDY = "01/02/2006"
	LayoutDMY = "02/01/2006"
	LayoutYMD = "2006/01/02"
)

// Free-form parse layouts, tried in order. Full dates only; truncated vCard
// forms are handled separately by the calendar package.
const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatLongMonth = "January 2, 2006"
	DateFormatShortMon  = "Jan 2, 2006"
	DateFormatLongEU    = "2 January 2006"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWinWidth        = 420
	MainWinHeight       = 280
	SettingsWindowWidth = 600

	// Pick source channels, mirrored in the picks table.
	SourceChange = "change"
	SourcePaste  = "paste"

	// Preference Keys
	PrefSeedURL    = "seed_url"
	PrefSeedUser   = "seed_username"
	PrefLanguage   = "language"
	PrefDateFormat = "date_format"
	PrefTimezone   = "timezone_mode"
	PrefServerPort = "server_port"
	PrefShowAbove  = "overlay_above"
	PrefLastRun    = "last_run_version"
)

// Timezone mode preference values.
const (
	TimezoneLocal = "local"
	TimezoneFixed = "fixed"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Picks Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	PicksWinWidth  = 520
	PicksWinHeight = 400

	// Table Layout
	ColIDPicked     = 0
	ColIDValue      = 1
	ColIDSource     = 2
	PicksColumns    = 3
	ColWidthDefault = 160

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	TimeFormatDisplay = "2006-01-02 15:04"

	// Calendar Overlay Layout
	CalendarGridColumns = 7
	CalendarMonthFormat = "January 2006"
	CalendarDayFormat   = "2"
	TablePlaceholder    = "Cell Content"
	BlankCell           = ""

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinPicks      = "win_picks_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyLblDate       = "lbl_date"
	TKeyLblLastChange = "lbl_last_change"
	TKeyLblLastPaste  = "lbl_last_paste"
	TKeyLblNone       = "lbl_none"
	TKeyBtnExport     = "btn_export"
	TKeyBtnPicks      = "btn_picks"
	TKeyBtnSettings   = "btn_settings"
	TKeyBtnImportSeed = "btn_import_seed"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblFormat     = "lbl_date_format"
	TKeyHelpFormat    = "help_date_format"
	TKeyLblTimezone   = "lbl_timezone"
	TKeyHelpTimezone  = "help_timezone"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblShowAbove  = "lbl_show_above"
	TKeyHelpShowAbove = "help_show_above"
	TKeyLblSeedURL    = "lbl_seed_url"
	TKeyHelpSeedURL   = "help_seed_url"
	TKeyLblUser       = "lbl_user"
	TKeyLblPass       = "lbl_pass"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblSeed       = "lbl_seed_source"
	TKeyNotifExported = "notif_exported"
	TKeyNotifSeedFail = "notif_seed_failed"
	TKeyEvtSummary    = "event_summary"

	// Column Headers
	TKeyColPicked = "col_picked"
	TKeyColValue  = "col_value"
	TKeyColSource = "col_source"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrBadDate   = "err_bad_date"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort       = "18081"
	DefaultLanguage   = "en"
	DefaultDateFormat = "MDY"
	DefaultLeapYear   = 2000 // Leap year fallback for truncated dates like --02-29
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Fluent Controls//Date Picker//EN"
	ICalCalName   = "Picked Dates"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "fluentcontrols"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"

	// UID Generation
	UIDSalt         = "fluent-controls-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB; a vCard seed file is small
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
	MinPort             = 1
	MaxPort             = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrSeedURLEmpty   = "configuration error: seed URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrNoBirthday     = "vCard stream contains no usable BDAY value"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLocNotInit     = "localizer not initialized"
	ErrNilMapper      = "column mapper is nil"
	ErrBadMapperValue = "column mapper returned a non-displayable value"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Could not start the feed server on port %s."
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgNoPick       = "No date has been exported yet."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary = "Picked date: %s"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgServerListen  = "HTTP feed server listening"
	MsgServerStop    = "Shutting down HTTP feed server..."
	MsgFeedUpdated   = "Pick feed updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgPickExported  = "Pick exported to feed"
	MsgSeedImported  = "Seed imported from vCard"
	MsgSeedSkipped   = "Skipping malformed vCard"
	MsgDateChanged   = "Date value changed"
	MsgDatePasted    = "Date value pasted"
	MsgDaySelected   = "Calendar day selected"
	MsgOpenPicksWin  = "Opening picks window"
	MsgPicksSorted   = "Picks sorted"
	MsgCellBlanked   = "Rendering blank cell after mapper diagnostic"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyValue     = "value"
	LogKeyDate      = "date"
	LogKeyBuffer    = "buffer"
	LogKeyFormat    = "format"
	LogKeyColumn    = "column"
	LogKeyRow       = "row"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompInput    = "dateinput"
	CompCalendar = "calendar"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
