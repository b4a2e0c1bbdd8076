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

// UserAgent identifies the HTTP client.
var UserAgent = "PolyCal/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "PolyCal"
	AppID             = "com.github.ldelacroix.polycal"
	KeyringService    = "com.github.ldelacroix.polycal"
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
	FlagVersion     = "version"
	FlagDebug       = "debug"
	FlagDate        = "date"
	FlagFrom        = "from"
	FlagTo          = "to"
	FlagPattern     = "pattern"
	FlagPeriod      = "period"
	FlagLang        = "lang"
	FlagServe       = "serve"
	FlagPort        = "port"
	FlagVCF         = "vcf"
	FlagWebURL      = "web-url"
	FlagWebUser     = "web-user"
	FlagListKinds   = "list"
	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescDate    = "Date to convert, ISO format (YYYY-MM-DD); defaults to today"
	FlagDescFrom    = "Source calendar of -date (default gregorian)"
	FlagDescTo      = "Target calendar for conversion"
	FlagDescPattern = "Format pattern for the converted date (e.g. \"DD MMMM YYYY ERA\")"
	FlagDescPeriod  = "Period granularity to resolve instead of a single date (day|week|month|year|decade)"
	FlagDescLang    = "Interface language (en, fr)"
	FlagDescServe   = "Run the local calendar feed server instead of a one-shot conversion"
	FlagDescPort    = "TCP port for the feed server"
	FlagDescVCF     = "Path to a local .vcf file used as the birthday feed source"
	FlagDescWebURL  = "CardDAV/WebDAV URL used as the birthday feed source"
	FlagDescWebUser = "HTTP Basic Auth username for -web-url (password read from the system keyring)"
	FlagDescList    = "List the supported calendar systems and exit"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
	DefaultPort     = "18080"
	DefaultLanguage = "en"
	DefaultPattern  = "DD MMMM YYYY ERA"
	DefaultCalendar = "gregorian"
)

// SupportedLanguages defines the list of available interface languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//PolyCal//Feed//EN"
	ICalCalName   = "Birthdays (PolyCal)"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "polycal"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropAction      = "ACTION"
	PropTrigger     = "TRIGGER"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields and CLI input
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// DefaultLeapYear is the fallback year for truncated vCard dates (--02-29).
	DefaultLeapYear = 2000

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDSalt         = "polycal-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
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
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteConvert        = "/convert"
	AddrSeparator       = ":"

	// Query parameters of the /convert endpoint
	QueryParamDate    = "date"
	QueryParamTo      = "to"
	QueryParamPattern = "pattern"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "invalid date for calendar"
	ErrConverterMissing = "no converter registered for calendar"
	ErrNonConvergence   = "year search did not converge"
	ErrUnknownKind      = "unknown calendar kind"
	ErrUnknownPeriod    = "unknown period granularity"
	ErrBadISODate       = "date must be in YYYY-MM-DD form"
	ErrTimeOutOfRange   = "date is outside the range representable as a host time"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrRegistryMissing  = "internal error: calendar registry is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrKeyringRead      = "failed to read password from system keyring"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgBadDate      = "Query parameter 'date' must be YYYY-MM-DD"
	HTTPMsgBadKind      = "Query parameter 'to' must name a supported calendar"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyEvtSummary      = "event_summary"       // Requires Name, Date
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Date, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name, Date
	TKeyPeriodDay       = "period_day"
	TKeyPeriodWeek      = "period_week"
	TKeyPeriodMonth     = "period_month"
	TKeyPeriodYear      = "period_year"
	TKeyPeriodDecade    = "period_decade"
	TKeyRangeLabel      = "range_label" // Requires Period, Start, End
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary = "Birthday: %s (%s)"
	FallbackName    = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgSyncStarted   = "Feed generation started..."
	MsgGenSuccess    = "Feed generation successful"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgBdayToday     = "Birthday found today"
	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgCtxCancel     = "Context cancelled, shutting down"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgFallbackDate  = "Returning fallback date after non-convergence"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
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
	LogKeyMode      = "mode"
	LogKeyCalendar  = "calendar"
	LogKeyTarget    = "target"
	LogKeyJDN       = "jdn"
	LogKeyYear      = "year"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyCount     = "count"

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
	CompCalendar = "calendar"
	CompRange    = "timerange"
	CompFeed     = "feed"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
)
