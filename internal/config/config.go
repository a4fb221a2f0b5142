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

// ServerHeader identifies the HTTP service in responses.
var ServerHeader = "Go-Misri/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Misri"
	AppID       = "com.github.tartampluch.go-misri"
	CommandName = "go-misri"
	EnvPrefix   = "MISRI"
	LogFileName = "app.log"
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
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdServe   = "serve"
	CmdConvert = "convert"
	CmdMonth   = "month"
	CmdICS     = "ics"
	CmdVersion = "version"

	FlagConfig = "config"
	FlagDebug  = "debug"
	FlagHost   = "host"
	FlagPort   = "port"
	FlagJSON   = "json"
	FlagArabic = "arabic"

	FlagDescConfig = "Path to a YAML configuration file"
	FlagDescDebug  = "Enable debug logging"
	FlagDescHost   = "Interface the HTTP server binds to"
	FlagDescPort   = "Port the HTTP server listens on"
	FlagDescJSON   = "Print the result as JSON"
	FlagDescArabic = "Use Arabic names and digits"

	CmdDescRoot    = "Misri (Fatemi) calendar converter and HTTP service"
	CmdDescServe   = "Start the HTTP API server"
	CmdDescConvert = "Convert a Gregorian date (YYYY-MM-DD, default today UTC) to the Misri calendar"
	CmdDescMonth   = "Print the grid of a Misri month (default: current month)"
	CmdDescICS     = "Write an iCalendar feed of a Misri month to stdout"
	CmdDescVersion = "Show application version and exit"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper) & Defaults
// -----------------------------------------------------------------------------

const (
	KeyServerHost         = "server.host"
	KeyServerPort         = "server.port"
	KeyServerReadTimeout  = "server.read_timeout"
	KeyServerWriteTimeout = "server.write_timeout"
	KeyServerIdleTimeout  = "server.idle_timeout"
	KeyShutdownTimeout    = "server.shutdown_timeout"
	KeyLogLevel           = "log.level"
	KeyLogFormat          = "log.format"
	KeyLogFile            = "log.file"
	KeyCORSOrigins        = "cors.allowed_origins"
	KeyRateLimitRPS       = "rate_limit.requests_per_second"
	KeyRateLimitBurst     = "rate_limit.burst"
	KeyRateLimitExpiry    = "rate_limit.expires_in"
	KeyMetricsEnabled     = "metrics.enabled"

	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultCORSOrigin      = "*"
	DefaultRateLimitRPS    = 20.0
	DefaultRateLimitBurst  = 40
	DefaultRateLimitExpiry = 3 * time.Minute

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// -----------------------------------------------------------------------------
// Calendar Constants
// -----------------------------------------------------------------------------

const (
	// DateLayout is the only accepted textual form of a Gregorian date.
	DateLayout = "2006-01-02"

	// MaxFeedYear bounds the Misri year accepted by the HTTP month endpoints.
	MaxFeedYear = 9999

	WeekColumns = 7
)

// -----------------------------------------------------------------------------
// Localization (embedded locale files)
// -----------------------------------------------------------------------------

const (
	LangEnglish  = "en"
	LangArabic   = "ar"
	LocalesDir   = "locales"
	LocalePrefix = "active."
	LocaleSuffix = ".json"
	TKeyMonthFmt = "month_%d"
	TKeyDayFmt   = "weekday_%d"
	TKeyCalName  = "calendar_name"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Misri//Engine//EN"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gomisri"

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

	DefaultICalRefresh = 24 * time.Hour

	FormatUID = "%s@%s"
)

// -----------------------------------------------------------------------------
// Network, Routes & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	AddrSeparator      = ":"

	RouteAPI      = "/api"
	RouteHijri    = "/hijri"
	RouteCalendar = "/calendar"
	RouteICS      = "/calendar.ics"
	RouteHealth   = "/health"
	RouteMetrics  = "/metrics"

	QueryDate  = "date"
	QueryYear  = "year"
	QueryMonth = "month"

	CORSMaxAge = 86400
)

// CORSAllowMethods and CORSAllowHeaders are sent on every API response.
var (
	CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"}
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderServer       = "Server"

	MimeTextCalendar = "text/calendar; charset=utf-8"
	CacheControlNone = "no-store"
	CacheControlFeed = "public, max-age=3600"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "Invalid date format. Expected YYYY-MM-DD"
	ErrInvalidMonth     = "Invalid month. Expected year >= 1 and month between 1 and 12"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrTimeout          = "server timeouts must be positive"
	ErrRateLimit        = "rate limit values must not be negative"
	ErrLogFormat        = "unsupported log format"
	ErrLogLevel         = "invalid log level"
	ErrConfigRead       = "failed to read configuration file"
	ErrConfigDecode     = "failed to decode configuration"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTransMissing     = "missing translation"
	ErrMonthArgs        = "expected <year> <month>"
	ErrNotANumber       = "argument is not a number"
	ErrRateLimited      = "rate limit exceeded"
	ErrInternal         = "Internal Server Error"
	ErrIdentifierFailed = "failed to identify client"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting  = "Starting application"
	MsgAppStop      = "Application stopped gracefully"
	MsgServerListen = "HTTP server listening"
	MsgServerStop   = "Shutting down HTTP server..."
	MsgRequest      = "HTTP request"
	MsgRequestFail  = "HTTP request failed"
	MsgConverted    = "Date converted"
	MsgFeedBuilt    = "Calendar feed generated"
	MsgLocaleSkip   = "Skipping non-locale file"
	MsgLocaleLoaded = "Locale loaded successfully"
	MsgConfigLoaded = "Configuration loaded"
	MsgNoDotEnv     = "No .env file loaded"
	MsgLogWarning   = "Warning: %s at %s: %v\n"
	MsgHealthOK     = "ok"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyAddr      = "addr"
	LogKeyMethod    = "method"
	LogKeyURI       = "uri"
	LogKeyStatus    = "status"
	LogKeyLatency   = "latency_ms"
	LogKeyRemoteIP  = "remote_ip"
	LogKeyRequestID = "request_id"
	LogKeyInput     = "input"
	LogKeyMisri     = "misri"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeySizeBytes = "size_bytes"
	LogKeyEvents    = "events"

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
	CompMain   = "main"
	CompConfig = "config"
	CompServer = "server"
	CompFeed   = "feed"
	CompI18n   = "i18n"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricNamespace       = "misri"
	MetricRequestsTotal   = "http_requests_total"
	MetricRequestDuration = "http_request_duration_seconds"
	MetricConversions     = "conversions_total"
	MetricLabelMethod     = "method"
	MetricLabelRoute      = "route"
	MetricLabelStatus     = "status"
	MetricLabelKind       = "kind"

	ConversionDate  = "date"
	ConversionMonth = "month"
	ConversionFeed  = "feed"
)
