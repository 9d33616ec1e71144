package common

import (
	"flag"
	"sync"
	"time"
)

var Version = "v0.1.0"
var SystemName = "Evidentia"
var ServerAddress = "http://localhost:3000"

// Command-line flags, applied before the config file is read.
var (
	Port           = flag.Int("port", 3000, "the listening port")
	PrintVersion   = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag  = flag.Bool("help", false, "print help and exit")
	LogDir         = flag.String("log-dir", "", "specify the log directory")
	UploadPathFlag = flag.String("upload-path", "", "override the blob storage root")
)

var (
	SessionSecret    = "random_string"
	JWTSecret        = "random_string"
	JWTRefreshSecret = "random_string"
	SQLitePath       = "data/evidentia.db"
)

// Blob store configuration. StoragePublicBase is the fixed base URL public
// locators are derived from; it must match where the web router serves
// the upload root.
var (
	UploadPath        = "upload"
	StoragePublicBase = "http://localhost:3000/files"
)

// Mail relay (contact form) configuration.
var (
	MailRelayEndpoint   = "https://api.emailjs.com/api/v1.0/email/send"
	MailRelayServiceID  = ""
	MailRelayTemplateID = ""
	MailRelayUserID     = ""
)

// Runtime options, persisted in the options table and loaded into the
// option map at startup. Guarded by OptionMapRWMutex.
var (
	OptionMapRWMutex    sync.RWMutex
	RegisterEnabled     = true
	PasswordLoginEnabled = true
	ContactRelayEnabled = true
)

const (
	RoleGuestUser  = 0
	RoleCommonUser = 1
	RoleAdminUser  = 10
	RoleRootUser   = 100
)

const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

var (
	JWTAccessTokenDuration  = 1 * time.Hour
	JWTRefreshTokenDuration = 7 * 24 * time.Hour
)

var ItemsPerPage = 10

// MaxUploadSize caps a single case-file upload (bytes).
var MaxUploadSize = int64(100 * 1024 * 1024)

var (
	GlobalApiRateLimitNum      = 180
	GlobalApiRateLimitDuration = 3 * time.Minute

	CriticalRateLimitNum      = 20
	CriticalRateLimitDuration = 20 * time.Minute

	GlobalWebRateLimitNum      = 300
	GlobalWebRateLimitDuration = 3 * time.Minute
)

var RateLimitKeyExpirationDuration = 20 * time.Minute
