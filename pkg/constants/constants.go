// Package constants provides shared constants for the collectors-hub application.
package constants

// Date layouts used throughout the application.
const (
	// DateKeyLayout is the canonical stored date format.
	DateKeyLayout = "2006-01-02"

	// MonthKeyLayout identifies a calendar month for projection and reporting.
	MonthKeyLayout = "2006-01"

	// DisplayDateLayout is the user-facing date format.
	DisplayDateLayout = "01/02/2006"
)

// Cadence constants
const (
	// NewAccountWindowDays is the age up to which an account is considered new
	// and gets the tighter follow-up interval.
	NewAccountWindowDays = 14

	// NewAccountIntervalDays is the required follow-up interval for new accounts.
	NewAccountIntervalDays = 1

	// EstablishedIntervalDays is the required follow-up interval once an
	// account is past the new-account window.
	EstablishedIntervalDays = 3

	// PublicRiskThresholdDays is the absolute untouched-days ceiling after
	// which an account is flagged regardless of its age-based interval.
	PublicRiskThresholdDays = 7

	// DueSoonWindowDays is the look-ahead window for "due this week".
	DueSoonWindowDays = 7
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name.
	DefaultConfigFile = "config.yaml"

	// DefaultStoragePath is the default SQLite database location.
	DefaultStoragePath = "collectors-hub.db"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address.
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for CSV imports (256 KB).
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
