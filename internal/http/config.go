package http

import (
	"github.com/ImCitizen13/diyaa-al-quran/internal/applock"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// Optional features are left nil when disabled.
type RouterConfig struct {
	// Core dependencies
	Quran    QuranReference
	Progress ProgressStore
	Stats    StatsProvider

	// Health checks
	Storage     Pinger
	StorageName string
	Version     string

	// Reminder (optional)
	ReminderSettings ReminderSettings
	Reminder         ReminderControl

	// Backups (optional)
	BackupSettings BackupSettings
	Backups        BackupControl
	BackupFiles    BackupLister

	// App lock (optional)
	SessionManager *applock.SessionManager
	LockMiddleware *applock.Middleware
	LockController *applock.Controller
}
