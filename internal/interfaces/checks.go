package interfaces

// This file contains compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/ImCitizen13/diyaa-al-quran/internal/applock"
	"github.com/ImCitizen13/diyaa-al-quran/internal/backup"
	"github.com/ImCitizen13/diyaa-al-quran/internal/database/kv"
	"github.com/ImCitizen13/diyaa-al-quran/internal/http"
	"github.com/ImCitizen13/diyaa-al-quran/internal/progress"
	"github.com/ImCitizen13/diyaa-al-quran/internal/quran"
	"github.com/ImCitizen13/diyaa-al-quran/internal/reminder"
	"github.com/ImCitizen13/diyaa-al-quran/internal/scheduler"
	"github.com/ImCitizen13/diyaa-al-quran/internal/settingsstore"
	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
	"github.com/ImCitizen13/diyaa-al-quran/internal/storage/memstore"
	"github.com/ImCitizen13/diyaa-al-quran/internal/storage/redisstore"
	"github.com/ImCitizen13/diyaa-al-quran/internal/tasks"
)

// =============================================================================
// Storage
// =============================================================================

var _ progress.Storage = (*kv.Repository)(nil)
var _ progress.Storage = (*redisstore.Store)(nil)
var _ progress.Storage = (*memstore.Store)(nil)

var _ applock.KeyValueStore = (*kv.Repository)(nil)
var _ applock.KeyValueStore = (*redisstore.Store)(nil)
var _ applock.KeyValueStore = (*memstore.Store)(nil)

// =============================================================================
// Reference Data
// =============================================================================

var _ progress.JuzResolver = (*quran.Provider)(nil)
var _ stats.Reference = (*quran.Provider)(nil)
var _ http.QuranReference = (*quran.Provider)(nil)

// =============================================================================
// Progress and Statistics
// =============================================================================

var _ stats.ProgressReader = (*progress.Store)(nil)
var _ http.ProgressStore = (*progress.Store)(nil)
var _ http.StatsProvider = (*stats.Engine)(nil)
var _ reminder.ProgressReader = (*stats.Engine)(nil)

// =============================================================================
// Settings and Scheduling
// =============================================================================

var _ scheduler.ReminderConfigSource = (*settingsstore.SettingsStore)(nil)
var _ scheduler.BackupConfigSource = (*settingsstore.SettingsStore)(nil)
var _ scheduler.ReminderRunner = (*reminder.Reminder)(nil)
var _ http.ReminderSettings = (*settingsstore.SettingsStore)(nil)
var _ http.ReminderControl = (*scheduler.ReminderScheduler)(nil)
var _ http.BackupSettings = (*settingsstore.SettingsStore)(nil)
var _ http.BackupControl = (*scheduler.BackupScheduler)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.BackupEnqueuer = (*tasks.Client)(nil)
var _ scheduler.BackupEnqueuer = (*tasks.InlineBackup)(nil)
var _ tasks.SnapshotExporter = (*progress.Store)(nil)
var _ tasks.BackupSaver = (*backup.Writer)(nil)
var _ tasks.BackupPruner = (*backup.Writer)(nil)
var _ tasks.BackupStatusRecorder = (*settingsstore.SettingsStore)(nil)
var _ http.BackupLister = (*backup.Writer)(nil)
