package http

import (
	"context"

	"github.com/ImCitizen13/diyaa-al-quran/internal/backup"
	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/quran"
	"github.com/ImCitizen13/diyaa-al-quran/internal/settingsstore"
	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
)

// QuranReference is the structural data served by the surah and juz routes.
type QuranReference interface {
	Surahs() []quran.Surah
	JuzList() []quran.Juz
	Surah(number int) (quran.Surah, bool)
	Juz(number int) (quran.Juz, bool)
	SurahsInJuz(juzNumber int) []quran.SurahSegment
	Ayahs(surahNumber int) []quran.Ayah
}

// ProgressStore is the mutable progress state behind the memorize routes.
type ProgressStore interface {
	Memorize(entries []entities.AyahRef, masteryLevel float64) int
	Unmemorize(surahNumber, ayahNumber int)
	IsMemorized(surahNumber, ayahNumber int) bool
	MasteryLevel(surahNumber, ayahNumber int) float64
	Settings() entities.Settings
	UpdateSettings(patch entities.SettingsPatch) entities.Settings
	ExportSnapshot() (string, error)
	Restore(snap *entities.Snapshot) int
	ResetAll()
}

// StatsProvider computes the derived numbers shown on the dashboard.
type StatsProvider interface {
	SurahProgress(surahNumber int) stats.Progress
	JuzProgress(juzNumber int) stats.Progress
	Dashboard() stats.Dashboard
}

// ReminderSettings reads and writes the reminder schedule.
type ReminderSettings interface {
	GetReminderConfigInfo() settingsstore.ReminderConfigInfo
	SetReminderConfig(cfg entities.ReminderConfig) error
}

// ReminderControl reschedules or fires the daily reminder.
type ReminderControl interface {
	Reschedule() error
	RunNow(ctx context.Context) (bool, error)
	IsRunning() bool
}

// BackupSettings reads and writes the scheduled backup configuration.
type BackupSettings interface {
	GetBackupConfigInfo() settingsstore.BackupConfigInfo
	GetBackupStatus() settingsstore.BackupStatus
	SetBackupEnabled(enabled bool) error
	SetBackupSchedule(schedule string) error
}

// BackupControl triggers backups and reschedules the backup job.
type BackupControl interface {
	RunNow() error
	Reschedule() error
	IsRunning() bool
}

// BackupLister lists the snapshot files on disk.
type BackupLister interface {
	List() ([]backup.File, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
