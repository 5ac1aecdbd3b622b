package settingsstore

import (
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

const DefaultBackupSchedule = "0 3 * * *"

// BackupConfig represents the effective configuration for scheduled backups
type BackupConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// BackupConfigInfo includes source information for each field
type BackupConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"`

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`
}

// BackupStatus describes the last completed backup
type BackupStatus struct {
	LastAt   *time.Time `json:"last_at,omitempty"`
	LastFile string     `json:"last_file,omitempty"`
}

func (s *SettingsStore) backupEnabled() (bool, string) {
	if v := s.lookup(entities.KeyBackupEnabled); v != "" {
		return parseBool(v), SourceDatabase
	}
	if envVal := os.Getenv("BACKUP_ENABLED"); envVal != "" {
		return parseBool(envVal), SourceEnvironment
	}
	return false, SourceDefault
}

func (s *SettingsStore) backupSchedule() (string, string) {
	if v := s.lookup(entities.KeyBackupSchedule); v != "" {
		return v, SourceDatabase
	}
	if envVal := os.Getenv("BACKUP_SCHEDULE"); envVal != "" {
		return envVal, SourceEnvironment
	}
	return DefaultBackupSchedule, SourceDefault
}

// GetBackupEnabled returns whether scheduled backups are on (database > env > default)
func (s *SettingsStore) GetBackupEnabled() bool {
	enabled, _ := s.backupEnabled()
	return enabled
}

func (s *SettingsStore) SetBackupEnabled(enabled bool) error {
	return s.db.SetSetting(entities.KeyBackupEnabled, strconv.FormatBool(enabled))
}

// GetBackupSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetBackupSchedule() string {
	schedule, _ := s.backupSchedule()
	return schedule
}

// SetBackupSchedule validates and saves the schedule to database
func (s *SettingsStore) SetBackupSchedule(schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.db.SetSetting(entities.KeyBackupSchedule, schedule)
}

func (s *SettingsStore) GetBackupConfig() BackupConfig {
	return BackupConfig{
		Enabled:  s.GetBackupEnabled(),
		Schedule: s.GetBackupSchedule(),
	}
}

func (s *SettingsStore) GetBackupConfigInfo() BackupConfigInfo {
	info := BackupConfigInfo{}
	info.Enabled, info.EnabledSource = s.backupEnabled()
	info.Schedule, info.ScheduleSource = s.backupSchedule()
	return info
}

func (s *SettingsStore) GetBackupStatus() BackupStatus {
	status := BackupStatus{LastFile: s.lookup(entities.KeyBackupLastFile)}
	if v := s.lookup(entities.KeyBackupLastAt); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			status.LastAt = &ts
		}
	}
	return status
}

// SetBackupStatus records a completed backup
func (s *SettingsStore) SetBackupStatus(file string, at time.Time) error {
	if err := s.db.SetSetting(entities.KeyBackupLastAt, at.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return s.db.SetSetting(entities.KeyBackupLastFile, file)
}

// ClearBackupSettings clears all database overrides, reverting to env/default
func (s *SettingsStore) ClearBackupSettings() error {
	return s.clear(entities.KeyBackupEnabled, entities.KeyBackupSchedule)
}

func cronParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser().Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case DefaultBackupSchedule:
		return "Daily at 03:00"
	case "0 3 * * 0":
		return "Weekly on Sunday at 03:00"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the schedule fires next after from
func GetNextRunTime(schedule string, from time.Time) (*time.Time, error) {
	sched, err := cronParser().Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(from)
	return &next, nil
}
