package entities

import (
	"time"
)

// KeyValue is one durable string blob. Progress, daily log, settings, reminder
// and lock configuration each live under their own key.
type KeyValue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KeyValue) TableName() string {
	return "kv_store"
}

// Known storage keys
const (
	// Progress store blobs
	KeyMemorized = "diyaa_memorized"
	KeyDailyLog  = "diyaa_daily_log"
	KeySettings  = "diyaa_settings"

	// Reminder and backup configuration (database overrides of env/defaults)
	KeyReminder       = "diyaa_notification_settings"
	KeyBackupEnabled  = "diyaa_backup_enabled"
	KeyBackupSchedule = "diyaa_backup_schedule"
	KeyBackupLastAt   = "diyaa_backup_last_at"
	KeyBackupLastFile = "diyaa_backup_last_file"

	// App lock
	KeyAppLock = "diyaa_applock"
)
