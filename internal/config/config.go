package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Storage
		Redis
		Quran
		Progress
		Reminder
		Backup
		Tasks
		AppLock
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Storage struct {
		Backend StorageBackend
	}
	Redis struct {
		Addr      string
		Password  string
		DB        int
		KeyPrefix string
	}
	Quran struct {
		DataDir string
	}
	Progress struct {
		DefaultDailyGoal int
	}
	Reminder struct {
		Enabled bool
		Time    string // HH:MM, local time
	}
	Backup struct {
		Enabled       bool
		Schedule      string
		Dir           string
		RetentionDays int
	}
	Tasks struct {
		Enabled           bool          // Enable the background task queue
		Workers           int           // Number of concurrent workers (default: 1)
		MaxRetries        int           // Max retry attempts for failed tasks (default: 3)
		RetryDelay        time.Duration // Backoff between retries (default: 1m)
		TaskTimeout       time.Duration // Timeout for task execution (default: 2m)
		ReleaseAfter      time.Duration // Release stuck tasks after (default: 15m)
		CleanupInterval   time.Duration // Cleanup completed tasks interval (default: 1h)
		RetentionDuration time.Duration // Keep completed tasks for (default: 24h)
	}
	AppLock struct {
		Enabled         bool
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local use without HTTPS

		// Unlock attempt limiting
		MaxAttempts     int
		AttemptWindow   time.Duration
		LockoutDuration time.Duration
	}
)

// LoadDotEnv reads KEY=value pairs from the given files (default ".env")
// into the environment. Missing files are ignored and variables already
// set win.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Failed to load %s: %v", p, err)
		}
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("storage_backend", string(StorageSQLite))
	v.SetDefault("quran_data_dir", DefaultQuranDataDir)
	v.SetDefault("daily_goal_default", 5)

	// Redis defaults
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_key_prefix", "diyaa:")

	// Reminder and backup defaults (database settings override these)
	v.SetDefault("reminder_enabled", false)
	v.SetDefault("reminder_time", "20:00")
	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("backup_dir", DefaultBackupDir)
	v.SetDefault("backup_retention_days", 30)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "2m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// App lock defaults
	v.SetDefault("applock_enabled", false)
	v.SetDefault("applock_session_lifetime", "12h")
	v.SetDefault("applock_bcrypt_cost", 12)
	v.SetDefault("applock_secure_cookies", false)
	v.SetDefault("applock_max_attempts", 5)
	v.SetDefault("applock_attempt_window", "15m")
	v.SetDefault("applock_lockout_duration", "30m")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Storage: Storage{
			Backend: StorageBackend(strings.ToLower(v.GetString("STORAGE_BACKEND"))),
		},
		Redis: Redis{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Quran: Quran{
			DataDir: v.GetString("QURAN_DATA_DIR"),
		},
		Progress: Progress{
			DefaultDailyGoal: v.GetInt("DAILY_GOAL_DEFAULT"),
		},
		Reminder: Reminder{
			Enabled: v.GetBool("REMINDER_ENABLED"),
			Time:    v.GetString("REMINDER_TIME"),
		},
		Backup: Backup{
			Enabled:       v.GetBool("BACKUP_ENABLED"),
			Schedule:      v.GetString("BACKUP_SCHEDULE"),
			Dir:           v.GetString("BACKUP_DIR"),
			RetentionDays: v.GetInt("BACKUP_RETENTION_DAYS"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		AppLock: AppLock{
			Enabled:         v.GetBool("APPLOCK_ENABLED"),
			SessionLifetime: v.GetDuration("APPLOCK_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("APPLOCK_BCRYPT_COST"),
			SecureCookies:   v.GetBool("APPLOCK_SECURE_COOKIES"),
			MaxAttempts:     v.GetInt("APPLOCK_MAX_ATTEMPTS"),
			AttemptWindow:   v.GetDuration("APPLOCK_ATTEMPT_WINDOW"),
			LockoutDuration: v.GetDuration("APPLOCK_LOCKOUT_DURATION"),
		},
	}
}
