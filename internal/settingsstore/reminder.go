package settingsstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

// ReminderConfigInfo includes where the effective reminder config came from.
type ReminderConfigInfo struct {
	entities.ReminderConfig
	Source string `json:"source"` // "database", "environment", "default"
}

// GetReminderConfig returns the effective reminder configuration
func (s *SettingsStore) GetReminderConfig() entities.ReminderConfig {
	return s.GetReminderConfigInfo().ReminderConfig
}

// GetReminderConfigInfo resolves the reminder (database > env > default).
// A stored value that does not decode or is out of range is ignored.
func (s *SettingsStore) GetReminderConfigInfo() ReminderConfigInfo {
	if raw := s.lookup(entities.KeyReminder); raw != "" {
		var cfg entities.ReminderConfig
		if err := json.Unmarshal([]byte(raw), &cfg); err == nil && cfg.Valid() {
			return ReminderConfigInfo{ReminderConfig: cfg, Source: SourceDatabase}
		}
	}

	cfg := entities.DefaultReminderConfig()
	source := SourceDefault

	if envVal := os.Getenv("REMINDER_ENABLED"); envVal != "" {
		cfg.Enabled = parseBool(envVal)
		source = SourceEnvironment
	}
	if envVal := os.Getenv("REMINDER_TIME"); envVal != "" {
		if hour, minute, err := ParseReminderTime(envVal); err == nil {
			cfg.Hour, cfg.Minute = hour, minute
			source = SourceEnvironment
		}
	}

	return ReminderConfigInfo{ReminderConfig: cfg, Source: source}
}

// SetReminderConfig saves the reminder configuration to database
func (s *SettingsStore) SetReminderConfig(cfg entities.ReminderConfig) error {
	if !cfg.Valid() {
		return fmt.Errorf("invalid reminder time %02d:%02d", cfg.Hour, cfg.Minute)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.db.SetSetting(entities.KeyReminder, string(data))
}

// ClearReminderConfig drops the database override, reverting to env/default
func (s *SettingsStore) ClearReminderConfig() error {
	return s.clear(entities.KeyReminder)
}

// ParseReminderTime parses "HH:MM" in 24-hour form.
func ParseReminderTime(value string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, 0, fmt.Errorf("reminder time %q: expected HH:MM", value)
	}
	if hour, err = strconv.Atoi(h); err != nil {
		return 0, 0, fmt.Errorf("reminder time %q: %w", value, err)
	}
	if minute, err = strconv.Atoi(m); err != nil {
		return 0, 0, fmt.Errorf("reminder time %q: %w", value, err)
	}
	if !(entities.ReminderConfig{Hour: hour, Minute: minute}).Valid() {
		return 0, 0, fmt.Errorf("reminder time %q: out of range", value)
	}
	return hour, minute, nil
}
