package settingsstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ImCitizen13/diyaa-al-quran/internal/database"
)

// Setting sources, reported next to effective values.
const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

// Priority: database > environment > default
type SettingsStore struct {
	db *database.Database
}

func New(db *database.Database) *SettingsStore {
	return &SettingsStore{db: db}
}

// lookup returns the stored override for key, or "" when none is set.
func (s *SettingsStore) lookup(key string) string {
	setting, err := s.db.GetSetting(key)
	if err != nil {
		return ""
	}
	return setting.Value
}

func (s *SettingsStore) clear(keys ...string) error {
	for _, key := range keys {
		if err := s.db.DeleteSetting(key); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func parseBool(v string) bool {
	return v == "true" || v == "1"
}
