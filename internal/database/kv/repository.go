// Package kv stores string blobs by key in SQLite.
//
// # Usage
//
//	repo := kv.NewRepository(db)
//	err := repo.SetItem(ctx, "diyaa_settings", `{"dailyGoal":5}`)
package kv

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

// Repository implements progress.Storage on top of the kv_store table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the row for key, or gorm.ErrRecordNotFound.
func (r *Repository) Get(ctx context.Context, key string) (*entities.KeyValue, error) {
	var kv entities.KeyValue
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error; err != nil {
		return nil, err
	}
	return &kv, nil
}

// GetItem reports ok=false for an absent key.
func (r *Repository) GetItem(ctx context.Context, key string) (string, bool, error) {
	kv, err := r.Get(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return kv.Value, true, nil
}

// SetItem creates or replaces the value under key in one statement, so
// concurrent writers of a new key never collide on the unique index.
func (r *Repository) SetItem(ctx context.Context, key, value string) error {
	kv := entities.KeyValue{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
}

// RemoveItem deletes key. Removing an absent key is not an error.
func (r *Repository) RemoveItem(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.KeyValue{}).Error
}

// Keys lists stored keys in ascending order.
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&entities.KeyValue{}).Order("key").Pluck("key", &keys).Error
	return keys, err
}
