package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ImCitizen13/diyaa-al-quran/internal/database/kv"
	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

type Database struct {
	DB *gorm.DB
	kv *kv.Repository
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.KeyValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db, kv: kv.NewRepository(db)}, nil
}

// KV returns the key/value repository backing progress storage.
func (d *Database) KV() *kv.Repository {
	return d.kv
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetSetting returns gorm.ErrRecordNotFound when the key is absent.
func (d *Database) GetSetting(key string) (*entities.KeyValue, error) {
	return d.kv.Get(context.Background(), key)
}

func (d *Database) SetSetting(key, value string) error {
	return d.kv.SetItem(context.Background(), key, value)
}

func (d *Database) DeleteSetting(key string) error {
	return d.kv.RemoveItem(context.Background(), key)
}
