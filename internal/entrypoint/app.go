package entrypoint

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ImCitizen13/diyaa-al-quran/internal/backup"
	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
	"github.com/ImCitizen13/diyaa-al-quran/internal/database"
	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/progress"
	"github.com/ImCitizen13/diyaa-al-quran/internal/quran"
	"github.com/ImCitizen13/diyaa-al-quran/internal/settingsstore"
	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
	"github.com/ImCitizen13/diyaa-al-quran/internal/storage/memstore"
	"github.com/ImCitizen13/diyaa-al-quran/internal/storage/redisstore"
)

// App holds the components shared by the server and the CLI commands.
type App struct {
	Config   *config.Config
	DB       *database.Database
	Quran    *quran.Provider
	Store    *progress.Store
	Stats    *stats.Engine
	Settings *settingsstore.SettingsStore
	Backups  *backup.Writer

	backend backend
}

// backend is where progress blobs live.
type backend struct {
	name    string
	storage progress.Storage
	ping    func(ctx context.Context) error
	close   func() error
}

func (b backend) Ping(ctx context.Context) error {
	return b.ping(ctx)
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for the progress store and stats engine.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Open loads the Quran reference data, opens the database and the selected
// storage backend, and reads persisted progress. Close releases everything.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	provider, err := quran.LoadDir(cfg.Quran.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load quran data from %s: %w", cfg.Quran.DataDir, err)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	b, err := openBackend(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[STORE] Using %s storage backend", b.name)

	defaults := entities.DefaultSettings()
	if cfg.Progress.DefaultDailyGoal > 0 {
		defaults.DailyGoal = cfg.Progress.DefaultDailyGoal
	}
	store := progress.NewStore(b.storage, provider,
		progress.WithClock(o.now),
		progress.WithDefaultSettings(defaults),
	)
	store.Load(ctx)

	return &App{
		Config:   cfg,
		DB:       db,
		Quran:    provider,
		Store:    store,
		Stats:    stats.NewEngine(store, provider, stats.WithClock(o.now)),
		Settings: settingsstore.New(db),
		Backups:  backup.NewWriter(cfg.Backup.Dir),
		backend:  b,
	}, nil
}

func openBackend(cfg *config.Config, db *database.Database) (backend, error) {
	switch cfg.Storage.Backend {
	case config.StorageSQLite, "":
		return backend{
			name:    string(config.StorageSQLite),
			storage: db.KV(),
			ping:    db.Ping,
			close:   func() error { return nil },
		}, nil
	case config.StorageRedis:
		rs, err := redisstore.New(redisstore.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return backend{}, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return backend{
			name:    string(config.StorageRedis),
			storage: rs,
			ping:    rs.Ping,
			close:   rs.Close,
		}, nil
	case config.StorageMemory:
		log.Printf("[STORE] Memory backend: progress is lost on exit")
		return backend{
			name:    string(config.StorageMemory),
			storage: memstore.New(),
			ping:    func(context.Context) error { return nil },
			close:   func() error { return nil },
		}, nil
	default:
		return backend{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Close drains pending progress writes, then closes storage and database.
func (a *App) Close() {
	a.Store.Close()
	if err := a.backend.close(); err != nil {
		log.Printf("Error closing %s storage: %v", a.backend.name, err)
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
