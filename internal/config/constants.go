package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./diyaa.db"

	// DefaultQuranDataDir holds surah.json, juz.json and surah/surah_N.json
	DefaultQuranDataDir = "./data/quran"

	DefaultBackupDir = "./backups"
)

// StorageBackend selects where progress blobs are persisted.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)
