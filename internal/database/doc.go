// Package database opens the SQLite database that holds all durable state.
//
// # Layout
//
//	database/
//	├── database.go  # Connection setup, migrations, setting helpers
//	└── kv/          # Key/value blobs (progress, daily log, settings, ...)
//
// Every piece of user state is a string blob under a fixed key in the
// kv_store table (see entities.KeyValue). The progress store reads and
// writes its blobs through kv.Repository; configuration overrides use the
// GetSetting/SetSetting helpers on Database.
//
//	db, err := database.NewDatabase("./diyaa.db")
//	store := progress.NewStore(db.KV(), provider)
package database
