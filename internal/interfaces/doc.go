// Package interfaces documents the seams between packages and holds the
// compile-time checks that wire them together.
//
// # Storage
//
//   - progress.Storage: key/value blobs behind the progress store. Implemented
//     by database/kv (SQLite via GORM), storage/redisstore and storage/memstore.
//   - applock.KeyValueStore: where the PIN hash is kept. Same implementations.
//
// # Reference Data
//
//   - progress.JuzResolver: ayah to juz lookup (quran.Provider)
//   - stats.Reference: surah and juz structure (quran.Provider)
//   - http.QuranReference: browsing routes (quran.Provider)
//
// # Progress and Statistics
//
//   - stats.ProgressReader: read side of progress.Store
//   - http.ProgressStore: read and write side of progress.Store
//   - http.StatsProvider, reminder.ProgressReader: stats.Engine
//
// # Background Work
//
//   - scheduler.BackupEnqueuer: tasks.Client (queued) or tasks.InlineBackup
//   - scheduler.ReminderRunner: reminder.Reminder
//   - tasks.SnapshotExporter / BackupSaver / BackupPruner / BackupStatusRecorder:
//     progress.Store, backup.Writer and settingsstore.SettingsStore
//
// # Adding a New Storage Backend
//
//  1. Create a package under internal/storage/ with GetItem, SetItem and
//     RemoveItem taking a context.
//
//  2. Add a compile-time check in checks.go:
//
//     var _ progress.Storage = (*etcdstore.Store)(nil)
//
//  3. Add a config.StorageBackend value and a case in entrypoint.openBackend.
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
