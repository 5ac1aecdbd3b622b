// Package applock guards the API behind an optional numeric PIN.
//
// The PIN is stored as a bcrypt hash under the diyaa_applock key. When the
// lock is enabled and a PIN is set, every /api route except /api/lock/*
// requires a session that was unlocked with the PIN. Sessions live in the
// SQLite database via scs.
//
// # Configuration
//
//	APPLOCK_ENABLED=true            # Off by default
//	APPLOCK_SESSION_LIFETIME=12h    # How long an unlock lasts
//	APPLOCK_BCRYPT_COST=12          # bcrypt cost factor
//	APPLOCK_SECURE_COOKIES=false    # HTTPS-only cookies
//
// # Usage
//
//	service := applock.NewService(db.KV(), cfg.AppLock)
//	sessions, err := applock.NewSessionManager(sqlDB, cfg.AppLock)
//	router.Use(sessions.SessionLoadSave())
//	router.Use(applock.NewMiddleware(service, sessions, cfg.AppLock).Handler())
package applock
