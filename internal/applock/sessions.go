package applock

import (
	"context"
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
)

const SessionKeyUnlockedAt = "unlocked_at"

func init() {
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with lock state helpers.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates the sessions table if needed and configures
// cookies. sqlDB is the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.AppLock) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	lifetime := cfg.SessionLifetime
	if lifetime <= 0 {
		lifetime = 12 * time.Hour
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "diyaa_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// MarkUnlocked renews the token and records the unlock time.
func (sm *SessionManager) MarkUnlocked(ctx context.Context) error {
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, SessionKeyUnlockedAt, time.Now())
	return nil
}

// Lock ends the unlocked session.
func (sm *SessionManager) Lock(ctx context.Context) error {
	return sm.Destroy(ctx)
}

func (sm *SessionManager) IsUnlocked(ctx context.Context) bool {
	return sm.Exists(ctx, SessionKeyUnlockedAt)
}

// UnlockedAt returns the unlock time, zero when locked.
func (sm *SessionManager) UnlockedAt(ctx context.Context) time.Time {
	t, _ := sm.Get(ctx, SessionKeyUnlockedAt).(time.Time)
	return t
}
