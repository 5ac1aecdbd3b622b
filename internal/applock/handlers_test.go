package applock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
	"github.com/ImCitizen13/diyaa-al-quran/internal/storage/memstore"
)

type lockHarness struct {
	router  *gin.Engine
	service *Service
	cookie  *http.Cookie
}

func setupSessionManager(t *testing.T, cfg config.AppLock) *SessionManager {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.db")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	sm, err := NewSessionManager(sqlDB, cfg)
	require.NoError(t, err)
	return sm
}

func setupLockHarness(t *testing.T, cfg config.AppLock) *lockHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := setupSessionManager(t, cfg)
	svc := NewService(memstore.New(), cfg)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.Use(NewMiddleware(svc, sm, cfg).Handler())
	NewController(svc, sm, cfg).RegisterRoutes(router)
	router.GET("/api/progress", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &lockHarness{router: router, service: svc}
}

// do sends a request, carrying the session cookie across calls.
func (h *lockHarness) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "diyaa_session" {
			if c.Value == "" || c.MaxAge < 0 {
				h.cookie = nil
			} else {
				h.cookie = c
			}
		}
	}
	return w
}

func TestNewSessionManager(t *testing.T) {
	sm := setupSessionManager(t, config.AppLock{SessionLifetime: 2 * time.Hour, SecureCookies: true})

	assert.Equal(t, "diyaa_session", sm.Cookie.Name)
	assert.True(t, sm.Cookie.HttpOnly)
	assert.True(t, sm.Cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, sm.Cookie.SameSite)
	assert.Equal(t, 2*time.Hour, sm.Lifetime)
	assert.Equal(t, time.Hour, sm.IdleTimeout)
}

func TestSessionManager_UnlockState(t *testing.T) {
	sm := setupSessionManager(t, config.AppLock{})
	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, sm.IsUnlocked(ctx))
	assert.True(t, sm.UnlockedAt(ctx).IsZero())

	require.NoError(t, sm.MarkUnlocked(ctx))
	assert.True(t, sm.IsUnlocked(ctx))
	assert.False(t, sm.UnlockedAt(ctx).IsZero())

	require.NoError(t, sm.Lock(ctx))
	assert.False(t, sm.IsUnlocked(ctx))
}

func TestLockFlow(t *testing.T) {
	h := setupLockHarness(t, testLockConfig())

	// No PIN yet: the API is open.
	w := h.do(t, http.MethodGet, "/api/progress", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodGet, "/api/lock/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status LockStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, LockStatus{Enabled: true, PINSet: false, Unlocked: true}, status)

	// Setting a PIN unlocks this session.
	w = h.do(t, http.MethodPost, "/api/lock/pin", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, h.cookie)

	w = h.do(t, http.MethodGet, "/api/progress", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Locking closes the API but not health or lock routes.
	w = h.do(t, http.MethodPost, "/api/lock/lock", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodGet, "/api/progress", "")
	assert.Equal(t, http.StatusLocked, w.Code)
	assert.Contains(t, w.Body.String(), "app is locked")

	w = h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong PIN is refused, right PIN unlocks.
	w = h.do(t, http.MethodPost, "/api/lock/unlock", `{"pin":"0000"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, http.MethodPost, "/api/lock/unlock", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodGet, "/api/progress", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Removing the PIN opens the API for everyone.
	w = h.do(t, http.MethodDelete, "/api/lock/pin", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, w.Code)

	h.cookie = nil
	w = h.do(t, http.MethodGet, "/api/progress", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnlock_RateLimited(t *testing.T) {
	h := setupLockHarness(t, testLockConfig())
	require.NoError(t, h.service.SetPIN(context.Background(), "", "1234"))

	for i := 0; i < 3; i++ {
		w := h.do(t, http.MethodPost, "/api/lock/unlock", `{"pin":"0000"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := h.do(t, http.MethodPost, "/api/lock/unlock", `{"pin":"1234"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestUnlock_Validation(t *testing.T) {
	h := setupLockHarness(t, testLockConfig())

	w := h.do(t, http.MethodPost, "/api/lock/unlock", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, "/api/lock/pin", `{"pin":"12"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodDelete, "/api/lock/pin", `{"pin":"1234"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	cfg := testLockConfig()
	cfg.Enabled = false
	h := setupLockHarness(t, cfg)
	require.NoError(t, h.service.SetPIN(context.Background(), "", "1234"))

	w := h.do(t, http.MethodGet, "/api/progress", "")

	assert.Equal(t, http.StatusOK, w.Code)
}
