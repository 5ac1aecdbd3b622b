package applock

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
)

// StatusLocked is returned for API calls made while the app is locked.
const StatusLocked = http.StatusLocked

// Middleware rejects /api requests until the session is unlocked.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	enabled        bool
	publicPrefixes []string
}

func NewMiddleware(service *Service, sessionManager *SessionManager, cfg config.AppLock) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		enabled:        cfg.Enabled,
		publicPrefixes: []string{"/health", "/api/lock"},
	}
}

func (m *Middleware) isPublic(path string) bool {
	if !strings.HasPrefix(path, "/api") {
		return true
	}
	for _, prefix := range m.publicPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func (m *Middleware) Handler() gin.HandlerFunc {
	if !m.enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if m.isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		hasPIN, err := m.service.HasPIN(c.Request.Context())
		if err != nil {
			log.Printf("[APPLOCK] %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read lock state"})
			return
		}
		if !hasPIN || m.sessionManager.IsUnlocked(c.Request.Context()) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(StatusLocked, gin.H{"error": "app is locked"})
	}
}
