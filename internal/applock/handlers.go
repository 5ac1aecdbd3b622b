package applock

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
)

type LockStatus struct {
	Enabled  bool `json:"enabled"`
	PINSet   bool `json:"pinSet"`
	Unlocked bool `json:"unlocked"`
}

type setPINRequest struct {
	CurrentPIN string `json:"currentPin"`
	PIN        string `json:"pin" binding:"required"`
}

type pinRequest struct {
	PIN string `json:"pin"`
}

// Controller serves /api/lock.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
	enabled        bool
	rateLimiter    *RateLimiter
}

func NewController(service *Service, sessionManager *SessionManager, cfg config.AppLock) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
		enabled:        cfg.Enabled,
		rateLimiter: NewRateLimiter(RateLimitConfig{
			MaxAttempts:     cfg.MaxAttempts,
			WindowDuration:  cfg.AttemptWindow,
			LockoutDuration: cfg.LockoutDuration,
		}),
	}
}

func (lc *Controller) RegisterRoutes(router gin.IRouter) {
	lock := router.Group("/api/lock")
	lock.GET("/status", lc.Status)
	lock.POST("/pin", lc.SetPIN)
	lock.DELETE("/pin", lc.RemovePIN)
	lock.POST("/unlock", lc.Unlock)
	lock.POST("/lock", lc.Lock)
}

func (lc *Controller) Status(c *gin.Context) {
	hasPIN, err := lc.service.HasPIN(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read lock state"})
		return
	}
	c.JSON(http.StatusOK, LockStatus{
		Enabled:  lc.enabled,
		PINSet:   hasPIN,
		Unlocked: !hasPIN || lc.sessionManager.IsUnlocked(c.Request.Context()),
	})
}

// SetPIN sets or changes the PIN and unlocks the current session.
func (lc *Controller) SetPIN(c *gin.Context) {
	var req setPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pin is required"})
		return
	}
	if !lc.allow(c) {
		return
	}

	err := lc.service.SetPIN(c.Request.Context(), req.CurrentPIN, req.PIN)
	switch {
	case errors.Is(err, ErrInvalidPIN):
		lc.fail(c)
		return
	case errors.Is(err, ErrPINFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("[APPLOCK] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save PIN"})
		return
	}

	lc.rateLimiter.RecordSuccess(c.ClientIP())
	if err := lc.sessionManager.MarkUnlocked(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pinSet": true})
}

func (lc *Controller) RemovePIN(c *gin.Context) {
	var req pinRequest
	_ = c.ShouldBindJSON(&req)
	if !lc.allow(c) {
		return
	}

	err := lc.service.RemovePIN(c.Request.Context(), req.PIN)
	switch {
	case errors.Is(err, ErrNoPIN):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrInvalidPIN):
		lc.fail(c)
		return
	case err != nil:
		log.Printf("[APPLOCK] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove PIN"})
		return
	}

	lc.rateLimiter.RecordSuccess(c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"pinSet": false})
}

func (lc *Controller) Unlock(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pin is required"})
		return
	}
	if !lc.allow(c) {
		return
	}

	err := lc.service.Verify(c.Request.Context(), req.PIN)
	switch {
	case errors.Is(err, ErrNoPIN):
		c.JSON(http.StatusOK, gin.H{"unlocked": true})
		return
	case errors.Is(err, ErrInvalidPIN):
		lc.fail(c)
		return
	case err != nil:
		log.Printf("[APPLOCK] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify PIN"})
		return
	}

	lc.rateLimiter.RecordSuccess(c.ClientIP())
	if err := lc.sessionManager.MarkUnlocked(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": true})
}

func (lc *Controller) Lock(c *gin.Context) {
	if err := lc.sessionManager.Lock(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to lock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": false})
}

func (lc *Controller) allow(c *gin.Context) bool {
	allowed, retryAfter := lc.rateLimiter.Allow(c.ClientIP())
	if !allowed {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "too many attempts",
			"retry_after": retryAfter.String(),
		})
	}
	return allowed
}

func (lc *Controller) fail(c *gin.Context) {
	lc.rateLimiter.RecordFailure(c.ClientIP())
	c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidPIN.Error()})
}
