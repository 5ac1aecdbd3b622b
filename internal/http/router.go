package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Session must load before the lock middleware reads it
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.LockMiddleware != nil {
		router.Use(cfg.LockMiddleware.Handler())
	}

	health := NewHealthController(cfg.Storage, cfg.StorageName, cfg.Quran, cfg.Version)
	quranController := NewQuranController(cfg.Quran, cfg.Progress, cfg.Stats)
	progressController := NewProgressController(cfg.Progress, cfg.Stats)
	settingsController := NewSettingsController(cfg.Progress)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Reference data
	api.GET("/surahs", quranController.ListSurahs)
	api.GET("/surahs/:id", quranController.GetSurah)
	api.GET("/juz", quranController.ListJuz)
	api.GET("/juz/:id", quranController.GetJuz)

	// Progress
	api.POST("/memorize", progressController.Memorize)
	api.DELETE("/memorize/:surah/:ayah", progressController.Unmemorize)
	api.GET("/progress", progressController.Dashboard)
	api.GET("/export", progressController.Export)
	api.POST("/restore", progressController.Restore)
	api.POST("/reset", progressController.Reset)

	// Settings
	api.GET("/settings", settingsController.GetSettings)
	api.PATCH("/settings", settingsController.UpdateSettings)

	if cfg.ReminderSettings != nil {
		reminderController := NewReminderController(cfg.ReminderSettings, cfg.Reminder)
		api.GET("/reminder", reminderController.GetReminder)
		api.PUT("/reminder", reminderController.UpdateReminder)
		api.POST("/reminder/test", reminderController.TestReminder)
	}

	if cfg.BackupSettings != nil && cfg.Backups != nil && cfg.BackupFiles != nil {
		backupsController := NewBackupsController(cfg.BackupSettings, cfg.Backups, cfg.BackupFiles)
		api.GET("/backups", backupsController.ListBackups)
		api.POST("/backups", backupsController.CreateBackup)
		api.PUT("/backups/settings", backupsController.UpdateBackupSettings)
	}

	if cfg.LockController != nil {
		cfg.LockController.RegisterRoutes(router)
	}

	return router
}
