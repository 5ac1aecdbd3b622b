package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/backup"
	"github.com/ImCitizen13/diyaa-al-quran/internal/settingsstore"
)

// BackupsController triggers snapshot backups and manages their schedule.
type BackupsController struct {
	settings  BackupSettings
	scheduler BackupControl
	files     BackupLister
}

func NewBackupsController(settings BackupSettings, scheduler BackupControl, files BackupLister) *BackupsController {
	return &BackupsController{settings: settings, scheduler: scheduler, files: files}
}

type BackupsResponse struct {
	Config      settingsstore.BackupConfigInfo `json:"config"`
	Description string                         `json:"description"`
	Status      settingsstore.BackupStatus     `json:"status"`
	Running     bool                           `json:"running"`
	Files       []backup.File                  `json:"files"`
}

type updateBackupRequest struct {
	Enabled  *bool  `json:"enabled"`
	Schedule string `json:"schedule"`
}

// ListBackups handles GET /api/backups
func (bc *BackupsController) ListBackups(c *gin.Context) {
	files, err := bc.files.List()
	if err != nil {
		respondInternalError(c, err, "list backups")
		return
	}
	if files == nil {
		files = []backup.File{}
	}

	cfg := bc.settings.GetBackupConfigInfo()
	c.JSON(http.StatusOK, BackupsResponse{
		Config:      cfg,
		Description: settingsstore.GetCronDescription(cfg.Schedule),
		Status:      bc.settings.GetBackupStatus(),
		Running:     bc.scheduler.IsRunning(),
		Files:       files,
	})
}

// CreateBackup handles POST /api/backups
// The snapshot is written by the task queue.
func (bc *BackupsController) CreateBackup(c *gin.Context) {
	if err := bc.scheduler.RunNow(); err != nil {
		respondInternalError(c, err, "enqueue backup")
		return
	}
	respondAccepted(c, "backup queued", nil)
}

// UpdateBackupSettings handles PUT /api/backups/settings
func (bc *BackupsController) UpdateBackupSettings(c *gin.Context) {
	var req updateBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid backup settings")
		return
	}

	if req.Schedule != "" {
		if err := settingsstore.ValidateCronSchedule(req.Schedule); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		if err := bc.settings.SetBackupSchedule(req.Schedule); err != nil {
			respondInternalError(c, err, "save backup schedule")
			return
		}
	}
	if req.Enabled != nil {
		if err := bc.settings.SetBackupEnabled(*req.Enabled); err != nil {
			respondInternalError(c, err, "save backup enabled")
			return
		}
	}

	if err := bc.scheduler.Reschedule(); err != nil {
		log.Printf("[BACKUP] Failed to reschedule: %v", err)
	}

	cfg := bc.settings.GetBackupConfigInfo()
	c.JSON(http.StatusOK, gin.H{
		"config":      cfg,
		"description": settingsstore.GetCronDescription(cfg.Schedule),
		"running":     bc.scheduler.IsRunning(),
	})
}
