package http

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/settingsstore"
)

// ReminderController manages the daily reminder schedule.
type ReminderController struct {
	settings  ReminderSettings
	scheduler ReminderControl
}

func NewReminderController(settings ReminderSettings, scheduler ReminderControl) *ReminderController {
	return &ReminderController{settings: settings, scheduler: scheduler}
}

type ReminderResponse struct {
	settingsstore.ReminderConfigInfo
	Time    string `json:"time"`
	Running bool   `json:"running"`
}

type updateReminderRequest struct {
	Enabled *bool  `json:"enabled"`
	Time    string `json:"time"`
}

func (rc *ReminderController) response() ReminderResponse {
	info := rc.settings.GetReminderConfigInfo()
	resp := ReminderResponse{
		ReminderConfigInfo: info,
		Time:               formatClock(info.Hour, info.Minute),
	}
	if rc.scheduler != nil {
		resp.Running = rc.scheduler.IsRunning()
	}
	return resp
}

// GetReminder handles GET /api/reminder
func (rc *ReminderController) GetReminder(c *gin.Context) {
	c.JSON(http.StatusOK, rc.response())
}

// UpdateReminder handles PUT /api/reminder
// Accepts {"enabled": bool, "time": "HH:MM"}; omitted fields keep their value.
func (rc *ReminderController) UpdateReminder(c *gin.Context) {
	var req updateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid reminder settings")
		return
	}

	cfg := rc.settings.GetReminderConfigInfo().ReminderConfig
	if req.Enabled != nil {
		cfg.Enabled = *req.Enabled
	}
	if req.Time != "" {
		hour, minute, err := settingsstore.ParseReminderTime(req.Time)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		cfg.Hour, cfg.Minute = hour, minute
	}

	if err := rc.settings.SetReminderConfig(cfg); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if rc.scheduler != nil {
		if err := rc.scheduler.Reschedule(); err != nil {
			log.Printf("[REMINDER] Failed to reschedule: %v", err)
		}
	}

	c.JSON(http.StatusOK, rc.response())
}

// TestReminder handles POST /api/reminder/test
func (rc *ReminderController) TestReminder(c *gin.Context) {
	if rc.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "reminders are not available"})
		return
	}
	sent, err := rc.scheduler.RunNow(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "reminder")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

func formatClock(hour, minute int) string {
	if !(entities.ReminderConfig{Hour: hour, Minute: minute}).Valid() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
