package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

type SettingsController struct {
	store ProgressStore
}

func NewSettingsController(store ProgressStore) *SettingsController {
	return &SettingsController{store: store}
}

type SettingsResponse struct {
	entities.Settings
	DailyGoalOptions []int `json:"dailyGoalOptions"`
}

// GetSettings handles GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, SettingsResponse{
		Settings:         sc.store.Settings(),
		DailyGoalOptions: entities.DailyGoalOptions,
	})
}

// UpdateSettings handles PATCH /api/settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var patch entities.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid settings")
		return
	}
	if patch.DailyGoal != nil && *patch.DailyGoal <= 0 {
		respondBadRequest(c, "dailyGoal must be positive")
		return
	}

	settings := sc.store.UpdateSettings(patch)
	c.JSON(http.StatusOK, SettingsResponse{
		Settings:         settings,
		DailyGoalOptions: entities.DailyGoalOptions,
	})
}
