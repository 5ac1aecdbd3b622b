package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/progress"
)

// maxSnapshotSize bounds restore uploads.
const maxSnapshotSize = 8 << 20

// ProgressController handles memorization, dashboard, export, restore and
// reset.
type ProgressController struct {
	store ProgressStore
	stats StatsProvider
	now   func() time.Time
}

func NewProgressController(store ProgressStore, stats StatsProvider) *ProgressController {
	return &ProgressController{store: store, stats: stats, now: time.Now}
}

type MemorizeRequest struct {
	Entries      []entities.AyahRef `json:"entries" binding:"required,min=1"`
	MasteryLevel float64            `json:"masteryLevel"`
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// Memorize handles POST /api/memorize
// Already memorized ayahs are skipped; added counts only new ones.
func (pc *ProgressController) Memorize(c *gin.Context) {
	var req MemorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "entries are required")
		return
	}
	if req.MasteryLevel < 0 || req.MasteryLevel > 1 {
		respondBadRequest(c, "masteryLevel must be between 0 and 1")
		return
	}

	added := pc.store.Memorize(req.Entries, req.MasteryLevel)
	c.JSON(http.StatusOK, gin.H{
		"added": added,
		"goal":  pc.stats.Dashboard().Goal,
	})
}

// Unmemorize handles DELETE /api/memorize/:surah/:ayah
func (pc *ProgressController) Unmemorize(c *gin.Context) {
	surah, ok := parsePositiveParam(c, "surah")
	if !ok {
		return
	}
	ayah, ok := parsePositiveParam(c, "ayah")
	if !ok {
		return
	}

	pc.store.Unmemorize(surah, ayah)
	c.Status(http.StatusNoContent)
}

// Dashboard handles GET /api/progress
func (pc *ProgressController) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, pc.stats.Dashboard())
}

// Export handles GET /api/export
func (pc *ProgressController) Export(c *gin.Context) {
	data, err := pc.store.ExportSnapshot()
	if err != nil {
		respondInternalError(c, err, "export")
		return
	}

	filename := fmt.Sprintf("diyaa-progress-%s.json", entities.DateKey(pc.now()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(data))
}

// Restore handles POST /api/restore
// The body is an exported snapshot; it replaces all progress.
func (pc *ProgressController) Restore(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotSize+1))
	if err != nil {
		respondBadRequest(c, "failed to read body")
		return
	}
	if len(body) > maxSnapshotSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "snapshot too large"})
		return
	}

	snap, err := progress.ParseSnapshot(body)
	if err != nil {
		if errors.Is(err, progress.ErrInvalidSnapshot) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "restore")
		return
	}

	restored := pc.store.Restore(snap)
	c.JSON(http.StatusOK, gin.H{"restored": restored})
}

// Reset handles POST /api/reset
// Requires {"confirm": true}.
func (pc *ProgressController) Reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		respondBadRequest(c, "reset requires confirm=true")
		return
	}

	pc.store.ResetAll()
	respondSuccess(c, "all progress deleted")
}
