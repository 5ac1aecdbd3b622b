package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/progress"
	"github.com/ImCitizen13/diyaa-al-quran/internal/stats"
)

func TestProgressController_Memorize(t *testing.T) {
	t.Run("adds new ayahs and skips known ones", func(t *testing.T) {
		app := setupTestApp(t)
		body := MemorizeRequest{Entries: []entities.AyahRef{
			{SurahNumber: 1, AyahNumber: 1},
			{SurahNumber: 1, AyahNumber: 2},
		}}

		w := app.do(t, http.MethodPost, "/api/memorize", body)
		require.Equal(t, http.StatusOK, w.Code)
		response := decode[struct {
			Added int                `json:"added"`
			Goal  stats.GoalProgress `json:"goal"`
		}](t, w)
		assert.Equal(t, 2, response.Added)
		assert.Equal(t, 2, response.Goal.TodayCount)

		w = app.do(t, http.MethodPost, "/api/memorize", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, decode[struct {
			Added int `json:"added"`
		}](t, w).Added)
		assert.True(t, app.store.IsMemorized(1, 2))
	})

	t.Run("rejects missing entries", func(t *testing.T) {
		app := setupTestApp(t)

		w := app.do(t, http.MethodPost, "/api/memorize", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = app.do(t, http.MethodPost, "/api/memorize", `{"entries":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects out of range mastery", func(t *testing.T) {
		app := setupTestApp(t)
		body := MemorizeRequest{
			Entries:      []entities.AyahRef{{SurahNumber: 1, AyahNumber: 1}},
			MasteryLevel: 1.5,
		}

		w := app.do(t, http.MethodPost, "/api/memorize", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, app.store.IsMemorized(1, 1))
	})
}

func TestProgressController_Unmemorize(t *testing.T) {
	app := setupTestApp(t)
	app.store.Memorize([]entities.AyahRef{{SurahNumber: 4, AyahNumber: 6}}, 0)

	w := app.do(t, http.MethodDelete, "/api/memorize/4/6", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, app.store.IsMemorized(4, 6))

	// Daily counts are not rolled back.
	assert.Equal(t, 1, app.store.DailyCount("2026-10-17"))

	w = app.do(t, http.MethodDelete, "/api/memorize/4/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressController_Dashboard(t *testing.T) {
	app := setupTestApp(t)
	app.store.UpdateSettings(entities.SettingsPatch{DailyGoal: intPtr(3)})
	app.store.Memorize([]entities.AyahRef{
		{SurahNumber: 4, AyahNumber: 1},
		{SurahNumber: 4, AyahNumber: 2},
		{SurahNumber: 4, AyahNumber: 3},
	}, 0)

	w := app.do(t, http.MethodGet, "/api/progress", nil)

	require.Equal(t, http.StatusOK, w.Code)
	dashboard := decode[stats.Dashboard](t, w)
	assert.Equal(t, 3, dashboard.Overall.Memorized)
	assert.Equal(t, 38, dashboard.Overall.Total)
	assert.Equal(t, 1, dashboard.Streak)
	assert.True(t, dashboard.Goal.Met)
	require.Len(t, dashboard.RecentActivity, stats.RecentDays)
	assert.Equal(t, "2026-10-17", dashboard.RecentActivity[stats.RecentDays-1].Date)
	require.Len(t, dashboard.Juz, 3)
	assert.Equal(t, 3, dashboard.Juz[2].Memorized)
}

func TestProgressController_ExportRestore(t *testing.T) {
	source := setupTestApp(t)
	source.store.Memorize([]entities.AyahRef{
		{SurahNumber: 2, AyahNumber: 5},
		{SurahNumber: 1, AyahNumber: 7},
	}, 0.75)

	w := source.do(t, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="diyaa-progress-`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.json"`), disposition)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "\n  \"memorizedAyahs\"")

	snap, err := progress.ParseSnapshot(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, snap.MemorizedAyahs, 2)
	assert.Equal(t, 1, snap.MemorizedAyahs[0].SurahNumber)

	target := setupTestApp(t)
	target.store.Memorize([]entities.AyahRef{{SurahNumber: 3, AyahNumber: 3}}, 0)

	w = target.do(t, http.MethodPost, "/api/restore", w.Body.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"restored":2}`, w.Body.String())
	assert.True(t, target.store.IsMemorized(2, 5))
	assert.False(t, target.store.IsMemorized(3, 3))
	assert.Equal(t, 0.75, target.store.MasteryLevel(1, 7))
	require.NoError(t, target.store.Flush(context.Background()))
}

func TestProgressController_RestoreRejectsGarbage(t *testing.T) {
	app := setupTestApp(t)
	app.store.Memorize([]entities.AyahRef{{SurahNumber: 1, AyahNumber: 1}}, 0)

	for _, body := range []string{`not json`, `{}`, `[]`} {
		w := app.do(t, http.MethodPost, "/api/restore", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.True(t, app.store.IsMemorized(1, 1))
}

func TestProgressController_Reset(t *testing.T) {
	app := setupTestApp(t)
	app.store.Memorize([]entities.AyahRef{{SurahNumber: 1, AyahNumber: 1}}, 0)

	w := app.do(t, http.MethodPost, "/api/reset", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, app.store.IsMemorized(1, 1))

	w = app.do(t, http.MethodPost, "/api/reset", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, app.store.MemorizedCount())
	assert.Equal(t, 0, app.store.DailyCount("2026-10-17"))
}

func intPtr(v int) *int { return &v }
