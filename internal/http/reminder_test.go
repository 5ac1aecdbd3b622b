package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
	"github.com/ImCitizen13/diyaa-al-quran/internal/settingsstore"
)

type fakeReminderSettings struct {
	cfg    entities.ReminderConfig
	source string
	err    error
}

func (f *fakeReminderSettings) GetReminderConfigInfo() settingsstore.ReminderConfigInfo {
	return settingsstore.ReminderConfigInfo{ReminderConfig: f.cfg, Source: f.source}
}

func (f *fakeReminderSettings) SetReminderConfig(cfg entities.ReminderConfig) error {
	if f.err != nil {
		return f.err
	}
	f.cfg = cfg
	f.source = settingsstore.SourceDatabase
	return nil
}

type fakeReminderControl struct {
	rescheduled int
	sent        bool
	running     bool
}

func (f *fakeReminderControl) Reschedule() error {
	f.rescheduled++
	f.running = true
	return nil
}

func (f *fakeReminderControl) RunNow(context.Context) (bool, error) { return f.sent, nil }
func (f *fakeReminderControl) IsRunning() bool                      { return f.running }

func setupReminderApp(t *testing.T) (*testApp, *fakeReminderSettings, *fakeReminderControl) {
	t.Helper()
	settings := &fakeReminderSettings{cfg: entities.DefaultReminderConfig(), source: settingsstore.SourceDefault}
	control := &fakeReminderControl{}
	app := setupTestApp(t, func(cfg *RouterConfig) {
		cfg.ReminderSettings = settings
		cfg.Reminder = control
	})
	return app, settings, control
}

func TestReminderController_Get(t *testing.T) {
	app, _, _ := setupReminderApp(t)

	w := app.do(t, http.MethodGet, "/api/reminder", nil)

	require.Equal(t, http.StatusOK, w.Code)
	response := decode[ReminderResponse](t, w)
	assert.False(t, response.Enabled)
	assert.Equal(t, "20:00", response.Time)
	assert.Equal(t, 20, response.Hour)
	assert.Equal(t, settingsstore.SourceDefault, response.Source)
	assert.False(t, response.Running)
}

func TestReminderController_Update(t *testing.T) {
	t.Run("saves and reschedules", func(t *testing.T) {
		app, settings, control := setupReminderApp(t)

		w := app.do(t, http.MethodPut, "/api/reminder", `{"enabled":true,"time":"06:05"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entities.ReminderConfig{Enabled: true, Hour: 6, Minute: 5}, settings.cfg)
		assert.Equal(t, 1, control.rescheduled)
		response := decode[ReminderResponse](t, w)
		assert.Equal(t, "06:05", response.Time)
		assert.True(t, response.Running)
		assert.Equal(t, settingsstore.SourceDatabase, response.Source)
	})

	t.Run("omitted time keeps current", func(t *testing.T) {
		app, settings, _ := setupReminderApp(t)

		w := app.do(t, http.MethodPut, "/api/reminder", `{"enabled":true}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entities.ReminderConfig{Enabled: true, Hour: 20}, settings.cfg)
	})

	t.Run("rejects bad time", func(t *testing.T) {
		app, settings, control := setupReminderApp(t)

		w := app.do(t, http.MethodPut, "/api/reminder", `{"time":"25:00"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, entities.DefaultReminderConfig(), settings.cfg)
		assert.Zero(t, control.rescheduled)
	})

	t.Run("storage error is a bad request", func(t *testing.T) {
		app, settings, _ := setupReminderApp(t)
		settings.err = errors.New("reminder time out of range")

		w := app.do(t, http.MethodPut, "/api/reminder", `{"enabled":false}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReminderController_Test(t *testing.T) {
	app, _, control := setupReminderApp(t)
	control.sent = true

	w := app.do(t, http.MethodPost, "/api/reminder/test", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sent":true}`, w.Body.String())
}

func TestReminderRoutes_AbsentWithoutSettings(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, http.MethodGet, "/api/reminder", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "07:09", formatClock(7, 9))
	assert.Equal(t, "23:59", formatClock(23, 59))
	assert.Equal(t, "", formatClock(24, 0))
}
