package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/ImCitizen13/diyaa-al-quran/internal/entities"
)

// ReminderConfigSource provides the effective reminder configuration.
type ReminderConfigSource interface {
	GetReminderConfig() entities.ReminderConfig
}

// ReminderRunner sends today's reminder if it is still needed.
type ReminderRunner interface {
	Run(ctx context.Context) (bool, error)
}

// ReminderScheduler fires the daily reminder at the configured local time.
type ReminderScheduler struct {
	cronJob
	settings ReminderConfigSource
	reminder ReminderRunner
}

func NewReminderScheduler(settings ReminderConfigSource, reminder ReminderRunner) *ReminderScheduler {
	return &ReminderScheduler{
		cronJob:  cronJob{name: "reminder"},
		settings: settings,
		reminder: reminder,
	}
}

// ReminderSchedule converts a reminder time into a daily cron expression.
func ReminderSchedule(cfg entities.ReminderConfig) string {
	return fmt.Sprintf("%d %d * * *", cfg.Minute, cfg.Hour)
}

// Start schedules the reminder if enabled. The first ctx passed in bounds the
// scheduler's life: once it is done the job stops and later starts are no-ops.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bindLocked(ctx, s.Stop) || s.isRunning {
		return nil
	}

	cfg := s.settings.GetReminderConfig()
	if !cfg.Enabled {
		log.Printf("[REMINDER] Scheduler disabled")
		return nil
	}
	if !cfg.Valid() {
		return fmt.Errorf("invalid reminder time %02d:%02d", cfg.Hour, cfg.Minute)
	}

	if err := s.startLocked(ReminderSchedule(cfg), s.run); err != nil {
		return err
	}
	log.Printf("[REMINDER] Scheduler started, daily at %02d:%02d", cfg.Hour, cfg.Minute)
	return nil
}

func (s *ReminderScheduler) Stop() {
	if s.stop() {
		log.Printf("[REMINDER] Scheduler stopped")
	}
}

// Reschedule applies changed settings within the original Start lifecycle.
func (s *ReminderScheduler) Reschedule() error {
	s.Stop()
	return s.Start(s.restartContext())
}

// RunNow sends the reminder immediately, bypassing the schedule.
func (s *ReminderScheduler) RunNow(ctx context.Context) (bool, error) {
	return s.reminder.Run(ctx)
}

func (s *ReminderScheduler) run() {
	if _, err := s.reminder.Run(context.Background()); err != nil {
		log.Printf("[REMINDER] %v", err)
	}
}
