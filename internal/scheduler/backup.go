package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/ImCitizen13/diyaa-al-quran/internal/settingsstore"
)

// BackupConfigSource provides the effective backup configuration.
type BackupConfigSource interface {
	GetBackupConfig() settingsstore.BackupConfig
}

// BackupEnqueuer queues a backup run.
type BackupEnqueuer interface {
	EnqueueBackup(reason string, retentionDays int) error
}

// BackupScheduler enqueues backups on the configured cron schedule. The
// backups themselves run on the task queue.
type BackupScheduler struct {
	cronJob
	settings      BackupConfigSource
	queue         BackupEnqueuer
	retentionDays int
}

func NewBackupScheduler(settings BackupConfigSource, queue BackupEnqueuer, retentionDays int) *BackupScheduler {
	return &BackupScheduler{
		cronJob:       cronJob{name: "backup"},
		settings:      settings,
		queue:         queue,
		retentionDays: retentionDays,
	}
}

func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bindLocked(ctx, s.Stop) || s.isRunning {
		return nil
	}

	cfg := s.settings.GetBackupConfig()
	if !cfg.Enabled {
		log.Printf("[BACKUP] Scheduler disabled")
		return nil
	}
	if err := settingsstore.ValidateCronSchedule(cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", cfg.Schedule, err)
	}

	if err := s.startLocked(cfg.Schedule, func() { s.enqueue("schedule") }); err != nil {
		return err
	}
	log.Printf("[BACKUP] Scheduler started with schedule '%s' (%s)",
		cfg.Schedule, settingsstore.GetCronDescription(cfg.Schedule))
	return nil
}

func (s *BackupScheduler) Stop() {
	if s.stop() {
		log.Printf("[BACKUP] Scheduler stopped")
	}
}

// Reschedule applies changed settings within the original Start lifecycle.
func (s *BackupScheduler) Reschedule() error {
	s.Stop()
	return s.Start(s.restartContext())
}

// RunNow enqueues a backup immediately.
func (s *BackupScheduler) RunNow() error {
	return s.queue.EnqueueBackup("manual", s.retentionDays)
}

func (s *BackupScheduler) enqueue(reason string) {
	if err := s.queue.EnqueueBackup(reason, s.retentionDays); err != nil {
		log.Printf("[BACKUP] %v", err)
	}
}
