package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultBackupRetentionDays applies when a task carries no retention.
const DefaultBackupRetentionDays = 30

// BackupPruner deletes backups older than a retention period.
type BackupPruner interface {
	Prune(retention time.Duration) (int64, error)
}

// CleanupBackupsTask removes backup files older than RetentionDays.
type CleanupBackupsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupBackupsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_backups",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func CleanupBackupsProcessor(pruner BackupPruner) backlite.QueueProcessor[CleanupBackupsTask] {
	return func(ctx context.Context, task CleanupBackupsTask) error {
		if pruner == nil {
			return fmt.Errorf("backup pruner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = DefaultBackupRetentionDays
		}

		deleted, err := pruner.Prune(time.Duration(retentionDays) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("cleanup backups: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d backups older than %d days", deleted, retentionDays)
		return nil
	}
}

func NewCleanupBackupsQueue(pruner BackupPruner) backlite.Queue {
	return backlite.NewQueue(CleanupBackupsProcessor(pruner))
}
