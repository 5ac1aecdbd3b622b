package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// SnapshotExporter produces the export document to back up.
type SnapshotExporter interface {
	ExportSnapshot() (string, error)
}

// BackupSaver writes backup files.
type BackupSaver interface {
	Save(data []byte) (string, error)
}

// BackupStatusRecorder remembers the last successful backup.
type BackupStatusRecorder interface {
	SetBackupStatus(file string, at time.Time) error
}

// BackupSnapshotTask writes the current progress export to the backup directory.
type BackupSnapshotTask struct {
	// Reason is "schedule" or "manual".
	Reason string `json:"reason"`
}

func (t BackupSnapshotTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backup_snapshot",
		MaxAttempts: 3,
		Backoff:     1 * time.Minute,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func BackupSnapshotProcessor(exporter SnapshotExporter, saver BackupSaver, recorder BackupStatusRecorder) backlite.QueueProcessor[BackupSnapshotTask] {
	return func(ctx context.Context, task BackupSnapshotTask) error {
		if exporter == nil || saver == nil {
			return fmt.Errorf("backup not configured")
		}

		data, err := exporter.ExportSnapshot()
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}

		name, err := saver.Save([]byte(data))
		if err != nil {
			return fmt.Errorf("save backup: %w", err)
		}

		if recorder != nil {
			if err := recorder.SetBackupStatus(name, time.Now()); err != nil {
				log.Printf("[TASK] Failed to record backup status: %v", err)
			}
		}

		log.Printf("[TASK] Backup %s written (%s)", name, task.Reason)
		return nil
	}
}

func NewBackupSnapshotQueue(exporter SnapshotExporter, saver BackupSaver, recorder BackupStatusRecorder) backlite.Queue {
	return backlite.NewQueue(BackupSnapshotProcessor(exporter, saver, recorder))
}

// EnqueueBackup queues a backup followed by a cleanup of backups older than
// retentionDays.
func (c *Client) EnqueueBackup(reason string, retentionDays int) error {
	_, err := c.Add(
		BackupSnapshotTask{Reason: reason},
		CleanupBackupsTask{RetentionDays: retentionDays},
	).Save()
	if err != nil {
		return fmt.Errorf("enqueue backup: %w", err)
	}
	return nil
}
