package tasks

import (
	"context"
	"time"
)

// InlineBackup runs the backup and cleanup processors synchronously. It
// stands in for the queue when background tasks are disabled.
type InlineBackup struct {
	snapshot func(context.Context, BackupSnapshotTask) error
	cleanup  func(context.Context, CleanupBackupsTask) error
	timeout  time.Duration
}

func NewInlineBackup(exporter SnapshotExporter, saver BackupSaver, recorder BackupStatusRecorder, pruner BackupPruner) *InlineBackup {
	return &InlineBackup{
		snapshot: BackupSnapshotProcessor(exporter, saver, recorder),
		cleanup:  CleanupBackupsProcessor(pruner),
		timeout:  2 * time.Minute,
	}
}

// EnqueueBackup writes a backup and prunes old ones before returning.
func (b *InlineBackup) EnqueueBackup(reason string, retentionDays int) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.snapshot(ctx, BackupSnapshotTask{Reason: reason}); err != nil {
		return err
	}
	return b.cleanup(ctx, CleanupBackupsTask{RetentionDays: retentionDays})
}
