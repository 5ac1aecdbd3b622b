// Package scheduler runs the daily reminder and periodic backups on cron
// schedules read from settings.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// cronJob runs one function on one schedule and can be restarted with a new
// schedule.
type cronJob struct {
	name string

	mu        sync.RWMutex
	cron      *cron.Cron
	entryID   cron.EntryID
	isRunning bool

	// lifecycle is the context of the first Start. Restarts reuse it.
	lifecycle context.Context
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
}

// bindLocked records ctx as the job's lifecycle on first use and arranges
// for stop to run when it is done. It reports false once the lifecycle has
// ended. Must be called with mu held.
func (j *cronJob) bindLocked(ctx context.Context, stop func()) bool {
	if j.lifecycle == nil {
		j.lifecycle = ctx
		if done := ctx.Done(); done != nil {
			go func() {
				<-done
				stop()
			}()
		}
	}
	return j.lifecycle.Err() == nil
}

// restartContext returns the lifecycle context for a restart.
func (j *cronJob) restartContext() context.Context {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.lifecycle == nil {
		return context.Background()
	}
	return j.lifecycle
}

// startLocked schedules fn. Must be called with mu held.
func (j *cronJob) startLocked(schedule string, fn func()) error {
	c := newCron()
	entryID, err := c.AddFunc(schedule, fn)
	if err != nil {
		return fmt.Errorf("failed to schedule %s job: %w", j.name, err)
	}
	c.Start()

	j.cron = c
	j.entryID = entryID
	j.isRunning = true
	return nil
}

// stop waits for a running invocation to finish.
func (j *cronJob) stop() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isRunning {
		return false
	}
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.isRunning = false
	return true
}

func (j *cronJob) IsRunning() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.isRunning
}

// NextRunTime returns when the job fires next, or nil when stopped.
func (j *cronJob) NextRunTime() *time.Time {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if !j.isRunning {
		return nil
	}
	entry := j.cron.Entry(j.entryID)
	if !entry.Valid() {
		return nil
	}
	next := entry.Next
	return &next
}
