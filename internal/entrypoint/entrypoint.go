package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ImCitizen13/diyaa-al-quran/internal/applock"
	"github.com/ImCitizen13/diyaa-al-quran/internal/config"
	http_controllers "github.com/ImCitizen13/diyaa-al-quran/internal/http"
	"github.com/ImCitizen13/diyaa-al-quran/internal/reminder"
	"github.com/ImCitizen13/diyaa-al-quran/internal/scheduler"
	"github.com/ImCitizen13/diyaa-al-quran/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := shutdownTimeout(cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before the store is drained
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
	return nil
}

// shutdownTimeout falls back to two seconds when unset.
func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Global.ShutdownTimeoutInSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
}

func Run(cfg *config.Config, version string) error {
	log.Printf("Starting Diyaa al-Quran v%s", version)

	ctx := context.Background()
	app, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	// Backups run on the task queue when enabled, inline otherwise
	var backupQueue scheduler.BackupEnqueuer
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewBackupSnapshotQueue(app.Store, app.Backups, app.Settings),
			tasks.NewCleanupBackupsQueue(app.Backups),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)
		// Covers early returns below; after a normal shutdown both are no-ops.
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
			defer cancel()
			taskClient.Stop(stopCtx)
			taskCtxCancel()
		}()
		backupQueue = taskClient
	} else {
		backupQueue = tasks.NewInlineBackup(app.Store, app.Backups, app.Settings, app.Backups)
	}

	reminderScheduler := scheduler.NewReminderScheduler(app.Settings, reminder.New(app.Stats, nil))
	if err := reminderScheduler.Start(ctx); err != nil {
		log.Printf("[REMINDER] Failed to start scheduler: %v", err)
	}
	backupScheduler := scheduler.NewBackupScheduler(app.Settings, backupQueue, cfg.Backup.RetentionDays)
	if err := backupScheduler.Start(ctx); err != nil {
		log.Printf("[BACKUP] Failed to start scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Quran:            app.Quran,
		Progress:         app.Store,
		Stats:            app.Stats,
		Storage:          app.backend,
		StorageName:      app.backend.name,
		Version:          version,
		ReminderSettings: app.Settings,
		Reminder:         reminderScheduler,
		BackupSettings:   app.Settings,
		Backups:          backupScheduler,
		BackupFiles:      app.Backups,
	}

	if cfg.AppLock.Enabled {
		sqlDB, err := app.DB.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
		sessionManager, err := applock.NewSessionManager(sqlDB, cfg.AppLock)
		if err != nil {
			return fmt.Errorf("failed to initialize session manager: %w", err)
		}
		lockService := applock.NewService(app.DB.KV(), cfg.AppLock)
		routerCfg.SessionManager = sessionManager
		routerCfg.LockMiddleware = applock.NewMiddleware(lockService, sessionManager, cfg.AppLock)
		routerCfg.LockController = applock.NewController(lockService, sessionManager, cfg.AppLock)

		hasPIN, err := lockService.HasPIN(ctx)
		if err != nil {
			log.Printf("[APPLOCK] Failed to read PIN state: %v", err)
		} else if !hasPIN {
			log.Printf("[APPLOCK] Enabled but no PIN set. POST /api/lock/pin to set one.")
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		reminderScheduler.Stop()
		backupScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if err := app.Store.Flush(ctx); err != nil {
			log.Printf("[STORE] Flush on shutdown: %v", err)
		}
	}

	return Serve(router, cfg, onShutdown)
}
