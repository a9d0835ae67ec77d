package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	dbaudit "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/demo"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/presenter"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/session"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired application.
type App struct {
	Router    *gin.Engine
	Catalog   *catalog.Guarded
	Adapter   *presenter.BookAdapter
	Database  *database.Database
	Audit     *audit.Service
	Tasks     *tasks.Client
	Scheduler *scheduler.AuditCleanupScheduler
	Limiter   *session.RateLimiter

	cancel context.CancelFunc
}

// Build wires every component from cfg without starting background work.
func Build(cfg *config.Config, version string) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{Database: db}
	fail := func(err error) (*App, error) {
		app.close()
		return nil, err
	}

	app.Audit = audit.NewService(dbaudit.NewRepository(db.DB))

	app.Catalog = catalog.NewGuarded(nil)
	app.Adapter = presenter.NewBookAdapter(app.Catalog)
	app.Adapter.OnChange(func(revision uint64) {
		log.Printf("Catalog changed: revision %d, %d books", revision, app.Catalog.Len())
	})

	submissions := services.NewSubmissionService(app.Catalog, app.Adapter)
	submissions.SetAuditor(app.Audit)
	pipeline := importers.NewPipeline(submissions)

	var demoMiddleware *demo.Middleware
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - adding books will be blocked")
		result, err := demo.Seed(submissions)
		if err != nil {
			return fail(err)
		}
		log.Printf("Seeded demo catalog with %d books", result.Accepted)
		demoMiddleware = demo.NewMiddleware(true)
	}

	if cfg.Tasks.Enabled {
		app.Tasks, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			return fail(fmt.Errorf("failed to initialize task queue: %w", err))
		}
		app.Tasks.Register(tasks.NewCleanupAuditEventsQueue(app.Audit))
	}

	app.Scheduler = scheduler.NewAuditCleanupScheduler(cfg.Audit.CleanupSchedule, app.cleanupJob(cfg.Audit.RetentionDays))

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fail(fmt.Errorf("failed to get SQL DB for sessions: %w", err))
	}
	sessions, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize session manager: %w", err))
	}

	csrfSecret, generated, err := session.ResolveSecret(cfg.Session.Secret)
	if err != nil {
		return fail(err)
	}
	if generated {
		log.Printf("Generated session secret (set SESSION_SECRET to keep forms valid across restarts)")
	}

	if cfg.RateLimit.SubmissionsPerMinute > 0 {
		limits := session.DefaultRateLimitConfig()
		limits.MaxRequests = cfg.RateLimit.SubmissionsPerMinute
		app.Limiter = session.NewRateLimiter(limits)
	}

	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:        app.Catalog,
		Rows:           app.Adapter,
		Submissions:    submissions,
		Importer:       pipeline,
		Database:       db,
		ExportAuditor:  app.Audit,
		AuditReader:    app.Audit,
		Sessions:       sessions,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		RateLimiter:    app.Limiter,
		DemoMiddleware: demoMiddleware,
		TemplatesPath:  cfg.UI.TemplatesPath,
		Version:        version,
	})

	return app, nil
}

// cleanupJob enqueues retention work on the task queue, or runs it inline
// when the queue is disabled.
func (app *App) cleanupJob(retentionDays int) scheduler.CleanupJob {
	return func(ctx context.Context) error {
		if app.Tasks != nil {
			id, err := app.Tasks.EnqueueAuditCleanup(retentionDays, "schedule")
			if err != nil {
				return err
			}
			log.Printf("Audit cleanup queued as task %s", id)
			return nil
		}

		if retentionDays <= 0 {
			retentionDays = tasks.DefaultAuditRetentionDays
		}
		deleted, err := app.Audit.DeleteOldEvents(time.Duration(retentionDays) * 24 * time.Hour)
		if err != nil {
			return err
		}
		log.Printf("Audit cleanup removed %d events", deleted)
		return nil
	}
}

// Start launches the task workers and the cleanup schedule.
func (app *App) Start(ctx context.Context) error {
	ctx, app.cancel = context.WithCancel(ctx)

	if app.Tasks != nil {
		app.Tasks.Start(ctx)
	}

	if err := app.Scheduler.Start(ctx); err != nil {
		app.cancel()
		return err
	}
	return nil
}

// Shutdown stops background work, flushes pending audit writes and closes
// the stores.
func (app *App) Shutdown(ctx context.Context) {
	app.Scheduler.Stop()

	if app.Tasks != nil {
		app.Tasks.Stop(ctx)
	}
	if app.cancel != nil {
		app.cancel()
	}

	app.Audit.Wait()
	app.close()
}

func (app *App) close() {
	if app.Limiter != nil {
		app.Limiter.Stop()
	}
	if app.Tasks != nil {
		if err := app.Tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
		app.Tasks = nil
	}
	if app.Database != nil {
		if err := app.Database.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		app.Database = nil
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then give in-flight requests the timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	app, err := Build(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Start(context.Background()); err != nil {
		app.Shutdown(context.Background())
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	Serve(app.Router, cfg, app.Shutdown)
}
