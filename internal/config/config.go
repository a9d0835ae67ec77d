package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Audit
		Tasks
		Session
		RateLimit
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn, info
	}
	UI struct {
		TemplatesPath string // Empty means use the embedded templates
	}
	Audit struct {
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 * * * *" = hourly
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Session struct {
		Secret        string // Hex or raw; auto-generated if empty
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	RateLimit struct {
		SubmissionsPerMinute int // 0 disables the limit
	}
	Demo struct {
		Enabled bool // Seed sample books and block writes
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("templates_path", "")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 * * * *") // Hourly at :00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Session defaults
	v.SetDefault("session_secret", "")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	v.SetDefault("submission_rate_limit", 60)

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Session: Session{
			Secret:        v.GetString("SESSION_SECRET"),
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		RateLimit: RateLimit{
			SubmissionsPerMinute: v.GetInt("SUBMISSION_RATE_LIMIT"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
