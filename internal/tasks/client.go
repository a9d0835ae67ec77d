package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client runs the background queues (audit retention today) on a SQLite
// database separate from the audit store.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	running bool
}

// NewClient opens the queue database at dbPath, a file path or an in-memory
// DSN, and installs the backlite schema.
func NewClient(dbPath string, cfg Config) (*Client, error) {
	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	configurePool(db, dbPath, cfg.Workers)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          taskLogger{},
	})
	if err == nil {
		err = client.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up task queue: %w", err)
	}

	return &Client{client: client, db: db, config: cfg}, nil
}

// Register adds queues. Call before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start launches the workers; a second call is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true

	c.client.Start(ctx)
	log.Printf("Task queue running with %d workers", c.config.Workers)
}

// Stop waits for in-flight tasks until ctx expires and reports whether they
// all finished.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return true
	}
	c.running = false

	drained := c.client.Stop(ctx)
	if !drained {
		log.Println("Task queue stopped before every task finished")
	}
	return drained
}

// Running reports whether workers are active.
func (c *Client) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// Close closes the queue database. Stop first.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Add begins enqueuing tasks; finish with Save.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

// configurePool pins memory databases to one long-lived connection; a shared
// cache locks per table and vanishes with its last connection.
func configurePool(db *sql.DB, dbPath string, workers int) {
	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	db.SetMaxOpenConns(workers + 5)
	db.SetMaxIdleConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)
}

func dsn(dbPath string) string {
	if isMemory(dbPath) {
		sep := "?"
		if strings.Contains(dbPath, "?") {
			sep = "&"
		}
		return dbPath + sep + "_busy_timeout=5000"
	}
	return dbPath + "?_journal=WAL&_timeout=5000&_busy_timeout=5000"
}

// taskLogger routes backlite logs through the standard logger.
type taskLogger struct{}

func (taskLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (taskLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
