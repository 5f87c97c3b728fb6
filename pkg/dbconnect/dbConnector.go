package dbconnect

import (
	"database/sql"
	"fmt"
	"stonepay_admin/config"
	"stonepay_admin/pkg/logger"
	"sync"
	"time"
)

const (
	DefaultMaxRetries = 10
	dbMaxOpenConns    = 10
	retryDelay        = 5 * time.Second
)

// Connector opens a *sql.DB lazily, retrying while the server comes up. The
// driver must be registered by the caller (see the postgres and mysql packages).
type Connector struct {
	cfg        config.DbConfig
	log        logger.Logger
	db         *sql.DB
	mu         sync.Mutex
	MaxRetries int
	RetryDelay time.Duration
}

func NewConnector(cfg config.DbConfig, log logger.Logger) *Connector {
	return &Connector{cfg: cfg, log: log, MaxRetries: DefaultMaxRetries, RetryDelay: retryDelay}
}

func (c *Connector) Dialect() string {
	return c.cfg.DriverName()
}

func (c *Connector) Connect() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	var err error
	driver := c.cfg.DriverName()
	for i := 0; i < c.MaxRetries; i++ {
		var db *sql.DB
		db, err = sql.Open(driver, c.cfg.GetConnectionString())
		if err != nil {
			c.log.Error("Failed to open %s (attempt %d/%d): %v", driver, i+1, c.MaxRetries, err)
			time.Sleep(c.RetryDelay)
			continue
		}

		db.SetMaxOpenConns(dbMaxOpenConns)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err = db.Ping(); err != nil {
			c.log.Error("Failed to ping %s (attempt %d/%d): %v", driver, i+1, c.MaxRetries, err)
			db.Close()
			time.Sleep(c.RetryDelay)
			continue
		}

		c.log.Log("Successfully connected to %s", driver)
		c.db = db
		return c.db, nil
	}
	return nil, fmt.Errorf("connect to %s: %w", driver, err)
}

func (c *Connector) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return fmt.Errorf("database connection is not established")
	}

	if err := c.db.Ping(); err != nil {
		c.db.Close()
		c.db = nil
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
