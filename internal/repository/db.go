package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
)

// NewDB creates a new MySQL database connection pool with the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	// created_at columns are scanned into time.Time.
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed", "addr", cfg.Addr, "error", err)
		db.Close()
		return nil, err
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		client_id  VARCHAR(32)  NOT NULL,
		name       VARCHAR(64)  NOT NULL,
		key_hash   VARCHAR(255) NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_clients_client_id (client_id)
	)`,
	`CREATE TABLE IF NOT EXISTS generation_events (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		client_id   VARCHAR(32)  NULL,
		kind        VARCHAR(16)  NOT NULL,
		length      INT          NOT NULL,
		classes     VARCHAR(64)  NOT NULL DEFAULT '',
		remote_addr VARCHAR(64)  NOT NULL DEFAULT '',
		created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_generation_events_client (client_id, created_at)
	)`,
}

// Migrate creates the tables used by the service if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
