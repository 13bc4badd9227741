package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createReportsTable = `
	CREATE TABLE IF NOT EXISTS reports (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"recording" TEXT NOT NULL,
			"report" TEXT NOT NULL,
			"backend" TEXT NOT NULL,
			"source" TEXT NOT NULL,
			"label" TEXT,
			"score" REAL,
			"magnitude" REAL,
			"created_at" DATETIME NOT NULL
	);`

const createReportsIndex = `CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC);`

// OpenDB opens (or creates) the SQLite database at path and ensures the
// schema exists. ":memory:" is accepted for tests.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("OpenDB(): failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("OpenDB(): failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes
	// writers, which SQLite requires anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDB(): failed to connect to database: %w", err)
	}
	for _, stmt := range []string{createReportsTable, createReportsIndex} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("OpenDB(): failed to create schema: %w", err)
		}
	}
	return db, nil
}
