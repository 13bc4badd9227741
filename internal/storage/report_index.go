package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apolaki-ghub/Project3/internal/models"
	"github.com/apolaki-ghub/Project3/internal/sentiment"
)

// ReportIndex records every successfully written report so the history can be
// queried without re-reading the upload directory.
type ReportIndex struct {
	db *sql.DB
}

func NewReportIndex(db *sql.DB) *ReportIndex {
	return &ReportIndex{db: db}
}

func (i *ReportIndex) Add(ctx context.Context, entry *models.ReportEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var label sql.NullString
	var score, magnitude sql.NullFloat64
	if entry.Sentiment != nil {
		label = sql.NullString{String: entry.Label, Valid: entry.Label != ""}
		score = sql.NullFloat64{Float64: entry.Sentiment.Score, Valid: true}
		magnitude = sql.NullFloat64{Float64: entry.Sentiment.Magnitude, Valid: true}
	}

	res, err := i.db.ExecContext(ctx,
		`INSERT INTO reports(recording, report, backend, source, label, score, magnitude, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Recording, entry.Report, entry.Backend, entry.Source,
		label, score, magnitude, entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report entry: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (i *ReportIndex) Recent(ctx context.Context, limit int) ([]models.ReportEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := i.db.QueryContext(ctx, `
		SELECT id, recording, report, backend, source, label, score, magnitude, created_at
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ReportEntry, 0)
	for rows.Next() {
		var e models.ReportEntry
		var label sql.NullString
		var score, magnitude sql.NullFloat64

		if err := rows.Scan(&e.ID, &e.Recording, &e.Report, &e.Backend, &e.Source,
			&label, &score, &magnitude, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report entry: %w", err)
		}
		if label.Valid {
			e.Label = label.String
		}
		if score.Valid && magnitude.Valid {
			e.Sentiment = &sentiment.Assessment{Score: score.Float64, Magnitude: magnitude.Float64}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (i *ReportIndex) Ping(ctx context.Context) error {
	return i.db.PingContext(ctx)
}
