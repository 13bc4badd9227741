package models

import (
	"time"

	"github.com/apolaki-ghub/Project3/internal/sentiment"
)

// Report sources
const (
	SourceUpload = "upload"
	SourceText   = "text"
)

// ReportEntry is one indexed analysis: a recording, its report, and the
// sentiment that went into it when the backend produced one.
type ReportEntry struct {
	ID        int64                 `json:"id"`
	Recording string                `json:"recording"`
	Report    string                `json:"report"`
	Backend   string                `json:"backend"`
	Source    string                `json:"source"`
	Label     string                `json:"label,omitempty"`
	Sentiment *sentiment.Assessment `json:"sentiment,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// RecordingItem is a row of the listing page.
type RecordingItem struct {
	Name      string `json:"name"`
	Report    string `json:"report,omitempty"`
	HasReport bool   `json:"has_report"`
}
