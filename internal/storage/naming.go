package storage

import (
	"strings"
	"time"
)

const (
	// nameLayout is fixed width so that descending string order is newest first
	// within a day and across days.
	nameLayout = "20060102-030405PM"

	RecordingExt = ".wav"
	ReportExt    = ".txt"
)

// RecordingName derives the storage name for a recording created at t.
// Two recordings made within the same second share a name.
func RecordingName(t time.Time) string {
	return t.Format(nameLayout) + RecordingExt
}

// ReportName returns the sidecar report name paired with a recording.
func ReportName(recording string) string {
	return recording + ReportExt
}

// IsRecording reports whether name carries the allowed audio extension.
func IsRecording(name string) bool {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return false
	}
	return strings.EqualFold(name[i:], RecordingExt)
}
