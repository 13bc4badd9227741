package storage

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordingName(t *testing.T) {
	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{
			name:     "morning",
			at:       time.Date(2024, 6, 1, 10, 15, 30, 0, time.UTC),
			expected: "20240601-101530AM.wav",
		},
		{
			name:     "afternoon uses 12 hour clock",
			at:       time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC),
			expected: "20240601-030405PM.wav",
		},
		{
			name:     "midnight",
			at:       time.Date(2024, 1, 9, 0, 0, 7, 0, time.UTC),
			expected: "20240109-120007AM.wav",
		},
		{
			name:     "noon",
			at:       time.Date(2024, 12, 31, 12, 59, 59, 0, time.UTC),
			expected: "20241231-125959PM.wav",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RecordingName(tt.at))
		})
	}
}

func TestRecordingNameSameSecondCollides(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 15, 30, 0, time.UTC)
	assert.Equal(t, RecordingName(at), RecordingName(at.Add(999*time.Millisecond)))
}

func TestRecordingNamesSortNewestFirstAcrossDays(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 11, 59, 59, 0, time.UTC),
		time.Date(2024, 6, 1, 9, 0, 1, 0, time.UTC),
	}
	names := make([]string, 0, len(times))
	for _, at := range times {
		names = append(names, RecordingName(at))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	assert.Equal(t, []string{
		"20240602-090000AM.wav",
		"20240601-090001AM.wav",
		"20240601-090000AM.wav",
		"20231231-115959AM.wav",
	}, names)
}

func TestReportName(t *testing.T) {
	assert.Equal(t, "20240601-101530AM.wav.txt", ReportName("20240601-101530AM.wav"))
}

func TestIsRecording(t *testing.T) {
	assert.True(t, IsRecording("a.wav"))
	assert.True(t, IsRecording("a.WAV"))
	assert.False(t, IsRecording("a.wav.txt"))
	assert.False(t, IsRecording("wav"))
	assert.False(t, IsRecording(".wav"))
	assert.False(t, IsRecording("a.mp3"))
}
