package analysis

import (
	"context"
	"errors"
	"fmt"
)

// Stage names one step of an analysis run.
type Stage string

const (
	StageStore      Stage = "store"
	StageTranscribe Stage = "transcribe"
	StageSentiment  Stage = "sentiment"
	StageSynthesize Stage = "synthesize"
	StageGenerate   Stage = "generate"
)

var (
	// ErrOrphanedRecording matches stage errors raised after the recording was
	// written but before its report was.
	ErrOrphanedRecording = errors.New("recording saved without report")

	ErrEmptyText         = errors.New("no text submitted")
	ErrSynthesisDisabled = errors.New("speech synthesis is not configured")
	ErrSentimentDisabled = errors.New("sentiment analysis is not configured")
)

// StageError reports which step failed. Recording is set when a recording
// already exists on disk for this run.
type StageError struct {
	Stage     Stage
	Recording string
	Err       error
	timedOut  bool
}

func (e *StageError) Error() string {
	if e.Recording != "" {
		return fmt.Sprintf("%s stage failed (recording %s kept without report): %v", e.Stage, e.Recording, e.Err)
	}
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) Is(target error) bool {
	return target == ErrOrphanedRecording && e.Recording != ""
}

// Timeout reports whether the stage ran out of time rather than failing.
func (e *StageError) Timeout() bool {
	return e.timedOut || errors.Is(e.Err, context.DeadlineExceeded)
}

func stageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// withRecording marks err as having left recording behind.
func withRecording(err error, recording string) error {
	var se *StageError
	if errors.As(err, &se) {
		se.Recording = recording
		return se
	}
	return &StageError{Stage: StageStore, Recording: recording, Err: err}
}
