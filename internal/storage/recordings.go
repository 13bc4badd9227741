/**
* Name: 			recordings.go
* Description: 		Flat upload directory holding recordings and their reports
* Workflow: 		save recording, write report, list recordings, resolve names for download
 */

package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

// RecordingStore owns the upload directory. Recordings and reports live side
// by side and are paired by name prefix.
type RecordingStore struct {
	root string
}

func NewRecordingStore(dir string) (*RecordingStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("NewRecordingStore(): failed to create upload directory: %w", err)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("NewRecordingStore(): failed to resolve upload directory: %w", err)
	}
	return &RecordingStore{root: root}, nil
}

func (s *RecordingStore) Root() string {
	return s.root
}

// SaveRecording copies src verbatim into the store under name, replacing any
// existing file. The returned path is absolute.
func (s *RecordingStore) SaveRecording(name string, src io.Reader) (string, error) {
	if err := checkBaseName(name); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create recording: %w", err)
	}

	// A partial recording is removed so a failed save leaves nothing behind.
	_, err = io.Copy(file, src)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write recording: %w", err)
	}
	return path, nil
}

// WriteReport persists the report next to its recording, overwriting any
// previous report of the same name.
func (s *RecordingStore) WriteReport(recording, report string) (string, error) {
	if err := checkBaseName(recording); err != nil {
		return "", err
	}
	name := ReportName(recording)
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return name, nil
}

// List returns recording names, newest first.
func (s *RecordingStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsRecording(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// HasReport reports whether the sidecar report for recording exists.
func (s *RecordingStore) HasReport(recording string) bool {
	_, err := s.Resolve(ReportName(recording))
	return err == nil
}

// Resolve maps a caller supplied name to a regular file inside the store.
// Anything that is not a plain file name, or that resolves outside the root
// through a symlink, is refused.
func (s *RecordingStore) Resolve(name string) (string, error) {
	if err := checkBaseName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, name)
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	realRoot, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(realRoot, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidName
	}

	info, err := os.Stat(real)
	if err != nil {
		return "", ErrNotFound
	}
	if !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return real, nil
}

func checkBaseName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	if filepath.Base(name) != name || filepath.IsAbs(name) {
		return ErrInvalidName
	}
	return nil
}
