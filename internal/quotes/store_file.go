package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all records in a single JSON document that is read in
// full and rewritten in full on every mutation. Writes go through a temp
// file and an atomic rename so a crash never leaves a torn document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore constructs a store backed by the document at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}
	for _, existing := range records {
		if existing.ID == rec.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
	}
	records = append(records, rec)
	return s.writeAll(records)
}

func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *FileStore) FindByID(ctx context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *FileStore) UpdateStatus(ctx context.Context, id string, status Status) (*Record, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID != id {
			continue
		}
		records[i].Status = status
		if err := s.writeAll(records); err != nil {
			return nil, err
		}
		rec := records[i]
		return &rec, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// readAll loads the whole document. A missing file reads as empty.
func (s *FileStore) readAll() ([]Record, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("quotes: read store: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("quotes: parse store: %w", err)
	}
	return records, nil
}

// writeAll rewrites the whole document via temp file + rename.
func (s *FileStore) writeAll(records []Record) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("quotes: encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("quotes: create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "quotes-*.json")
	if err != nil {
		return fmt.Errorf("quotes: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("quotes: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("quotes: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("quotes: replace store: %w", err)
	}
	return nil
}
