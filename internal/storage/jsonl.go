package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tickScope/internal/model"
)

// JsonlStorage keeps a tick table as one JSON object per line.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// Reset truncates the table file, creating it when missing.
func (s *JsonlStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.open(os.O_TRUNC)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

// PutTickQuotes appends quotes in order. Rows are synced to disk before it
// returns.
func (s *JsonlStorage) PutTickQuotes(quotes []model.TickQuote) (err error) {
	if len(quotes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.open(os.O_APPEND)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", s.path, closeErr)
		}
	}()

	buf := bufio.NewWriter(file)
	enc := json.NewEncoder(buf)
	for _, quote := range quotes {
		if err := enc.Encode(quote); err != nil {
			return fmt.Errorf("encode tick %d: %w", quote.Tick, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", s.path, err)
	}
	return nil
}

func (s *JsonlStorage) open(mode int) (*os.File, error) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|mode, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	return file, nil
}
