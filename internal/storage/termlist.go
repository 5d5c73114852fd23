package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// TermListStore persists a customized moderation term list as a JSON array on
// disk. When no file exists the caller falls back to the compiled-in list.
type TermListStore struct {
	mu       sync.RWMutex
	filePath string
}

func NewTermListStore(dataDir, filename string) (*TermListStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &TermListStore{
		filePath: filepath.Join(dataDir, filename),
	}, nil
}

// Load returns the stored term list, or nil when no file exists yet.
func (s *TermListStore) Load() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var terms []string
	if err := json.NewDecoder(file).Decode(&terms); err != nil {
		return nil, err
	}
	return terms, nil
}

// Save writes the term list via a temp file and rename so readers never see a
// partial write.
func (s *TermListStore) Save(terms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tempFile := s.filePath + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(terms); err != nil {
		file.Close()
		os.Remove(tempFile)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, s.filePath)
}

// Exists checks if a customized term list has been saved.
func (s *TermListStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.filePath)
	return err == nil
}
