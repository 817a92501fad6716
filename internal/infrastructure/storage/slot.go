// Package storage keeps single-value slots: the last position and the last
// captured element. Each save replaces the previous value; no history is kept.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

var (
	_ output.PositionStore                = (*FileSlot[entity.Position])(nil)
	_ output.Slot[entity.CapturedElement] = (*MemorySlot[entity.CapturedElement])(nil)
)

type FileSlot[T any] struct {
	path string
	mu   sync.Mutex
}

func NewFileSlot[T any](path string) *FileSlot[T] {
	return &FileSlot[T]{path: path}
}

func (s *FileSlot[T]) Path() string {
	return s.path
}

func (s *FileSlot[T]) Load() (T, bool, error) {
	var value T

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return value, true, nil
}

// Save writes through a temp file and rename so watchers never read a
// half-written value.
func (s *FileSlot[T]) Save(value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

type MemorySlot[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
	// SaveErr, when non-nil, is returned by every Save.
	SaveErr error
}

func NewMemorySlot[T any]() *MemorySlot[T] {
	return &MemorySlot[T]{}
}

func (s *MemorySlot[T]) Load() (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set, nil
}

func (s *MemorySlot[T]) Save(value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.value = value
	s.set = true
	return nil
}
