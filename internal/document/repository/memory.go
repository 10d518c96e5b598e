package repository

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryRepo is an in-memory DocumentRepository used by service and handler
// tests. It mirrors FileRepo semantics, including the single backup slot.
type MemoryRepo struct {
	mu     sync.RWMutex
	data   []byte
	backup []byte
	name   string

	// WriteErr, when set, makes every valid Save fail with it.
	WriteErr error
}

func NewMemoryRepo(name string) *MemoryRepo {
	return &MemoryRepo{name: name}
}

func (m *MemoryRepo) Path() string { return m.name }

func (m *MemoryRepo) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data != nil
}

func (m *MemoryRepo) Load() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return emptyDocument
	}
	out, err := Indent(m.data)
	if err != nil {
		return errorDocument("Invalid JSON: " + err.Error())
	}
	return out
}

func (m *MemoryRepo) Save(raw []byte) error {
	if !json.Valid(raw) {
		return fmt.Errorf("save document: %w", ErrInvalidJSON)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.data != nil {
		m.backup = m.data
	}
	m.data = append([]byte(nil), raw...)
	return nil
}

// Backup returns the content held before the last successful Save.
func (m *MemoryRepo) Backup() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.backup
}

// Raw returns the stored bytes exactly as saved.
func (m *MemoryRepo) Raw() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data
}
