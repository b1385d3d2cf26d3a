package storage

import (
	"sync"

	"github.com/klabast/wb-services/geo-events/internal/model"
)

// Memory keeps encoded records in process memory. Records still go through
// the envelope codec so behavior matches the durable backends.
type Memory struct {
	mu      sync.Mutex
	key     string
	records map[string][]byte
}

// NewMemory returns an empty in-memory backend
func NewMemory(namespace string) *Memory {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Memory{key: namespace, records: make(map[string][]byte)}
}

// Load decodes the stored record
func (m *Memory) Load() ([]model.Geo, error) {
	m.mu.Lock()
	data, ok := m.records[m.key]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(data)
}

// Save encodes and stores the record
func (m *Memory) Save(geos []model.Geo) error {
	data, err := Encode(geos)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[m.key] = data
	return nil
}

// Raw returns the stored record body
func (m *Memory) Raw() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[m.key]
	return append([]byte(nil), data...), ok
}
