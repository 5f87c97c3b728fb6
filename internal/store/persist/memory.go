package persist

import (
	"context"
	"sync"
)

// MemoryPersister keeps records for the life of the process.
type MemoryPersister struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{records: make(map[string]Record)}
}

func (m *MemoryPersister) Load(_ context.Context, namespace string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[namespace]
	if !ok {
		return Record{}, ErrNotFound
	}
	rec.Payload = append([]byte(nil), rec.Payload...)
	return rec, nil
}

func (m *MemoryPersister) Save(_ context.Context, namespace string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.Payload = append([]byte(nil), rec.Payload...)
	m.records[namespace] = rec
	return nil
}

func (m *MemoryPersister) Delete(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, namespace)
	return nil
}

// Namespaces lists stored namespaces; used by tests.
func (m *MemoryPersister) Namespaces() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.records))
	for ns := range m.records {
		out = append(out, ns)
	}
	return out
}
