package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FilePersister writes one JSON document per namespace under dir.
type FilePersister struct {
	dir string
	mu  sync.Mutex
}

type fileRecord struct {
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Payload   json.RawMessage `json:"payload"`
}

func NewFilePersister(dir string) (*FilePersister, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return &FilePersister{dir: dir}, nil
}

func (f *FilePersister) path(namespace string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(namespace)
	return filepath.Join(f.dir, name+".json")
}

func (f *FilePersister) Load(_ context.Context, namespace string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(namespace))
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("read %s: %w", namespace, err)
	}
	var fr fileRecord
	if err := json.Unmarshal(data, &fr); err != nil {
		return Record{}, fmt.Errorf("decode %s: %w", namespace, err)
	}
	return Record{Version: fr.Version, Payload: fr.Payload, UpdatedAt: fr.UpdatedAt}, nil
}

func (f *FilePersister) Save(_ context.Context, namespace string, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	payload := json.RawMessage(rec.Payload)
	if !json.Valid(payload) {
		return fmt.Errorf("encode %s: payload is not JSON", namespace)
	}
	data, err := json.Marshal(fileRecord{Version: rec.Version, UpdatedAt: rec.UpdatedAt, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}

	// write-then-rename so a crash never leaves a torn file behind
	target := f.path(namespace)
	tmp, err := os.CreateTemp(f.dir, ".state-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", namespace, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", namespace, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", namespace, err)
	}
	return nil
}

func (f *FilePersister) Delete(_ context.Context, namespace string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path(namespace))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", namespace, err)
	}
	return nil
}
