// Package persist stores opaque, versioned blobs under a namespace. Each
// resource slice and the session own a separate namespace, so a format change
// in one slice never forces a migration of another.
package persist

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("persisted state not found")

type Record struct {
	Version   int
	Payload   []byte
	UpdatedAt time.Time
}

type Persister interface {
	Load(ctx context.Context, namespace string) (Record, error)
	Save(ctx context.Context, namespace string, rec Record) error
	Delete(ctx context.Context, namespace string) error
}
