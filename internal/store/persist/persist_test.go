package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, p Persister) {
	ctx := context.Background()

	_, err := p.Load(ctx, "orders")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.Save(ctx, "orders", Record{Version: 1, Payload: []byte(`{"count":2}`)}))
	require.NoError(t, p.Save(ctx, "session", Record{Version: 1, Payload: []byte(`{"token":"t"}`)}))

	rec, err := p.Load(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
	assert.JSONEq(t, `{"count":2}`, string(rec.Payload))

	require.NoError(t, p.Save(ctx, "orders", Record{Version: 2, Payload: []byte(`{"count":3}`)}))
	rec, err = p.Load(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Version)

	require.NoError(t, p.Delete(ctx, "orders"))
	require.NoError(t, p.Delete(ctx, "orders"))
	_, err = p.Load(ctx, "orders")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Load(ctx, "session")
	assert.NoError(t, err)
}

func TestMemoryPersister(t *testing.T) {
	exercise(t, NewMemoryPersister())
}

func TestFilePersister(t *testing.T) {
	dir := t.TempDir()
	p, err := NewFilePersister(dir)
	require.NoError(t, err)
	exercise(t, p)

	_, err = os.Stat(filepath.Join(dir, "session.json"))
	assert.NoError(t, err)
}

func TestFilePersisterRejectsInvalidPayload(t *testing.T) {
	p, err := NewFilePersister(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, p.Save(context.Background(), "orders", Record{Version: 1, Payload: []byte("not json")}))
}
