package app

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stonepay_admin/config"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/pkg/logger"
)

func testConfig(dir string) *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.Backend.BaseURL = "http://backend.invalid/api/v1"
	cfg.Backend.RequestsPerSecond = 10
	cfg.Backend.Burst = 1
	cfg.Persistence.Driver = "file"
	cfg.Persistence.Dir = dir
	return cfg
}

func TestSessionExpiryClearsSlices(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a, err := Build(ctx, testConfig(dir), logger.NewQuietLogger(io.Discard, ""))
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Session.Establish(ctx, "tok", &models.User{ID: "u1", Email: "ops@stonepay.test"})
	require.NoError(t, err)

	ticket := a.Orders.Store.Begin(store.OpFetchAll)
	require.True(t, a.Orders.Store.Succeed(ctx, ticket, store.Payload[models.Order]{Items: []models.Order{{ID: "o1"}}}))
	require.Len(t, a.Orders.Store.Snapshot().Collection, 1)
	require.FileExists(t, filepath.Join(dir, "orders.json"))

	a.Session.Expire(ctx)

	assert.Empty(t, a.Orders.Store.Snapshot().Collection)
	assert.NoFileExists(t, filepath.Join(dir, "orders.json"))

	restarted, err := Build(ctx, testConfig(dir), logger.NewQuietLogger(io.Discard, ""))
	require.NoError(t, err)
	defer restarted.Close()
	assert.Empty(t, restarted.Orders.Store.Snapshot().Collection)
	assert.Empty(t, restarted.Session.Token())
}
