package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stonepay_admin/internal/store/persist"
	"stonepay_admin/metrics"
)

type rec struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func (r rec) RowID() string { return r.ID }

func newTestResource(p persist.Persister, m *metrics.DispatchMetrics) *Resource[rec] {
	return New[rec](Options{Namespace: "recs", Version: 1, Persister: p, Metrics: m})
}

func TestLifecycleSemantics(t *testing.T) {
	ctx := context.Background()
	r := newTestResource(nil, nil)

	tk := r.Begin(OpFetchAll)
	assert.Equal(t, StatusPending, r.Snapshot().StatusOf(OpFetchAll))
	r.Succeed(ctx, tk, Payload[rec]{Items: []rec{{"a", 1}, {"b", 2}}})

	tk = r.Begin(OpFetchOne)
	r.Succeed(ctx, tk, Payload[rec]{Item: &rec{"a", 1}})

	tk = r.Begin(OpCreate)
	r.Succeed(ctx, tk, Payload[rec]{Item: &rec{"c", 3}})

	tk = r.Begin(OpUpdate)
	r.Succeed(ctx, tk, Payload[rec]{Item: &rec{"a", 10}})

	st := r.Snapshot()
	assert.Equal(t, []rec{{"a", 10}, {"b", 2}, {"c", 3}}, st.Collection)
	require.NotNil(t, st.Selected)
	assert.Equal(t, 10, st.Selected.Value)

	tk = r.Begin(OpDelete)
	r.Succeed(ctx, tk, Payload[rec]{ID: "a"})
	st = r.Snapshot()
	assert.Equal(t, []rec{{"b", 2}, {"c", 3}}, st.Collection)
	assert.Nil(t, st.Selected)
	assert.Equal(t, StatusSucceeded, st.StatusOf(OpDelete))

	tk = r.Begin(OpCount)
	r.Succeed(ctx, tk, Payload[rec]{Count: 42})
	assert.EqualValues(t, 42, r.Snapshot().Count)
}

func TestFailLeavesDataUntouched(t *testing.T) {
	ctx := context.Background()
	r := newTestResource(nil, nil)
	r.Succeed(ctx, r.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"a", 1}}})

	r.Fail(r.Begin(OpFetchAll), "Failed to get records, try again")
	st := r.Snapshot()
	assert.Equal(t, []rec{{"a", 1}}, st.Collection)
	assert.Equal(t, StatusFailed, st.StatusOf(OpFetchAll))
	assert.Equal(t, "Failed to get records, try again", st.LastError)
	assert.Equal(t, StatusIdle, st.StatusOf(OpCount))
}

func TestSupersededFetchIsDropped(t *testing.T) {
	ctx := context.Background()
	m := &metrics.DispatchMetrics{}
	r := newTestResource(nil, m)

	older := r.Begin(OpFetchAll)
	newer := r.Begin(OpFetchAll)
	assert.True(t, r.Succeed(ctx, newer, Payload[rec]{Items: []rec{{"new", 2}}}))
	assert.False(t, r.Succeed(ctx, older, Payload[rec]{Items: []rec{{"old", 1}}}))
	assert.False(t, r.Fail(older, "late failure"))

	st := r.Snapshot()
	assert.Equal(t, []rec{{"new", 2}}, st.Collection)
	assert.Equal(t, StatusSucceeded, st.StatusOf(OpFetchAll))
	assert.Empty(t, st.LastError)
	assert.EqualValues(t, 2, m.Stale.Load())
}

func TestConcurrentDeletesBothApply(t *testing.T) {
	ctx := context.Background()
	r := newTestResource(nil, nil)
	r.Succeed(ctx, r.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"a", 1}, {"b", 2}, {"c", 3}}})

	first := r.Begin(OpDelete)
	second := r.Begin(OpDelete)
	r.Succeed(ctx, second, Payload[rec]{ID: "b"})
	r.Succeed(ctx, first, Payload[rec]{ID: "a"})
	assert.Equal(t, []rec{{"c", 3}}, r.Snapshot().Collection)
}

func TestFetchBegunBeforeMutationDoesNotUndoIt(t *testing.T) {
	ctx := context.Background()
	m := &metrics.DispatchMetrics{}
	r := newTestResource(nil, m)
	r.Succeed(ctx, r.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"a", 1}}})

	list := r.Begin(OpFetchAll)
	create := r.Begin(OpCreate)
	require.True(t, r.Succeed(ctx, create, Payload[rec]{Item: &rec{"new", 2}}))
	assert.False(t, r.Succeed(ctx, list, Payload[rec]{Items: []rec{{"a", 1}}}))

	st := r.Snapshot()
	assert.Equal(t, []rec{{"a", 1}, {"new", 2}}, st.Collection)
	assert.Equal(t, StatusIdle, st.StatusOf(OpFetchAll))
	assert.EqualValues(t, 1, m.Stale.Load())

	// a fetch begun after the commit applies normally
	require.True(t, r.Succeed(ctx, r.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"new", 2}}}))
	assert.Equal(t, []rec{{"new", 2}}, r.Snapshot().Collection)
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	r := newTestResource(nil, nil)
	r.Succeed(ctx, r.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"a", 1}}})

	st := r.Snapshot()
	st.Collection[0].Value = 99
	st.Status[OpFetchAll] = StatusFailed
	assert.Equal(t, 1, r.Snapshot().Collection[0].Value)
	assert.Equal(t, StatusSucceeded, r.Snapshot().StatusOf(OpFetchAll))
}

func TestPersistAndRestore(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryPersister()
	r := newTestResource(p, nil)
	r.Succeed(ctx, r.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"a", 1}}})
	r.Succeed(ctx, r.Begin(OpCount), Payload[rec]{Count: 1})
	assert.Equal(t, []string{"recs"}, p.Namespaces())
	assert.Equal(t, "recs/v1", r.Key())

	restored := newTestResource(p, nil)
	require.NoError(t, restored.Restore(ctx))
	st := restored.Snapshot()
	assert.Equal(t, []rec{{"a", 1}}, st.Collection)
	assert.EqualValues(t, 1, st.Count)
	assert.Equal(t, StatusIdle, st.StatusOf(OpFetchAll))
}

func TestRestoreDiscardsOtherVersions(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryPersister()
	payload, _ := json.Marshal(map[string]any{"collection": []rec{{"a", 1}}})
	require.NoError(t, p.Save(ctx, "recs", persist.Record{Version: 2, Payload: payload}))

	r := newTestResource(p, nil)
	require.NoError(t, r.Restore(ctx))
	assert.Empty(t, r.Snapshot().Collection)
	assert.Empty(t, p.Namespaces())
}

func TestSlicesUseSeparateNamespaces(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryPersister()
	a := New[rec](Options{Namespace: "orders", Persister: p})
	b := New[rec](Options{Namespace: "products", Persister: p})
	a.Succeed(ctx, a.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"o1", 1}}})
	b.Succeed(ctx, b.Begin(OpFetchAll), Payload[rec]{Items: []rec{{"p1", 1}}})

	assert.ElementsMatch(t, []string{"orders", "products"}, p.Namespaces())
	require.NoError(t, a.Reset(ctx))
	assert.Equal(t, []string{"products"}, p.Namespaces())
	assert.Empty(t, a.Snapshot().Collection)
}
