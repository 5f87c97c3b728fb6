// Package store keeps the console's client-side copy of backend resources.
// Each Resource is one slice of state with its own status per operation and
// its own persisted namespace.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"stonepay_admin/internal/store/persist"
	"stonepay_admin/metrics"
	"stonepay_admin/pkg/logger"
)

// Entity is anything the store can address by identifier.
type Entity interface {
	RowID() string
}

type Op string

const (
	OpFetchOne  Op = "fetch_one"
	OpFetchAll  Op = "fetch_all"
	OpCreate    Op = "create"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
	OpCount     Op = "count"
	OpAggregate Op = "aggregate"
)

var allOps = []Op{OpFetchOne, OpFetchAll, OpCreate, OpUpdate, OpDelete, OpCount, OpAggregate}

type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Ticket is issued by Begin and redeemed by Succeed or Fail.
type Ticket struct {
	op  Op
	gen uint64
	// seq orders the ticket against mutation commits on the same resource.
	seq uint64
}

func (t Ticket) Op() Op { return t.op }

// Payload carries an operation's result. Which field is read depends on the
// ticket's operation:
//
//	fetch_all       Items replace the collection
//	fetch_one       Item replaces the singleton
//	create          Item is appended
//	update          Item replaces the entry with the same id, and the singleton if it matches
//	delete          the entry with ID is removed, and the singleton cleared if it matches
//	count           Count is set
//	aggregate       Items replace the collection; a non-nil Item replaces the singleton
type Payload[T Entity] struct {
	Items []T
	Item  *T
	ID    string
	Count int64
}

// State is a point-in-time copy of a Resource.
type State[T Entity] struct {
	Collection []T
	Selected   *T
	Count      int64
	Status     map[Op]Status
	LastError  string
}

func (s State[T]) StatusOf(op Op) Status {
	if st, ok := s.Status[op]; ok {
		return st
	}
	return StatusIdle
}

// Find returns the collection entry with id.
func (s State[T]) Find(id string) (T, bool) {
	for _, item := range s.Collection {
		if item.RowID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

type persisted[T Entity] struct {
	Collection []T   `json:"collection"`
	Selected   *T    `json:"selected,omitempty"`
	Count      int64 `json:"count"`
}

type Options struct {
	Namespace string
	Version   int
	Persister persist.Persister
	Logger    logger.Logger
	Metrics   *metrics.DispatchMetrics
}

type Resource[T Entity] struct {
	mu         sync.RWMutex
	collection []T
	selected   *T
	count      int64
	status     map[Op]Status
	gens       map[Op]uint64
	lastError  string
	seq        uint64
	// mutatedAt is the seq of the latest committed mutation. Reads begun
	// before it carry a collection that predates the mutation.
	mutatedAt uint64

	saveMu    sync.Mutex
	namespace string
	version   int
	persister persist.Persister
	log       logger.Logger
	metrics   *metrics.DispatchMetrics
}

func New[T Entity](opts Options) *Resource[T] {
	r := &Resource[T]{
		status:    make(map[Op]Status, len(allOps)),
		gens:      make(map[Op]uint64, len(allOps)),
		namespace: opts.Namespace,
		version:   opts.Version,
		persister: opts.Persister,
		log:       opts.Logger,
		metrics:   opts.Metrics,
	}
	if r.version == 0 {
		r.version = 1
	}
	if r.persister == nil {
		r.persister = persist.NewMemoryPersister()
	}
	if r.log == nil {
		r.log = logger.Discard
	}
	if r.metrics == nil {
		r.metrics = &metrics.DispatchMetrics{}
	}
	for _, op := range allOps {
		r.status[op] = StatusIdle
	}
	return r
}

// Key is the persisted namespace, for example "orders/v1".
func (r *Resource[T]) Key() string {
	return fmt.Sprintf("%s/v%d", r.namespace, r.version)
}

// Begin marks op pending and supersedes every earlier ticket for op.
func (r *Resource[T]) Begin(op Op) Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens[op]++
	r.seq++
	r.status[op] = StatusPending
	return Ticket{op: op, gen: r.gens[op], seq: r.seq}
}

// current reports whether t is still the latest ticket for its operation.
func (r *Resource[T]) current(t Ticket) bool {
	return r.gens[t.op] == t.gen
}

// Succeed commits p according to the ticket's operation. Results of a
// superseded read are dropped and Succeed returns false, as are fetches that
// began before a mutation committed. Mutations always apply their effect,
// since each one targets its own record; only their status is left to the
// newest ticket.
func (r *Resource[T]) Succeed(ctx context.Context, t Ticket, p Payload[T]) bool {
	r.mu.Lock()
	isCurrent := r.current(t)
	if !isCurrent && !mutation(t.op) {
		r.mu.Unlock()
		r.metrics.Stale.Add(1)
		r.log.Log("Dropping stale %s result for %s", t.op, r.namespace)
		return false
	}
	if fetch(t.op) && t.seq < r.mutatedAt {
		// the store already holds the newer data; the fetch is settled
		// without applying it
		r.status[t.op] = StatusIdle
		r.mu.Unlock()
		r.metrics.Stale.Add(1)
		r.log.Log("Dropping %s result for %s begun before a mutation", t.op, r.namespace)
		return false
	}

	switch t.op {
	case OpFetchAll:
		r.collection = append([]T(nil), p.Items...)
	case OpFetchOne:
		r.selected = clonePtr(p.Item)
	case OpCreate:
		if p.Item != nil {
			r.collection = append(r.collection, *p.Item)
		}
	case OpUpdate:
		if p.Item != nil {
			id := (*p.Item).RowID()
			for i := range r.collection {
				if r.collection[i].RowID() == id {
					r.collection[i] = *p.Item
				}
			}
			if r.selected != nil && (*r.selected).RowID() == id {
				r.selected = clonePtr(p.Item)
			}
		}
	case OpDelete:
		kept := r.collection[:0:0]
		for _, item := range r.collection {
			if item.RowID() != p.ID {
				kept = append(kept, item)
			}
		}
		r.collection = kept
		if r.selected != nil && (*r.selected).RowID() == p.ID {
			r.selected = nil
		}
	case OpCount:
		r.count = p.Count
	case OpAggregate:
		r.collection = append([]T(nil), p.Items...)
		if p.Item != nil {
			r.selected = clonePtr(p.Item)
		}
	}
	if mutation(t.op) {
		r.seq++
		r.mutatedAt = r.seq
	}
	if isCurrent {
		r.status[t.op] = StatusSucceeded
	}
	r.mu.Unlock()

	r.save(ctx)
	return isCurrent
}

// Fail records message for the ticket's operation. Data is never touched.
func (r *Resource[T]) Fail(t Ticket, message string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.current(t) {
		r.metrics.Stale.Add(1)
		return false
	}
	r.status[t.op] = StatusFailed
	r.lastError = message
	return true
}

func mutation(op Op) bool {
	return op == OpCreate || op == OpUpdate || op == OpDelete
}

func fetch(op Op) bool {
	return op == OpFetchAll || op == OpFetchOne
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (r *Resource[T]) Snapshot() State[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st := State[T]{
		Collection: append([]T(nil), r.collection...),
		Selected:   clonePtr(r.selected),
		Count:      r.count,
		Status:     make(map[Op]Status, len(r.status)),
		LastError:  r.lastError,
	}
	for op, s := range r.status {
		st.Status[op] = s
	}
	return st
}

func (r *Resource[T]) save(ctx context.Context) {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	r.mu.RLock()
	payload, err := json.Marshal(persisted[T]{Collection: r.collection, Selected: r.selected, Count: r.count})
	r.mu.RUnlock()
	if err != nil {
		r.log.Error("Failed to encode %s: %v", r.Key(), err)
		return
	}
	if err := r.persister.Save(ctx, r.namespace, persist.Record{Version: r.version, Payload: payload}); err != nil {
		r.log.Error("Failed to persist %s: %v", r.Key(), err)
	}
}

// Restore loads the slice saved by an earlier run. A record written with a
// different version is discarded.
func (r *Resource[T]) Restore(ctx context.Context) error {
	rec, err := r.persister.Load(ctx, r.namespace)
	if errors.Is(err, persist.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore %s: %w", r.Key(), err)
	}
	if rec.Version != r.version {
		r.log.Log("Discarding %s state persisted with version %d", r.Key(), rec.Version)
		return r.persister.Delete(ctx, r.namespace)
	}

	var p persisted[T]
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		r.log.Error("Discarding unreadable %s state: %v", r.Key(), err)
		return r.persister.Delete(ctx, r.namespace)
	}

	r.mu.Lock()
	r.collection = p.Collection
	r.selected = p.Selected
	r.count = p.Count
	r.mu.Unlock()
	return nil
}

// Reset forgets everything, in memory and persisted.
func (r *Resource[T]) Reset(ctx context.Context) error {
	r.mu.Lock()
	r.collection = nil
	r.selected = nil
	r.count = 0
	r.lastError = ""
	for _, op := range allOps {
		r.gens[op]++
		r.status[op] = StatusIdle
	}
	r.mu.Unlock()
	return r.persister.Delete(ctx, r.namespace)
}
