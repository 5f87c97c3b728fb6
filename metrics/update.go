package metrics

import "sync/atomic"

// DispatchMetrics counts dispatcher outcomes across all resource slices.
type DispatchMetrics struct {
	Dispatched atomic.Int32
	Failed     atomic.Int32
	// Stale counts completions dropped because a newer request for the same
	// store field had already started.
	Stale atomic.Int32
}
