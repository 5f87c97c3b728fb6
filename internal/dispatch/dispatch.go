// Package dispatch drives backend calls through the resource stores. Every
// operation begins a store ticket, performs one request and settles the
// ticket, so pages never touch the client or the stores' internals directly.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/store"
	"stonepay_admin/metrics"
)

const sessionExpiredMessage = "Your session has expired. Please log in again."

// Rejection is the only error dispatchers return.
type Rejection struct {
	Op      string
	Message string
	Err     error
}

func (r *Rejection) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s: %v", r.Op, r.Message, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Op, r.Message)
}

func (r *Rejection) Unwrap() error { return r.Err }

// MessageOf returns what an operator should read for err.
func MessageOf(err error) string {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func reject(op, fallback string, err error) *Rejection {
	msg := backend.ServerMessage(err)
	if errors.Is(err, backend.ErrSessionExpired) {
		msg = sessionExpiredMessage
	}
	if msg == "" {
		msg = fallback
	}
	return &Rejection{Op: op, Message: msg, Err: err}
}

// run performs call under a fresh ticket for op and settles it with the
// payload built from the result.
func run[T store.Entity, R any](
	ctx context.Context,
	s *store.Resource[T],
	m *metrics.DispatchMetrics,
	op store.Op,
	name, fallback string,
	call func(ctx context.Context) (R, error),
	payload func(R) store.Payload[T],
) (R, error) {
	m.Dispatched.Add(1)
	t := s.Begin(op)
	res, err := call(ctx)
	if err != nil {
		m.Failed.Add(1)
		rej := reject(name, fallback, err)
		s.Fail(t, rej.Message)
		return res, rej
	}
	s.Succeed(ctx, t, payload(res))
	return res, nil
}

func items[T store.Entity](xs []T) store.Payload[T] { return store.Payload[T]{Items: xs} }

func item[T store.Entity](x T) store.Payload[T] { return store.Payload[T]{Item: &x} }

func count[T store.Entity](n int64) store.Payload[T] { return store.Payload[T]{Count: n} }
