package dispatch

import (
	"context"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/metrics"
)

type Orders struct {
	client  *backend.OrdersClient
	Store   *store.Resource[models.Order]
	metrics *metrics.DispatchMetrics
}

func NewOrders(client *backend.OrdersClient, s *store.Resource[models.Order], m *metrics.DispatchMetrics) *Orders {
	return &Orders{client: client, Store: s, metrics: m}
}

func (o *Orders) Fetch(ctx context.Context, id string) (models.Order, error) {
	return run(ctx, o.Store, o.metrics, store.OpFetchOne, "order/getOrder", "Failed to get order, try again",
		func(ctx context.Context) (models.Order, error) { return o.client.Get(ctx, id) },
		item[models.Order])
}

func (o *Orders) FetchAll(ctx context.Context) ([]models.Order, error) {
	return run(ctx, o.Store, o.metrics, store.OpFetchAll, "order/getAllOrders", "Failed to get orders, try again",
		o.client.List, items[models.Order])
}

func (o *Orders) Count(ctx context.Context) (int64, error) {
	return run(ctx, o.Store, o.metrics, store.OpCount, "order/getOrderCount", "Failed to get order count, try again",
		o.client.Count, count[models.Order])
}

func (o *Orders) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, o.Store, o.metrics, store.OpDelete, "order/deleteOrder", "Failed to delete order, try again",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, o.client.Delete(ctx, id) },
		func(struct{}) store.Payload[models.Order] { return store.Payload[models.Order]{ID: id} })
	return err
}

// UpdateStatus advances the order. When the backend echoes the order the
// stored entry is replaced; otherwise callers refetch.
func (o *Orders) UpdateStatus(ctx context.Context, id string) (updated bool, err error) {
	type result struct {
		order models.Order
		ok    bool
	}
	res, err := run(ctx, o.Store, o.metrics, store.OpUpdate, "order/updateOrderStatus", "Failed to update order status, try again",
		func(ctx context.Context) (result, error) {
			order, ok, err := o.client.UpdateStatus(ctx, id)
			return result{order: order, ok: ok}, err
		},
		func(r result) store.Payload[models.Order] {
			if !r.ok {
				return store.Payload[models.Order]{}
			}
			return item(r.order)
		})
	return res.ok, err
}
