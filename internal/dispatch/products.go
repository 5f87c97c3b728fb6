package dispatch

import (
	"context"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/metrics"
)

type Products struct {
	client  *backend.ProductsClient
	Store   *store.Resource[models.Product]
	metrics *metrics.DispatchMetrics
}

func NewProducts(client *backend.ProductsClient, s *store.Resource[models.Product], m *metrics.DispatchMetrics) *Products {
	return &Products{client: client, Store: s, metrics: m}
}

func (p *Products) Create(ctx context.Context, draft models.Product) (models.Product, error) {
	return run(ctx, p.Store, p.metrics, store.OpCreate, "product/createProduct", "Failed to create product, try again",
		func(ctx context.Context) (models.Product, error) { return p.client.Create(ctx, draft) },
		item[models.Product])
}

func (p *Products) Update(ctx context.Context, id string, draft models.Product) (models.Product, error) {
	return run(ctx, p.Store, p.metrics, store.OpUpdate, "product/updateProduct", "Failed to update product, try again",
		func(ctx context.Context) (models.Product, error) { return p.client.Update(ctx, id, draft) },
		item[models.Product])
}

func (p *Products) Fetch(ctx context.Context, id string) (models.Product, error) {
	return run(ctx, p.Store, p.metrics, store.OpFetchOne, "product/getProduct", "Failed to get product, try again",
		func(ctx context.Context) (models.Product, error) { return p.client.Get(ctx, id) },
		item[models.Product])
}

func (p *Products) FetchAll(ctx context.Context) ([]models.Product, error) {
	return run(ctx, p.Store, p.metrics, store.OpFetchAll, "product/getAllProducts", "Failed to get products, try again",
		p.client.List, items[models.Product])
}

func (p *Products) Count(ctx context.Context) (int64, error) {
	return run(ctx, p.Store, p.metrics, store.OpCount, "product/getProductCount", "Failed to get product count, try again",
		p.client.Count, count[models.Product])
}

func (p *Products) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, p.Store, p.metrics, store.OpDelete, "product/deleteProduct", "Failed to delete product, try again",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, p.client.Delete(ctx, id) },
		func(struct{}) store.Payload[models.Product] { return store.Payload[models.Product]{ID: id} })
	return err
}
