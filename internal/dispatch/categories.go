package dispatch

import (
	"context"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/metrics"
)

type Categories struct {
	client  *backend.CategoriesClient
	Store   *store.Resource[models.Category]
	metrics *metrics.DispatchMetrics
}

func NewCategories(client *backend.CategoriesClient, s *store.Resource[models.Category], m *metrics.DispatchMetrics) *Categories {
	return &Categories{client: client, Store: s, metrics: m}
}

func (c *Categories) Create(ctx context.Context, draft models.Category) (models.Category, error) {
	return run(ctx, c.Store, c.metrics, store.OpCreate, "productCategory/createCategory", "Failed to create product category, try again",
		func(ctx context.Context) (models.Category, error) { return c.client.Create(ctx, draft) },
		item[models.Category])
}

func (c *Categories) Update(ctx context.Context, id string, draft models.Category) (models.Category, error) {
	return run(ctx, c.Store, c.metrics, store.OpUpdate, "productCategory/updateCategory", "Failed to update product category, try again",
		func(ctx context.Context) (models.Category, error) { return c.client.Update(ctx, id, draft) },
		item[models.Category])
}

func (c *Categories) Fetch(ctx context.Context, id string) (models.Category, error) {
	return run(ctx, c.Store, c.metrics, store.OpFetchOne, "productCategory/getCategory", "Failed to get product category, try again",
		func(ctx context.Context) (models.Category, error) { return c.client.Get(ctx, id) },
		item[models.Category])
}

func (c *Categories) FetchAll(ctx context.Context) ([]models.Category, error) {
	return run(ctx, c.Store, c.metrics, store.OpFetchAll, "productCategory/getAllCategory", "Failed to get all product categories, try again",
		c.client.List, items[models.Category])
}

func (c *Categories) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, c.Store, c.metrics, store.OpDelete, "productCategory/deleteCategory", "Failed to delete product category, try again",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, c.client.Delete(ctx, id) },
		func(struct{}) store.Payload[models.Category] { return store.Payload[models.Category]{ID: id} })
	return err
}
