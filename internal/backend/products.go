package backend

import (
	"context"
	"net/http"
	"net/url"

	"stonepay_admin/internal/models"
)

type ProductsClient struct {
	c *Client
}

func NewProductsClient(c *Client) *ProductsClient {
	return &ProductsClient{c: c}
}

func (p *ProductsClient) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = ""
	var created models.Product
	err := p.c.Do(ctx, http.MethodPost, "/product/create_product", product, &created)
	return created, err
}

func (p *ProductsClient) Update(ctx context.Context, id string, product models.Product) (models.Product, error) {
	product.ID = ""
	var updated models.Product
	err := p.c.Do(ctx, http.MethodPut, "/product/update_product/"+url.PathEscape(id), product, &updated)
	return updated, err
}

func (p *ProductsClient) Get(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := p.c.Do(ctx, http.MethodGet, "/product/get_product/"+url.PathEscape(id), nil, &product)
	return product, err
}

func (p *ProductsClient) List(ctx context.Context) ([]models.Product, error) {
	var products models.List[models.Product]
	err := p.c.Do(ctx, http.MethodGet, "/product/get_products", nil, &products)
	return products, err
}

func (p *ProductsClient) Count(ctx context.Context) (int64, error) {
	var n models.Count
	err := p.c.Do(ctx, http.MethodGet, "/product/total_count", nil, &n)
	return int64(n), err
}

func (p *ProductsClient) Delete(ctx context.Context, id string) error {
	return p.c.Do(ctx, http.MethodDelete, "/product/delete_product/"+url.PathEscape(id), nil, nil)
}
