package backend

import (
	"context"
	"net/http"
	"net/url"

	"stonepay_admin/internal/models"
)

type CategoriesClient struct {
	c *Client
}

func NewCategoriesClient(c *Client) *CategoriesClient {
	return &CategoriesClient{c: c}
}

func (cc *CategoriesClient) Create(ctx context.Context, category models.Category) (models.Category, error) {
	category.ID = ""
	var created models.Category
	err := cc.c.Do(ctx, http.MethodPost, "/product-category/create_product_category", category, &created)
	return created, err
}

func (cc *CategoriesClient) Update(ctx context.Context, id string, category models.Category) (models.Category, error) {
	category.ID = ""
	var updated models.Category
	err := cc.c.Do(ctx, http.MethodPut, "/product-category/update_product_category/"+url.PathEscape(id), category, &updated)
	return updated, err
}

func (cc *CategoriesClient) Get(ctx context.Context, id string) (models.Category, error) {
	var category models.Category
	err := cc.c.Do(ctx, http.MethodGet, "/product-category/get_product_category/"+url.PathEscape(id), nil, &category)
	return category, err
}

// List uses the backend's own spelling of the route.
func (cc *CategoriesClient) List(ctx context.Context) ([]models.Category, error) {
	var categories models.List[models.Category]
	err := cc.c.Do(ctx, http.MethodGet, "/product-category/get_product_categoryies", nil, &categories)
	return categories, err
}

func (cc *CategoriesClient) Delete(ctx context.Context, id string) error {
	return cc.c.Do(ctx, http.MethodDelete, "/product-category/delete_product_category/"+url.PathEscape(id), nil, nil)
}
