package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"stonepay_admin/internal/models"
)

// ChartDateLayout is the date format /order/by_period expects.
const ChartDateLayout = "2006-01-02"

type OrdersClient struct {
	c *Client
}

func NewOrdersClient(c *Client) *OrdersClient {
	return &OrdersClient{c: c}
}

func (o *OrdersClient) Get(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := o.c.Do(ctx, http.MethodGet, "/order/get_order/"+url.PathEscape(id), nil, &order)
	return order, err
}

func (o *OrdersClient) List(ctx context.Context) ([]models.Order, error) {
	var orders models.List[models.Order]
	err := o.c.Do(ctx, http.MethodGet, "/order/get_orders", nil, &orders)
	return orders, err
}

func (o *OrdersClient) Count(ctx context.Context) (int64, error) {
	var n models.Count
	err := o.c.Do(ctx, http.MethodGet, "/order/total_count", nil, &n)
	return int64(n), err
}

func (o *OrdersClient) TopSold(ctx context.Context) ([]models.TopSoldEntry, error) {
	var entries models.List[models.TopSoldEntry]
	err := o.c.Do(ctx, http.MethodGet, "/order/top_sold", nil, &entries)
	return entries, err
}

// ByPeriod returns the order totals per day between start and end inclusive.
// An empty data payload is a valid empty chart.
func (o *OrdersClient) ByPeriod(ctx context.Context, start, end time.Time) ([]models.PeriodPoint, error) {
	q := url.Values{}
	q.Set("startDate", start.Format(ChartDateLayout))
	q.Set("endDate", end.Format(ChartDateLayout))

	var points models.List[models.PeriodPoint]
	err := o.c.Do(ctx, http.MethodGet, "/order/by_period?"+q.Encode(), nil, &Optional{Target: &points})
	return points, err
}

func (o *OrdersClient) TotalRevenue(ctx context.Context) (models.Revenue, error) {
	var revenue models.Revenue
	err := o.c.Do(ctx, http.MethodGet, "/order/total_revenue", nil, &revenue)
	return revenue, err
}

func (o *OrdersClient) Delete(ctx context.Context, id string) error {
	return o.c.Do(ctx, http.MethodDelete, "/order/delete_order/"+url.PathEscape(id), nil, nil)
}

// UpdateStatus advances the order's status. The backend may or may not echo
// the updated order; ok reports whether it did.
func (o *OrdersClient) UpdateStatus(ctx context.Context, id string) (order models.Order, ok bool, err error) {
	opt := &Optional{Target: &order}
	err = o.c.Do(ctx, http.MethodPut, "/order/update_order_status/"+url.PathEscape(id), nil, opt)
	return order, opt.Present, err
}
