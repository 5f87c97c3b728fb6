package dispatch

import (
	"context"
	"errors"
	"time"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/metrics"
)

// ErrInvalidWindow rejects a chart request without a complete date range.
var ErrInvalidWindow = errors.New("invalid date window")

const windowMessage = "Start date and end date are required."

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// LastDays returns the window of the given number of days ending on the day of now.
func LastDays(now time.Time, days int) Window {
	if days < 1 {
		days = 1
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() || w.Start.After(w.End) {
		return ErrInvalidWindow
	}
	return nil
}

// Dashboard covers the read-only aggregates. Counts live on the resource
// dispatchers.
type Dashboard struct {
	client  *backend.OrdersClient
	TopSold *store.Resource[models.TopSoldEntry]
	Chart   *store.Resource[models.PeriodPoint]
	Revenue *store.Resource[models.Revenue]
	metrics *metrics.DispatchMetrics
}

func NewDashboard(
	client *backend.OrdersClient,
	topSold *store.Resource[models.TopSoldEntry],
	chart *store.Resource[models.PeriodPoint],
	revenue *store.Resource[models.Revenue],
	m *metrics.DispatchMetrics,
) *Dashboard {
	return &Dashboard{client: client, TopSold: topSold, Chart: chart, Revenue: revenue, metrics: m}
}

func (d *Dashboard) FetchTopSold(ctx context.Context) ([]models.TopSoldEntry, error) {
	return run(ctx, d.TopSold, d.metrics, store.OpAggregate, "order/getTopOrders", "Failed to get top sold products, try again",
		d.client.TopSold, items[models.TopSoldEntry])
}

// OrderChart loads totals per day for w. An incomplete window is rejected
// without contacting the backend.
func (d *Dashboard) OrderChart(ctx context.Context, w Window) ([]models.PeriodPoint, error) {
	if err := w.Validate(); err != nil {
		d.metrics.Dispatched.Add(1)
		d.metrics.Failed.Add(1)
		t := d.Chart.Begin(store.OpAggregate)
		d.Chart.Fail(t, windowMessage)
		return nil, &Rejection{Op: "order/getOrderChart", Message: windowMessage, Err: err}
	}
	return run(ctx, d.Chart, d.metrics, store.OpAggregate, "order/getOrderChart", "Failed to fetch order chart data. Please try again.",
		func(ctx context.Context) ([]models.PeriodPoint, error) { return d.client.ByPeriod(ctx, w.Start, w.End) },
		items[models.PeriodPoint])
}

func (d *Dashboard) TotalRevenue(ctx context.Context) (models.Revenue, error) {
	return run(ctx, d.Revenue, d.metrics, store.OpAggregate, "order/getTotalRevenue", "Failed to get total revenue, try again",
		d.client.TotalRevenue,
		func(r models.Revenue) store.Payload[models.Revenue] { return store.Payload[models.Revenue]{Item: &r} })
}
