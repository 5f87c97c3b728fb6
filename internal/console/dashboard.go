package console

import (
	"net/http"
	"time"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/dispatch"
	"stonepay_admin/internal/table"
	"stonepay_admin/pkg/text"
)

type dashboardPage struct {
	OrderCount   string
	ProductCount string
	UserCount    string
	Revenue      string
	Start        string
	End          string
	Chart        table.View
	ChartEmpty   bool
	TopSold      table.View
}

// chartWindow reads start and end from the query, defaulting to the last
// ChartDays days. An unparsable date leaves that end of the window unset.
func (s *Server) chartWindow(r *http.Request) dispatch.Window {
	q := r.URL.Query()
	if !q.Has("start") && !q.Has("end") {
		return dispatch.LastDays(s.Now(), s.ChartDays)
	}
	var w dispatch.Window
	if t, err := time.ParseInLocation(backend.ChartDateLayout, q.Get("start"), s.Now().Location()); err == nil {
		w.Start = t
	}
	if t, err := time.ParseInLocation(backend.ChartDateLayout, q.Get("end"), s.Now().Location()); err == nil {
		w.End = t
	}
	return w
}

func dateInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(backend.ChartDateLayout)
}

// dashboard loads its figures in a fixed order and stops at the first
// failure; whatever was loaded before it is still shown.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	window := s.chartWindow(r)

	steps := []func() error{
		func() error { _, err := s.Orders.Count(ctx); return err },
		func() error { _, err := s.Products.Count(ctx); return err },
		func() error { _, err := s.Users.Count(ctx); return err },
		func() error { _, err := s.Dashboard.FetchTopSold(ctx); return err },
		func() error { _, err := s.Products.FetchAll(ctx); return err },
		func() error { _, err := s.Dashboard.OrderChart(ctx, window); return err },
		func() error { _, err := s.Dashboard.TotalRevenue(ctx); return err },
	}
	var flash *Flash
	for _, step := range steps {
		f, ok := s.fetchFlash(w, r, step())
		if !ok {
			return
		}
		if f != nil {
			flash = f
			break
		}
	}

	page := dashboardPage{
		OrderCount:   text.Number(s.Orders.Store.Snapshot().Count),
		ProductCount: text.Number(s.Products.Store.Snapshot().Count),
		UserCount:    text.Number(s.Users.Store.Snapshot().Count),
		Revenue:      "N/A",
		Start:        dateInput(window.Start),
		End:          dateInput(window.End),
	}
	if rev := s.Dashboard.Revenue.Snapshot().Selected; rev != nil {
		page.Revenue = text.Naira(rev.Decimal)
	}
	points := SortPoints(s.Dashboard.Chart.Snapshot().Collection)
	page.ChartEmpty = len(points) == 0
	page.Chart = table.New(points, ChartColumns(), nil, nil).WithoutPagination().View("/dashboard")
	page.TopSold = table.New(s.Dashboard.TopSold.Snapshot().Collection, TopSoldColumns(), nil, nil).WithoutPagination().View("/dashboard")

	s.render(w, r, http.StatusOK, "dashboard", page, flash)
}
