package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/dispatch"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/internal/store/persist"
	"stonepay_admin/metrics"
	"stonepay_admin/pkg/logger"
)

type consoleFixture struct {
	backend   *http.ServeMux
	session   *backend.Session
	handler   http.Handler
	consoleID string
	chartHits atomic.Int32
}

func reply(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": status < 300, "data": data})
}

func newConsole(t *testing.T) *consoleFixture {
	t.Helper()
	f := &consoleFixture{backend: http.NewServeMux()}
	api := httptest.NewServer(f.backend)
	t.Cleanup(api.Close)

	f.session = backend.NewSession(persist.NewMemoryPersister(), logger.Discard)
	client := backend.NewClient(backend.Options{BaseURL: api.URL, Session: f.session})
	m := &metrics.DispatchMetrics{}

	srv, err := NewServer(Deps{
		Session:    f.session,
		Client:     client,
		Orders:     dispatch.NewOrders(backend.NewOrdersClient(client), store.New[models.Order](store.Options{Namespace: "orders"}), m),
		Products:   dispatch.NewProducts(backend.NewProductsClient(client), store.New[models.Product](store.Options{Namespace: "products"}), m),
		Categories: dispatch.NewCategories(backend.NewCategoriesClient(client), store.New[models.Category](store.Options{Namespace: "categories"}), m),
		Users:      dispatch.NewUsers(backend.NewUsersClient(client), store.New[models.User](store.Options{Namespace: "users"}), m),
		Dashboard: dispatch.NewDashboard(backend.NewOrdersClient(client),
			store.New[models.TopSoldEntry](store.Options{Namespace: "top_sold"}),
			store.New[models.PeriodPoint](store.Options{Namespace: "order_chart"}),
			store.New[models.Revenue](store.Options{Namespace: "revenue"}),
			m),
		ItemsPerPage: []int{5, 10, 20},
		Now:          func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	f.handler = srv.Handler()
	return f
}

func (f *consoleFixture) signIn(t *testing.T) {
	t.Helper()
	id, err := f.session.Establish(context.Background(), "opaque-token", &models.User{ID: "op", FirstName: "Ada", LastName: "Obi"})
	require.NoError(t, err)
	f.consoleID = id
}

func (f *consoleFixture) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if f.consoleID != "" {
		req.AddCookie(&http.Cookie{Name: consoleCookie, Value: f.consoleID})
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "StonePay Admin - Orders", Title("/orders"))
	assert.Equal(t, "StonePay Admin - Products", Title("/products/p1/edit"))
	assert.Equal(t, "StonePay Admin", Title("/sign-in"))
	assert.Equal(t, "StonePay Admin", Title("/ordersx"))
}

func TestPagesRequireTheConsoleCookie(t *testing.T) {
	f := newConsole(t)

	rec := f.do(http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))

	// a session exists but the browser presents someone else's id
	f.signIn(t)
	f.consoleID = "stale"
	rec = f.do(http.MethodGet, "/orders", nil)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
}

func TestHealthzAndRoot(t *testing.T) {
	f := newConsole(t)
	rec := f.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = f.do(http.MethodGet, "/", nil)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestSignInSetsConsoleCookie(t *testing.T) {
	f := newConsole(t)
	f.backend.HandleFunc("POST /auth/sign-in", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@stonepay.ng", body["email"])
		reply(w, http.StatusOK, map[string]any{"token": "opaque", "user": map[string]any{"_id": "op", "first_name": "Ada"}})
	})

	rec := f.do(http.MethodPost, "/sign-in", url.Values{"email": {"ada@stonepay.ng"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	c := cookie(rec, consoleCookie)
	require.NotNil(t, c)
	assert.Equal(t, f.session.ConsoleID(), c.Value)
	assert.NotNil(t, cookie(rec, flashCookie))
}

func TestSignInRequiresFields(t *testing.T) {
	f := newConsole(t)
	rec := f.do(http.MethodPost, "/sign-in", url.Values{"email": {"ada@stonepay.ng"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password is required.")
	assert.False(t, f.session.Authenticated())
}

func TestOrdersListRendersRows(t *testing.T) {
	f := newConsole(t)
	f.signIn(t)
	f.backend.HandleFunc("GET /order/get_orders", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, []map[string]any{
			{"_id": "a", "total_price": 100, "status": "Pending", "user_details": map[string]any{"first_name": "Chidi", "last_name": "Okafor"}},
			{"_id": "b", "total_price": 50, "status": "Approved"},
		})
	})

	rec := f.do(http.MethodGet, "/orders?page=1&open=a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>StonePay Admin - Orders</title>")
	assert.Contains(t, body, "Chidi Okafor")
	assert.Contains(t, body, "₦100.00")
	assert.Contains(t, body, "status-pending")
	assert.Contains(t, body, "/orders/a/delete")
	assert.NotContains(t, body, "/orders/b/delete")
	assert.Contains(t, body, "1 - 5 of 2")
}

func TestExpiredSessionRedirectsToSignIn(t *testing.T) {
	f := newConsole(t)
	f.signIn(t)
	f.backend.HandleFunc("GET /users/get_users", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusUnauthorized, nil)
	})

	rec := f.do(http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
	assert.False(t, f.session.Authenticated())
	flash := cookie(rec, flashCookie)
	require.NotNil(t, flash)
	raw, err := url.QueryUnescape(flash.Value)
	require.NoError(t, err)
	assert.Equal(t, "warning|Your session has expired. Please log in again.", raw)
}

func TestOrderDeleteFlashesAndRedirects(t *testing.T) {
	f := newConsole(t)
	f.signIn(t)
	f.backend.HandleFunc("DELETE /order/delete_order/{id}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, nil)
	})

	rec := f.do(http.MethodGet, "/orders/a/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure you want to delete this order?")

	rec = f.do(http.MethodPost, "/orders/a/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get("Location"))
	raw, _ := url.QueryUnescape(cookie(rec, flashCookie).Value)
	assert.Equal(t, "success|Order deleted successfully", raw)
}

func TestDashboardStopsAtIncompleteWindow(t *testing.T) {
	f := newConsole(t)
	f.signIn(t)
	for _, p := range []string{"/order/total_count", "/product/total_count", "/users/total_count"} {
		f.backend.HandleFunc("GET "+p, func(w http.ResponseWriter, r *http.Request) { reply(w, http.StatusOK, 1234) })
	}
	f.backend.HandleFunc("GET /order/top_sold", func(w http.ResponseWriter, r *http.Request) { reply(w, http.StatusOK, []any{}) })
	f.backend.HandleFunc("GET /product/get_products", func(w http.ResponseWriter, r *http.Request) { reply(w, http.StatusOK, []any{}) })
	f.backend.HandleFunc("GET /order/by_period", func(w http.ResponseWriter, r *http.Request) {
		f.chartHits.Add(1)
		reply(w, http.StatusOK, []any{})
	})

	rec := f.do(http.MethodGet, "/dashboard?start=2025-03-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Start date and end date are required.")
	assert.Contains(t, body, "1,234")
	assert.Zero(t, f.chartHits.Load())
}

func TestProductDetailKeepsInlineImage(t *testing.T) {
	f := newConsole(t)
	f.signIn(t)
	f.backend.HandleFunc("GET /product/get_product/{id}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{
			"_id": r.PathValue("id"), "product_name": "Kettle", "product_category": "c1",
			"product_price": "2500", "product_qty": 3, "product_img": "data:image/png;base64,iVBORw0KGgo=",
		})
	})
	f.backend.HandleFunc("GET /product-category/get_product_categoryies", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, []map[string]any{{"_id": "c1", "category_name": "Kitchen"}})
	})

	rec := f.do(http.MethodGet, "/products/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<img src="data:image/png;base64,iVBORw0KGgo="`)
	assert.NotContains(t, body, "ZgotmplZ")
	assert.Contains(t, body, "Kitchen")
}

func TestImageSrc(t *testing.T) {
	assert.EqualValues(t, "https://res.cloudinary.com/x/k.png", imageSrc(" https://res.cloudinary.com/x/k.png "))
	assert.EqualValues(t, "data:image/jpeg;base64,AAAA", imageSrc("data:image/jpeg;base64,AAAA"))
	assert.Empty(t, imageSrc("javascript:alert(1)"))
	assert.Empty(t, imageSrc("data:text/html;base64,PHA+"))
	assert.Empty(t, imageSrc(""))
}
