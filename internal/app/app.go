// Package app assembles the console's object graph from configuration. Both
// the web console and adminctl start here.
package app

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
	"stonepay_admin/config"
	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/dispatch"
	"stonepay_admin/internal/form"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/internal/store/persist"
	"stonepay_admin/metrics"
	"stonepay_admin/migrations/state"
	"stonepay_admin/pkg/dbconnect"
	"stonepay_admin/pkg/dbconnect/migration"
	"stonepay_admin/pkg/dbconnect/mysql"
	"stonepay_admin/pkg/dbconnect/postgres"
	"stonepay_admin/pkg/logger"
	"stonepay_admin/pkg/middleware"
)

// Slice versions. Bump one when its persisted shape changes.
const (
	ordersVersion     = 1
	productsVersion   = 1
	categoriesVersion = 1
	usersVersion      = 1
	topSoldVersion    = 1
	chartVersion      = 1
	revenueVersion    = 1
)

type App struct {
	Config   *config.AppConfig
	Log      *logger.BaseLogger
	Metrics  *metrics.DispatchMetrics
	Session  *backend.Session
	Client   *backend.Client
	Uploader form.ImageUploader

	Orders     *dispatch.Orders
	Products   *dispatch.Products
	Categories *dispatch.Categories
	Users      *dispatch.Users
	Dashboard  *dispatch.Dashboard

	closer io.Closer
}

func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// NewPersister opens the state store named by cfg.Persistence.Driver. SQL
// drivers get their schema migrated first.
func NewPersister(cfg *config.AppConfig, log logger.Logger) (persist.Persister, io.Closer, error) {
	var conn *dbconnect.Connector
	switch cfg.Persistence.Driver {
	case "memory":
		return persist.NewMemoryPersister(), nil, nil
	case "file":
		p, err := persist.NewFilePersister(cfg.Persistence.Dir)
		return p, nil, err
	case "postgres":
		conn = postgres.NewPgConnector(&cfg.Postgres, log)
	case "mysql":
		conn = mysql.NewMySQLConnector(&cfg.MySQL, log)
	default:
		return nil, nil, fmt.Errorf("unknown persistence driver %q", cfg.Persistence.Driver)
	}

	db, err := conn.Connect()
	if err != nil {
		return nil, nil, err
	}
	if err := migration.Apply(db, conn.Dialect(), state.All()...); err != nil {
		conn.Close()
		return nil, nil, err
	}
	log.Log("State migrations applied on %s", conn.Dialect())

	p, err := persist.NewSQLPersister(conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return p, conn, nil
}

func newResource[T store.Entity](name string, version int, p persist.Persister, log *logger.BaseLogger, m *metrics.DispatchMetrics) *store.Resource[T] {
	return store.New[T](store.Options{
		Namespace: name,
		Version:   version,
		Persister: p,
		Logger:    log.WithPrefix("[Store " + name + "]"),
		Metrics:   m,
	})
}

// Build wires everything and restores the persisted session and slices.
// A slice that fails to restore starts empty.
func Build(ctx context.Context, cfg *config.AppConfig, log *logger.BaseLogger) (*App, error) {
	p, closer, err := NewPersister(cfg, log.WithPrefix("[Persistence]"))
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Log: log, Metrics: &metrics.DispatchMetrics{}, closer: closer}

	a.Session = backend.NewSession(p, log.WithPrefix("[Session]"))
	if err := a.Session.Restore(ctx); err != nil {
		log.Error("Failed to restore session: %v", err)
	}

	backendLog := log.WithPrefix("[Backend]")
	a.Client = backend.NewClient(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Session: a.Session,
		Limiter: rate.NewLimiter(rate.Limit(cfg.Backend.RequestsPerSecond), cfg.Backend.Burst),
		Logger:  backendLog,
		Middlewares: []middleware.Middleware{
			middleware.Logging(backendLog),
			middleware.BackendMetrics(backend.EndpointLabel),
		},
	})

	a.Uploader = form.DataURLUploader{}
	if cfg.Cloudinary.URL != "" {
		up, err := form.NewCloudinaryUploader(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Uploader = up
	}

	orders := newResource[models.Order]("orders", ordersVersion, p, log, a.Metrics)
	products := newResource[models.Product]("products", productsVersion, p, log, a.Metrics)
	categories := newResource[models.Category]("categories", categoriesVersion, p, log, a.Metrics)
	users := newResource[models.User]("users", usersVersion, p, log, a.Metrics)
	topSold := newResource[models.TopSoldEntry]("top_sold", topSoldVersion, p, log, a.Metrics)
	chart := newResource[models.PeriodPoint]("order_chart", chartVersion, p, log, a.Metrics)
	revenue := newResource[models.Revenue]("revenue", revenueVersion, p, log, a.Metrics)

	for name, restore := range map[string]func(context.Context) error{
		"orders":      orders.Restore,
		"products":    products.Restore,
		"categories":  categories.Restore,
		"users":       users.Restore,
		"top_sold":    topSold.Restore,
		"order_chart": chart.Restore,
		"revenue":     revenue.Restore,
	} {
		if err := restore(ctx); err != nil {
			log.Error("Failed to restore %s: %v", name, err)
		}
	}

	// data fetched under one operator must not outlive their session
	a.Session.OnExpire(func() {
		ctx := context.Background()
		for name, reset := range map[string]func(context.Context) error{
			"orders":      orders.Reset,
			"products":    products.Reset,
			"categories":  categories.Reset,
			"users":       users.Reset,
			"top_sold":    topSold.Reset,
			"order_chart": chart.Reset,
			"revenue":     revenue.Reset,
		} {
			if err := reset(ctx); err != nil {
				log.Error("Failed to reset %s after session expiry: %v", name, err)
			}
		}
	})

	a.Orders = dispatch.NewOrders(backend.NewOrdersClient(a.Client), orders, a.Metrics)
	a.Products = dispatch.NewProducts(backend.NewProductsClient(a.Client), products, a.Metrics)
	a.Categories = dispatch.NewCategories(backend.NewCategoriesClient(a.Client), categories, a.Metrics)
	a.Users = dispatch.NewUsers(backend.NewUsersClient(a.Client), users, a.Metrics)
	a.Dashboard = dispatch.NewDashboard(backend.NewOrdersClient(a.Client), topSold, chart, revenue, a.Metrics)
	return a, nil
}
