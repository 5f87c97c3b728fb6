// Package console is the server-rendered admin UI. Every page fetches through
// the dispatchers on each request and renders the resource stores' snapshots.
package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/dispatch"
	"stonepay_admin/internal/form"
	"stonepay_admin/pkg/logger"
	"stonepay_admin/pkg/middleware"
)

type Deps struct {
	Session    *backend.Session
	Client     *backend.Client
	Orders     *dispatch.Orders
	Products   *dispatch.Products
	Categories *dispatch.Categories
	Users      *dispatch.Users
	Dashboard  *dispatch.Dashboard
	Uploader   form.ImageUploader
	Logger     logger.Logger

	ItemsPerPage []int
	ChartDays    int
	CookieSecure bool
	// Now is overridable in tests.
	Now func() time.Time
}

type Server struct {
	Deps
	mux   *http.ServeMux
	pages *pageSet
	log   logger.Logger
}

func NewServer(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = logger.Discard
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.ChartDays <= 0 {
		deps.ChartDays = 7
	}
	if deps.Uploader == nil {
		deps.Uploader = form.DataURLUploader{}
	}
	pages, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	s := &Server{Deps: deps, mux: http.NewServeMux(), pages: pages, log: deps.Logger}
	s.routes()
	return s, nil
}

// Handler is the full console, instrumented.
func (s *Server) Handler() http.Handler {
	return middleware.PrometheusMiddleware(s.logRequests(s.mux))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Log("%s %s in %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Log("Console listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Log("Shutting down console")
		return srv.Shutdown(shutdownCtx)
	}
}
