package console

import (
	"net/http"

	"stonepay_admin/metrics"
)

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	s.mux.Handle("GET /metrics", metrics.MetricsHandler())

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	s.mux.HandleFunc("GET /sign-in", s.signInForm)
	s.mux.HandleFunc("POST /sign-in", s.signIn)
	s.mux.HandleFunc("POST /sign-out", s.signOut)

	s.mux.HandleFunc("GET /dashboard", s.requireSession(s.dashboard))

	s.mux.HandleFunc("GET /orders", s.requireSession(s.ordersList))
	s.mux.HandleFunc("GET /orders/{id}", s.requireSession(s.orderDetail))
	s.mux.HandleFunc("GET /orders/{id}/delete", s.requireSession(s.orderDeleteConfirm))
	s.mux.HandleFunc("POST /orders/{id}/delete", s.requireSession(s.orderDelete))
	s.mux.HandleFunc("GET /orders/{id}/status", s.requireSession(s.orderStatusConfirm))
	s.mux.HandleFunc("POST /orders/{id}/status", s.requireSession(s.orderStatus))

	s.mux.HandleFunc("GET /products", s.requireSession(s.productsList))
	s.mux.HandleFunc("GET /products/new", s.requireSession(s.productNew))
	s.mux.HandleFunc("POST /products/new", s.requireSession(s.productCreate))
	s.mux.HandleFunc("GET /products/{id}", s.requireSession(s.productDetail))
	s.mux.HandleFunc("GET /products/{id}/edit", s.requireSession(s.productEdit))
	s.mux.HandleFunc("POST /products/{id}/edit", s.requireSession(s.productUpdate))
	s.mux.HandleFunc("GET /products/{id}/delete", s.requireSession(s.productDeleteConfirm))
	s.mux.HandleFunc("POST /products/{id}/delete", s.requireSession(s.productDelete))

	s.mux.HandleFunc("GET /categories", s.requireSession(s.categoriesList))
	s.mux.HandleFunc("GET /categories/new", s.requireSession(s.categoryNew))
	s.mux.HandleFunc("POST /categories/new", s.requireSession(s.categoryCreate))
	s.mux.HandleFunc("GET /categories/{id}", s.requireSession(s.categoryDetail))
	s.mux.HandleFunc("GET /categories/{id}/edit", s.requireSession(s.categoryEdit))
	s.mux.HandleFunc("POST /categories/{id}/edit", s.requireSession(s.categoryUpdate))
	s.mux.HandleFunc("GET /categories/{id}/delete", s.requireSession(s.categoryDeleteConfirm))
	s.mux.HandleFunc("POST /categories/{id}/delete", s.requireSession(s.categoryDelete))

	s.mux.HandleFunc("GET /users", s.requireSession(s.usersList))
	s.mux.HandleFunc("GET /users/{id}", s.requireSession(s.userDetail))
	s.mux.HandleFunc("GET /users/{id}/edit", s.requireSession(s.userEdit))
	s.mux.HandleFunc("POST /users/{id}/edit", s.requireSession(s.userUpdate))
	s.mux.HandleFunc("GET /users/{id}/delete", s.requireSession(s.userDeleteConfirm))
	s.mux.HandleFunc("POST /users/{id}/delete", s.requireSession(s.userDelete))
}
