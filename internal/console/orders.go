package console

import (
	"net/http"
	"strconv"

	"stonepay_admin/internal/models"
	"stonepay_admin/internal/table"
	"stonepay_admin/pkg/text"
)

func (s *Server) ordersList(w http.ResponseWriter, r *http.Request) {
	_, err := s.Orders.FetchAll(r.Context())
	flash, ok := s.fetchFlash(w, r, err)
	if !ok {
		return
	}
	snap := s.Orders.Store.Snapshot()
	t := newTable(s, r, snap.Collection, OrderColumns(), OrderActions())
	s.render(w, r, http.StatusOK, "list", listPage{
		Heading: "Orders",
		Table:   t.View("/orders"),
		Empty:   "No orders found.",
	}, flash)
}

func orderLineColumns() []table.Column[models.OrderLine] {
	return []table.Column[models.OrderLine]{
		{Label: "Product", Render: func(l models.OrderLine) string { return l.ProductDetails.ProductName }},
		{Label: "Category", Render: func(l models.OrderLine) string { return l.ProductDetails.ProductCategory }},
		{Label: "Quantity", Render: func(l models.OrderLine) string { return strconv.Itoa(l.Quantity) }},
		{Label: "Price", Render: func(l models.OrderLine) string { return text.Naira(l.Price) }},
	}
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func optionalDate(s *string) string {
	if s == nil {
		return "N/A"
	}
	return FormatDateTime(*s)
}

func (s *Server) orderDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	order, err := s.Orders.Fetch(r.Context(), id)
	if err != nil {
		s.failTo(w, r, err, "/orders")
		return
	}

	lines := table.New(order.Products, orderLineColumns(), nil, nil).WithoutPagination().View(r.URL.Path)
	page := detailPage{
		Heading: "Order " + order.ID,
		Image:   imageSrc(order.UserDetails.UserImg),
		Fields: []field{
			{Label: "Customer", Value: order.UserDetails.FullName()},
			{Label: "Email", Value: order.UserDetails.Email},
			{Label: "Status", Value: order.Status, Class: orderStatusClass(order)},
			{Label: "Total", Value: text.Naira(order.TotalPrice)},
			{Label: "Payment method", Value: order.PaymentMethod},
			{Label: "Payment status", Value: order.PaymentStatus},
			{Label: "Payment date", Value: optionalDate(order.PaymentDate)},
			{Label: "Transaction reference", Value: optional(order.TransactionReference)},
			{Label: "Created", Value: FormatDateTime(order.CreatedAt)},
		},
		Table:    &lines,
		BackHref: "/orders",
	}
	if order.IsPending() {
		page.Links = append(page.Links, link{Label: "Update status", Href: r.URL.Path + "/status"})
	}
	page.Links = append(page.Links, link{Label: "Delete", Href: r.URL.Path + "/delete", Class: "danger"})
	s.render(w, r, http.StatusOK, "detail", page, nil)
}

func (s *Server) orderDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	s.confirm(w, r, "Are you sure you want to delete this order?", "/orders")
}

func (s *Server) orderDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failTo(w, r, err, "/orders")
		return
	}
	s.done(w, r, "Order deleted successfully", "/orders")
}

func (s *Server) orderStatusConfirm(w http.ResponseWriter, r *http.Request) {
	s.confirm(w, r, "Are you sure you want to update this order's status?", "/orders/"+esc(r.PathValue("id")))
}

func (s *Server) orderStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.Orders.UpdateStatus(r.Context(), id); err != nil {
		s.failTo(w, r, err, "/orders")
		return
	}
	s.done(w, r, "Order status updated successfully", "/orders/"+esc(id))
}
