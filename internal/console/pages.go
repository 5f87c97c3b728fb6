package console

import (
	"net/http"

	"stonepay_admin/internal/table"
)

// newTable builds a table whose state comes from the request's query string.
// The page is clamped so a refresh after deletes never shows an empty page.
func newTable[T table.Row](s *Server, r *http.Request, rows []T, cols []table.Column[T], actions []table.Action[T]) *table.Table[T] {
	t := table.New(rows, cols, actions, s.ItemsPerPage)
	t.FromQuery(r.URL.Query())
	t.Clamp()
	return t
}

func (s *Server) confirm(w http.ResponseWriter, r *http.Request, question, cancel string) {
	s.render(w, r, http.StatusOK, "confirm", confirmPage{
		Question: question,
		Action:   r.URL.Path,
		Confirm:  "Yes",
		Cancel:   cancel,
	}, nil)
}

// done flashes a success message and redirects.
func (s *Server) done(w http.ResponseWriter, r *http.Request, message, target string) {
	s.setFlash(w, FlashSuccess, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
