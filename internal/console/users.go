package console

import (
	"net/http"
	"slices"

	"stonepay_admin/internal/form"
)

type userFormPage struct {
	Heading string
	Action  string
	Form    *form.UserForm
	Roles   []string
	Cancel  string
}

func (s *Server) usersList(w http.ResponseWriter, r *http.Request) {
	_, err := s.Users.FetchAll(r.Context())
	flash, ok := s.fetchFlash(w, r, err)
	if !ok {
		return
	}
	snap := s.Users.Store.Snapshot()
	t := newTable(s, r, snap.Collection, UserColumns(), UserActions())
	s.render(w, r, http.StatusOK, "list", listPage{
		Heading: "Users",
		Table:   t.View("/users"),
		Empty:   "No users found.",
	}, flash)
}

// roleChoices keeps an unknown current role selectable.
func roleChoices(current string) []string {
	roles := append([]string(nil), form.Roles...)
	if current != "" && !slices.Contains(roles, current) {
		roles = append(roles, current)
	}
	return roles
}

func (s *Server) renderUserForm(w http.ResponseWriter, r *http.Request, status int, f *form.UserForm) {
	s.render(w, r, status, "user_form", userFormPage{
		Heading: "Update User",
		Action:  "/users/" + esc(f.ID()) + "/edit",
		Form:    f,
		Roles:   roleChoices(f.Draft.Role),
		Cancel:  "/users",
	}, nil)
}

func (s *Server) userEdit(w http.ResponseWriter, r *http.Request) {
	user, err := s.Users.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failTo(w, r, err, "/users")
		return
	}
	s.renderUserForm(w, r, http.StatusOK, form.NewUserForm(s.Users, user))
}

// userUpdate reloads the record first so fields the form does not show are
// sent back unchanged.
func (s *Server) userUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := s.Users.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failTo(w, r, err, "/users")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	f := form.NewUserForm(s.Users, user).WithLogger(s.log)
	f.Bind(r.PostForm)
	out := f.Submit(r.Context())
	s.finish(w, r, out, "/users", func() {
		s.renderUserForm(w, r, http.StatusUnprocessableEntity, f)
	})
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func (s *Server) userDetail(w http.ResponseWriter, r *http.Request) {
	user, err := s.Users.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failTo(w, r, err, "/users")
		return
	}
	s.render(w, r, http.StatusOK, "detail", detailPage{
		Heading: user.FullName(),
		Image:   imageSrc(user.UserImg),
		Fields: []field{
			{Label: "Email", Value: user.Email},
			{Label: "Role", Value: user.Role},
			{Label: "Active", Value: yesNo(user.IsActive)},
			{Label: "Verified", Value: yesNo(user.IsVerified)},
			{Label: "Joined", Value: FormatDateTime(user.CreatedAt)},
		},
		Links: []link{
			{Label: "Edit", Href: r.URL.Path + "/edit"},
			{Label: "Delete", Href: r.URL.Path + "/delete", Class: "danger"},
		},
		BackHref: "/users",
	}, nil)
}

func (s *Server) userDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	s.confirm(w, r, "Are you sure you want to delete this user?", "/users")
}

func (s *Server) userDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Users.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failTo(w, r, err, "/users")
		return
	}
	s.done(w, r, "User deleted successfully", "/users")
}
