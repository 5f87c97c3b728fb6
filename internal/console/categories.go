package console

import (
	"net/http"

	"stonepay_admin/internal/form"
	"stonepay_admin/internal/models"
)

type categoryFormPage struct {
	Heading string
	Action  string
	Submit  string
	Form    *form.CategoryForm
	Cancel  string
}

func (s *Server) categoriesList(w http.ResponseWriter, r *http.Request) {
	_, err := s.Categories.FetchAll(r.Context())
	flash, ok := s.fetchFlash(w, r, err)
	if !ok {
		return
	}
	snap := s.Categories.Store.Snapshot()
	t := newTable(s, r, snap.Collection, CategoryColumns(), CategoryActions())
	s.render(w, r, http.StatusOK, "list", listPage{
		Heading: "Product Categories",
		NewHref: "/categories/new",
		NewText: "Add category",
		Table:   t.View("/categories"),
		Empty:   "No categories found.",
	}, flash)
}

func (s *Server) renderCategoryForm(w http.ResponseWriter, r *http.Request, status int, f *form.CategoryForm) {
	page := categoryFormPage{
		Heading: "Create Category",
		Action:  "/categories/new",
		Submit:  "Create",
		Form:    f,
		Cancel:  "/categories",
	}
	if f.Mode() == form.ModeUpdate {
		page.Heading = "Update Category"
		page.Action = "/categories/" + esc(f.ID()) + "/edit"
		page.Submit = "Update"
	}
	s.render(w, r, status, "category_form", page, nil)
}

func (s *Server) categoryNew(w http.ResponseWriter, r *http.Request) {
	s.renderCategoryForm(w, r, http.StatusOK, form.NewCategoryForm(s.Categories, nil))
}

func (s *Server) categoryEdit(w http.ResponseWriter, r *http.Request) {
	category, err := s.Categories.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failTo(w, r, err, "/categories")
		return
	}
	s.renderCategoryForm(w, r, http.StatusOK, form.NewCategoryForm(s.Categories, &category))
}

func (s *Server) categoryCreate(w http.ResponseWriter, r *http.Request) {
	s.submitCategory(w, r, form.NewCategoryForm(s.Categories, nil).WithLogger(s.log))
}

func (s *Server) categoryUpdate(w http.ResponseWriter, r *http.Request) {
	s.submitCategory(w, r, form.NewCategoryForm(s.Categories, &models.Category{ID: r.PathValue("id")}).WithLogger(s.log))
}

func (s *Server) submitCategory(w http.ResponseWriter, r *http.Request, f *form.CategoryForm) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	f.Bind(r.PostForm)
	out := f.Submit(r.Context())
	s.finish(w, r, out, "/categories", func() {
		s.renderCategoryForm(w, r, http.StatusUnprocessableEntity, f)
	})
}

func (s *Server) categoryDetail(w http.ResponseWriter, r *http.Request) {
	category, err := s.Categories.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failTo(w, r, err, "/categories")
		return
	}
	s.render(w, r, http.StatusOK, "detail", detailPage{
		Heading: category.Name,
		Fields: []field{
			{Label: "Description", Value: category.Description},
			{Label: "Created", Value: FormatDateTime(category.CreatedAt)},
		},
		Links: []link{
			{Label: "Update", Href: r.URL.Path + "/edit"},
			{Label: "Delete", Href: r.URL.Path + "/delete", Class: "danger"},
		},
		BackHref: "/categories",
	}, nil)
}

func (s *Server) categoryDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	s.confirm(w, r, "Are you sure you want to delete this category?", "/categories")
}

func (s *Server) categoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failTo(w, r, err, "/categories")
		return
	}
	s.done(w, r, "Category deleted successfully", "/categories")
}
