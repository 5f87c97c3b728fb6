package console

import (
	"errors"
	"net/http"
	"strconv"

	"stonepay_admin/internal/form"
	"stonepay_admin/internal/models"
	"stonepay_admin/pkg/text"
)

type productFormPage struct {
	Heading    string
	Action     string
	Submit     string
	Form       *form.ProductForm
	Categories []models.Category
	Cancel     string
}

func (s *Server) productsList(w http.ResponseWriter, r *http.Request) {
	_, err := s.Products.FetchAll(r.Context())
	flash, ok := s.fetchFlash(w, r, err)
	if !ok {
		return
	}
	// the category lookup is best effort; unresolved references show as-is
	if _, err := s.Categories.FetchAll(r.Context()); err != nil && s.expired(w, r, err) {
		return
	}

	categories := s.Categories.Store.Snapshot().Collection
	snap := s.Products.Store.Snapshot()
	t := newTable(s, r, snap.Collection, ProductColumns(categories), ProductActions())
	s.render(w, r, http.StatusOK, "list", listPage{
		Heading: "Products",
		NewHref: "/products/new",
		NewText: "Add product",
		Table:   t.View("/products"),
		Empty:   "No products found.",
	}, flash)
}

// categoryChoices loads the options for the product form's category select.
func (s *Server) categoryChoices(w http.ResponseWriter, r *http.Request) ([]models.Category, bool) {
	if _, err := s.Categories.FetchAll(r.Context()); err != nil && s.expired(w, r, err) {
		return nil, false
	}
	return s.Categories.Store.Snapshot().Collection, true
}

func (s *Server) renderProductForm(w http.ResponseWriter, r *http.Request, status int, f *form.ProductForm) {
	categories, ok := s.categoryChoices(w, r)
	if !ok {
		return
	}
	page := productFormPage{
		Heading:    "Create Product",
		Action:     "/products/new",
		Submit:     "Create",
		Form:       f,
		Categories: categories,
		Cancel:     "/products",
	}
	if f.Mode() == form.ModeUpdate {
		page.Heading = "Update Product"
		page.Action = "/products/" + esc(f.ID()) + "/edit"
		page.Submit = "Update"
	}
	s.render(w, r, status, "product_form", page, nil)
}

func (s *Server) productNew(w http.ResponseWriter, r *http.Request) {
	s.renderProductForm(w, r, http.StatusOK, form.NewProductForm(s.Products, nil))
}

func (s *Server) productEdit(w http.ResponseWriter, r *http.Request) {
	product, err := s.Products.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failTo(w, r, err, "/products")
		return
	}
	s.renderProductForm(w, r, http.StatusOK, form.NewProductForm(s.Products, &product))
}

func (s *Server) productCreate(w http.ResponseWriter, r *http.Request) {
	s.submitProduct(w, r, form.NewProductForm(s.Products, nil).WithLogger(s.log))
}

func (s *Server) productUpdate(w http.ResponseWriter, r *http.Request) {
	s.submitProduct(w, r, form.NewProductForm(s.Products, &models.Product{ID: r.PathValue("id")}).WithLogger(s.log))
}

func (s *Server) submitProduct(w http.ResponseWriter, r *http.Request, f *form.ProductForm) {
	if err := r.ParseMultipartForm(form.MaxImageBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	f.Bind(r.Form)

	if file, hdr, err := r.FormFile("product_img_file"); err == nil {
		uploadErr := f.AttachImage(r.Context(), s.Uploader, hdr.Filename, file)
		file.Close()
		if uploadErr != nil {
			s.log.Error("Image upload failed: %v", uploadErr)
			f.Validate()
			f.Errors["product_img"] = "Image upload failed: " + uploadErr.Error()
			s.renderProductForm(w, r, http.StatusUnprocessableEntity, f)
			return
		}
	}

	out := f.Submit(r.Context())
	s.finish(w, r, out, "/products", func() {
		s.renderProductForm(w, r, http.StatusUnprocessableEntity, f)
	})
}

// finish settles a form submission: invalid drafts re-render, everything
// else closes the form with a notice.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, out form.Outcome, list string, rerender func()) {
	switch {
	case errors.Is(out.Err, form.ErrInvalid):
		rerender()
	case out.Err != nil:
		if s.expired(w, r, out.Err) {
			return
		}
		s.setFlash(w, FlashError, out.Notice)
		http.Redirect(w, r, list, http.StatusSeeOther)
	default:
		s.done(w, r, out.Notice, list)
	}
}

func (s *Server) productDetail(w http.ResponseWriter, r *http.Request) {
	product, err := s.Products.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failTo(w, r, err, "/products")
		return
	}
	categories, ok := s.categoryChoices(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "detail", detailPage{
		Heading: product.Name,
		Image:   imageSrc(product.Image),
		Fields: []field{
			{Label: "Category", Value: models.CategoryName(categories, product.Category)},
			{Label: "Unit price", Value: text.Naira(product.Price)},
			{Label: "Quantity", Value: strconv.Itoa(product.Quantity)},
			{Label: "Description", Value: text.RemoveTags(product.Description)},
			{Label: "Created", Value: FormatDateTime(product.CreatedAt)},
		},
		Links: []link{
			{Label: "Edit", Href: r.URL.Path + "/edit"},
			{Label: "Delete", Href: r.URL.Path + "/delete", Class: "danger"},
		},
		BackHref: "/products",
	}, nil)
}

func (s *Server) productDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	s.confirm(w, r, "Are you sure you want to delete this product?", "/products")
}

func (s *Server) productDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.Products.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.failTo(w, r, err, "/products")
		return
	}
	s.done(w, r, "Product deleted successfully", "/products")
}
