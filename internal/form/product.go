package form

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"stonepay_admin/internal/models"
	"stonepay_admin/pkg/logger"
)

type productDispatcher interface {
	Create(ctx context.Context, draft models.Product) (models.Product, error)
	Update(ctx context.Context, id string, draft models.Product) (models.Product, error)
	FetchAll(ctx context.Context) ([]models.Product, error)
}

// ProductDraft keeps raw input so a rejected draft re-renders as typed.
type ProductDraft struct {
	Name        string
	Category    string
	Price       string
	Quantity    string
	Description string
	Image       string
}

type ProductForm struct {
	Draft  ProductDraft
	Errors FieldErrors

	id       string
	products productDispatcher
	log      logger.Logger
}

// NewProductForm edits record when it has an id, otherwise creates.
func NewProductForm(products productDispatcher, record *models.Product) *ProductForm {
	f := &ProductForm{products: products, Errors: FieldErrors{}, log: logger.Discard}
	if record != nil && record.ID != "" {
		f.id = record.ID
		f.Draft = ProductDraft{
			Name:        record.Name,
			Category:    record.Category,
			Price:       record.Price.String(),
			Quantity:    strconv.Itoa(record.Quantity),
			Description: record.Description,
			Image:       record.Image,
		}
	}
	return f
}

// WithLogger reports failures that do not reach the operator, such as the
// list refresh after a save.
func (f *ProductForm) WithLogger(log logger.Logger) *ProductForm {
	f.log = log
	return f
}

func (f *ProductForm) Mode() Mode {
	if f.id != "" {
		return ModeUpdate
	}
	return ModeCreate
}

func (f *ProductForm) ID() string { return f.id }

// Bind copies posted values into the draft. An empty product_img keeps the
// current image so edits need not re-upload.
func (f *ProductForm) Bind(values url.Values) {
	f.Draft.Name = strings.TrimSpace(values.Get("product_name"))
	f.Draft.Category = strings.TrimSpace(values.Get("product_category"))
	f.Draft.Price = strings.TrimSpace(values.Get("product_price"))
	f.Draft.Quantity = strings.TrimSpace(values.Get("product_qty"))
	f.Draft.Description = strings.TrimSpace(values.Get("product_description"))
	if img := strings.TrimSpace(values.Get("product_img")); img != "" {
		f.Draft.Image = img
	}
}

// AttachImage uploads r and stores the resulting reference in the draft.
func (f *ProductForm) AttachImage(ctx context.Context, up ImageUploader, name string, r io.Reader) error {
	ref, err := up.Upload(ctx, name, r)
	if err != nil {
		return err
	}
	f.Draft.Image = ref
	return nil
}

func (f *ProductForm) Validate() FieldErrors {
	fe := FieldErrors{}
	fe.require("product_name", f.Draft.Name, "Product name is required.")
	fe.require("product_category", f.Draft.Category, "Product category is required.")
	fe.require("product_description", f.Draft.Description, "Product description is required.")
	fe.require("product_img", f.Draft.Image, "Product image is required.")

	if strings.TrimSpace(f.Draft.Price) == "" {
		fe["product_price"] = "Product price is required."
	} else if price, err := decimal.NewFromString(f.Draft.Price); err != nil || !price.IsPositive() {
		fe["product_price"] = "Product price must be a number greater than zero."
	}
	if strings.TrimSpace(f.Draft.Quantity) == "" {
		fe["product_qty"] = "Product quantity is required."
	} else if qty, err := strconv.Atoi(f.Draft.Quantity); err != nil || qty <= 0 {
		fe["product_qty"] = "Product quantity must be a whole number greater than zero."
	}

	f.Errors = fe
	return fe
}

// Product converts a valid draft.
func (f *ProductForm) Product() models.Product {
	price, _ := decimal.NewFromString(f.Draft.Price)
	qty, _ := strconv.Atoi(f.Draft.Quantity)
	return models.Product{
		ID:          f.id,
		Name:        f.Draft.Name,
		Category:    f.Draft.Category,
		Price:       price,
		Quantity:    qty,
		Description: f.Draft.Description,
		Image:       f.Draft.Image,
	}
}

func (f *ProductForm) Submit(ctx context.Context) Outcome {
	fe := f.Validate()
	save := func(ctx context.Context) error {
		var err error
		if f.Mode() == ModeUpdate {
			_, err = f.products.Update(ctx, f.id, f.Product())
		} else {
			_, err = f.products.Create(ctx, f.Product())
		}
		return err
	}
	refresh := func(ctx context.Context) error {
		_, err := f.products.FetchAll(ctx)
		return err
	}
	return submit(ctx, f.log, f.Mode(), "product", fe, save, refresh)
}
