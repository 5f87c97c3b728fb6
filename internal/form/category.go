package form

import (
	"context"
	"net/url"
	"strings"

	"stonepay_admin/internal/models"
	"stonepay_admin/pkg/logger"
)

type categoryDispatcher interface {
	Create(ctx context.Context, draft models.Category) (models.Category, error)
	Update(ctx context.Context, id string, draft models.Category) (models.Category, error)
	FetchAll(ctx context.Context) ([]models.Category, error)
}

type CategoryDraft struct {
	Name        string
	Description string
}

type CategoryForm struct {
	Draft  CategoryDraft
	Errors FieldErrors

	id         string
	categories categoryDispatcher
	log        logger.Logger
}

func NewCategoryForm(categories categoryDispatcher, record *models.Category) *CategoryForm {
	f := &CategoryForm{categories: categories, Errors: FieldErrors{}, log: logger.Discard}
	if record != nil && record.ID != "" {
		f.id = record.ID
		f.Draft = CategoryDraft{Name: record.Name, Description: record.Description}
	}
	return f
}

// WithLogger reports failures that do not reach the operator, such as the
// list refresh after a save.
func (f *CategoryForm) WithLogger(log logger.Logger) *CategoryForm {
	f.log = log
	return f
}

func (f *CategoryForm) Mode() Mode {
	if f.id != "" {
		return ModeUpdate
	}
	return ModeCreate
}

func (f *CategoryForm) ID() string { return f.id }

func (f *CategoryForm) Bind(values url.Values) {
	f.Draft.Name = strings.TrimSpace(values.Get("category_name"))
	f.Draft.Description = strings.TrimSpace(values.Get("category_description"))
}

func (f *CategoryForm) Validate() FieldErrors {
	fe := FieldErrors{}
	fe.require("category_name", f.Draft.Name, "Category name is required.")
	fe.require("category_description", f.Draft.Description, "Category description is required.")
	f.Errors = fe
	return fe
}

func (f *CategoryForm) Category() models.Category {
	return models.Category{ID: f.id, Name: f.Draft.Name, Description: f.Draft.Description}
}

func (f *CategoryForm) Submit(ctx context.Context) Outcome {
	fe := f.Validate()
	save := func(ctx context.Context) error {
		var err error
		if f.Mode() == ModeUpdate {
			_, err = f.categories.Update(ctx, f.id, f.Category())
		} else {
			_, err = f.categories.Create(ctx, f.Category())
		}
		return err
	}
	refresh := func(ctx context.Context) error {
		_, err := f.categories.FetchAll(ctx)
		return err
	}
	return submit(ctx, f.log, f.Mode(), "category", fe, save, refresh)
}
