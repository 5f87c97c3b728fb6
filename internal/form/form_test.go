package form

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stonepay_admin/internal/dispatch"
	"stonepay_admin/internal/models"
	"stonepay_admin/pkg/logger"
)

type fakeProducts struct {
	created   []models.Product
	updated   map[string]models.Product
	refreshed int
	err       error
}

func (f *fakeProducts) Create(_ context.Context, draft models.Product) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	f.created = append(f.created, draft)
	draft.ID = "new"
	return draft, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, draft models.Product) (models.Product, error) {
	if f.err != nil {
		return models.Product{}, f.err
	}
	if f.updated == nil {
		f.updated = map[string]models.Product{}
	}
	f.updated[id] = draft
	return draft, nil
}

func (f *fakeProducts) FetchAll(context.Context) ([]models.Product, error) {
	f.refreshed++
	return nil, errors.New("refresh is best effort")
}

type fakeCategories struct {
	calls int
}

func (f *fakeCategories) Create(_ context.Context, draft models.Category) (models.Category, error) {
	f.calls++
	return draft, nil
}

func (f *fakeCategories) Update(_ context.Context, _ string, draft models.Category) (models.Category, error) {
	f.calls++
	return draft, nil
}

func (f *fakeCategories) FetchAll(context.Context) ([]models.Category, error) { return nil, nil }

type fakeUsers struct {
	saved models.User
	err   error
}

func (f *fakeUsers) Update(_ context.Context, _ string, draft models.User) (models.User, error) {
	f.saved = draft
	return draft, f.err
}

func (f *fakeUsers) FetchAll(context.Context) ([]models.User, error) { return nil, nil }

type recordingLogger struct {
	logger.Logger
	errors []string
}

func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func validProduct() url.Values {
	return url.Values{
		"product_name":        {"Kettle"},
		"product_category":    {"c1"},
		"product_price":       {"2500.50"},
		"product_qty":         {"4"},
		"product_description": {"Steel"},
		"product_img":         {"https://img.example/k.png"},
	}
}

func TestBlankProductReportsEveryField(t *testing.T) {
	fake := &fakeProducts{}
	f := NewProductForm(fake, nil)
	f.Bind(url.Values{})

	out := f.Submit(context.Background())
	assert.False(t, out.Closed)
	assert.ErrorIs(t, out.Err, ErrInvalid)
	assert.Equal(t, []string{
		"product_category", "product_description", "product_img",
		"product_name", "product_price", "product_qty",
	}, out.FieldErrors.Fields())
	assert.Equal(t, "Product name is required.", out.FieldErrors["product_name"])
	assert.Empty(t, fake.created)
	assert.Zero(t, fake.refreshed)
}

func TestProductPriceAndQuantityMustBePositive(t *testing.T) {
	f := NewProductForm(&fakeProducts{}, nil)
	v := validProduct()
	v.Set("product_price", "-3")
	v.Set("product_qty", "1.5")
	f.Bind(v)

	fe := f.Validate()
	assert.True(t, fe.Has("product_price"))
	assert.True(t, fe.Has("product_qty"))
	assert.Len(t, fe, 2)
}

func TestCreateProductSucceeds(t *testing.T) {
	fake := &fakeProducts{}
	f := NewProductForm(fake, nil)
	f.Bind(validProduct())

	out := f.Submit(context.Background())
	assert.True(t, out.OK())
	assert.Equal(t, "Product created successfully!", out.Notice)
	require.Len(t, fake.created, 1)
	assert.Equal(t, "2500.5", fake.created[0].Price.String())
	assert.Equal(t, 4, fake.created[0].Quantity)
	assert.Equal(t, 1, fake.refreshed)
}

func TestEditKeepsImageWhenNoneUploaded(t *testing.T) {
	fake := &fakeProducts{}
	record := &models.Product{ID: "p1", Name: "Old", Image: "https://img.example/old.png"}
	f := NewProductForm(fake, record)
	require.Equal(t, ModeUpdate, f.Mode())

	v := validProduct()
	v.Del("product_img")
	f.Bind(v)
	out := f.Submit(context.Background())
	require.True(t, out.OK())
	assert.Equal(t, "Product updated successfully!", out.Notice)
	assert.Equal(t, "https://img.example/old.png", fake.updated["p1"].Image)
}

func TestRejectedSubmissionClosesWithMessage(t *testing.T) {
	fake := &fakeProducts{err: &dispatch.Rejection{Op: "product/createProduct", Message: "Failed to create product, try again"}}
	f := NewProductForm(fake, nil)
	f.Bind(validProduct())

	out := f.Submit(context.Background())
	assert.True(t, out.Closed)
	assert.False(t, out.OK())
	assert.Equal(t, "Failed to create product, try again", out.Notice)
	assert.Zero(t, fake.refreshed)
}

func TestCategoryRequiresNameAndDescription(t *testing.T) {
	fake := &fakeCategories{}
	f := NewCategoryForm(fake, nil)
	f.Bind(url.Values{"category_name": {"  "}})

	out := f.Submit(context.Background())
	assert.Equal(t, []string{"category_description", "category_name"}, out.FieldErrors.Fields())
	assert.Equal(t, "Category name is required.", out.FieldErrors["category_name"])
	assert.Zero(t, fake.calls)

	f.Bind(url.Values{"category_name": {"Kitchen"}, "category_description": {"Pots"}})
	out = f.Submit(context.Background())
	assert.Equal(t, "Category created successfully!", out.Notice)
	assert.Equal(t, 1, fake.calls)
}

func TestUserFormValidatesEmailAndKeepsUneditedFields(t *testing.T) {
	fake := &fakeUsers{}
	record := models.User{ID: "u1", FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", Role: "user", IsVerified: true}
	f := NewUserForm(fake, record)

	f.Bind(url.Values{"first_name": {"Ada"}, "last_name": {"Obi"}, "email": {"not-an-email"}, "role": {"admin"}})
	out := f.Submit(context.Background())
	assert.Equal(t, "Enter a valid email address.", out.FieldErrors["email"])

	f.Bind(url.Values{"first_name": {"Ada"}, "last_name": {"Obi"}, "email": {"ada@stonepay.ng"}, "role": {"admin"}, "is_active": {"on"}})
	out = f.Submit(context.Background())
	require.True(t, out.OK())
	assert.Equal(t, "User updated successfully!", out.Notice)
	assert.Equal(t, "admin", fake.saved.Role)
	assert.True(t, fake.saved.IsActive)
	assert.True(t, fake.saved.IsVerified)
	assert.Equal(t, "u1", fake.saved.ID)
}

func TestDataURLUploader(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	ref, err := DataURLUploader{}.Upload(context.Background(), "k.png", bytes.NewReader(png))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))

	_, err = DataURLUploader{}.Upload(context.Background(), "notes.txt", strings.NewReader("plain words"))
	assert.ErrorIs(t, err, ErrNotImage)

	big := bytes.Repeat([]byte{0}, MaxImageBytes+1)
	_, err = DataURLUploader{}.Upload(context.Background(), "big.png", bytes.NewReader(big))
	assert.Error(t, err)
}

func TestAttachImageStoresReference(t *testing.T) {
	f := NewProductForm(&fakeProducts{}, nil)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, f.AttachImage(context.Background(), DataURLUploader{}, "k.png", bytes.NewReader(png)))
	assert.False(t, f.Validate().Has("product_img"))
}

func TestFailedRefreshIsLogged(t *testing.T) {
	fake := &fakeProducts{}
	log := &recordingLogger{Logger: logger.Discard}
	f := NewProductForm(fake, nil).WithLogger(log)
	f.Bind(validProduct())

	out := f.Submit(context.Background())
	require.True(t, out.OK())
	assert.Equal(t, 1, fake.refreshed)
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "product")
	assert.Contains(t, log.errors[0], "refresh is best effort")
}
