package form

import (
	"context"
	"net/url"
	"strings"

	"stonepay_admin/internal/models"
	"stonepay_admin/pkg/logger"
)

type userDispatcher interface {
	Update(ctx context.Context, id string, draft models.User) (models.User, error)
	FetchAll(ctx context.Context) ([]models.User, error)
}

var Roles = []string{"user", "admin"}

type UserDraft struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
	IsActive  bool
}

// UserForm only edits; the backend cannot create users.
type UserForm struct {
	Draft  UserDraft
	Errors FieldErrors

	record models.User
	users  userDispatcher
	log    logger.Logger
}

func NewUserForm(users userDispatcher, record models.User) *UserForm {
	return &UserForm{
		users:  users,
		record: record,
		log:    logger.Discard,
		Errors: FieldErrors{},
		Draft: UserDraft{
			FirstName: record.FirstName,
			LastName:  record.LastName,
			Email:     record.Email,
			Role:      record.Role,
			IsActive:  record.IsActive,
		},
	}
}

func (f *UserForm) WithLogger(log logger.Logger) *UserForm {
	f.log = log
	return f
}

func (f *UserForm) Mode() Mode { return ModeUpdate }

func (f *UserForm) ID() string { return f.record.ID }

func (f *UserForm) Bind(values url.Values) {
	f.Draft.FirstName = strings.TrimSpace(values.Get("first_name"))
	f.Draft.LastName = strings.TrimSpace(values.Get("last_name"))
	f.Draft.Email = strings.TrimSpace(values.Get("email"))
	f.Draft.Role = strings.TrimSpace(values.Get("role"))
	f.Draft.IsActive = values.Get("is_active") == "on" || values.Get("is_active") == "true"
}

func (f *UserForm) Validate() FieldErrors {
	fe := FieldErrors{}
	fe.require("first_name", f.Draft.FirstName, "First name is required.")
	fe.require("last_name", f.Draft.LastName, "Last name is required.")
	fe.require("role", f.Draft.Role, "Role is required.")
	if strings.TrimSpace(f.Draft.Email) == "" {
		fe["email"] = "Email is required."
	} else if !emailRegex.MatchString(f.Draft.Email) {
		fe["email"] = "Enter a valid email address."
	}
	f.Errors = fe
	return fe
}

// User overlays the draft on the loaded record; fields the form does not
// edit pass through unchanged.
func (f *UserForm) User() models.User {
	u := f.record
	u.FirstName = f.Draft.FirstName
	u.LastName = f.Draft.LastName
	u.Email = f.Draft.Email
	u.Role = f.Draft.Role
	u.IsActive = f.Draft.IsActive
	return u
}

func (f *UserForm) Submit(ctx context.Context) Outcome {
	fe := f.Validate()
	save := func(ctx context.Context) error {
		_, err := f.users.Update(ctx, f.record.ID, f.User())
		return err
	}
	refresh := func(ctx context.Context) error {
		_, err := f.users.FetchAll(ctx)
		return err
	}
	return submit(ctx, f.log, ModeUpdate, "user", fe, save, refresh)
}
