// Package form holds the create and edit drafts behind the console's modal
// forms. Validation is local and synchronous; nothing is sent while a draft
// has field errors.
package form

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"stonepay_admin/internal/dispatch"
	"stonepay_admin/pkg/logger"
)

// ErrInvalid is returned in Outcome.Err when the draft failed validation.
var ErrInvalid = errors.New("form has invalid fields")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Fields returns the failing field names in a stable order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for f := range fe {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (fe FieldErrors) require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = message
	}
}

// Outcome is the result of Submit. Closed is false only when validation
// failed; a rejected submission still closes the form and carries the
// rejection in Err and Notice.
type Outcome struct {
	Closed      bool
	Notice      string
	Err         error
	FieldErrors FieldErrors
}

func (o Outcome) OK() bool { return o.Closed && o.Err == nil }

// submit runs save and, after a successful save, refresh.
func submit(ctx context.Context, log logger.Logger, mode Mode, noun string, fe FieldErrors, save, refresh func(context.Context) error) Outcome {
	if len(fe) > 0 {
		return Outcome{Err: ErrInvalid, FieldErrors: fe}
	}

	if err := save(ctx); err != nil {
		msg := dispatch.MessageOf(err)
		if msg == "" {
			msg = "Failed to " + mode.String() + " " + noun + ", try again!"
		}
		return Outcome{Closed: true, Notice: msg, Err: err}
	}

	notice := capitalize(noun) + " created successfully!"
	if mode == ModeUpdate {
		notice = capitalize(noun) + " updated successfully!"
	}
	if refresh != nil {
		// the saved record stays in the store either way
		if err := refresh(ctx); err != nil {
			log.Error("Refreshing %s list after %s failed: %v", noun, mode, err)
		}
	}
	return Outcome{Closed: true, Notice: notice}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
