package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"stonepay_admin/internal/models"
)

type SignInResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (r SignInResult) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return fmt.Errorf("%w: sign-in reply without token", models.ErrShape)
	}
	return nil
}

// SignIn exchanges credentials for a token and stores it in the session.
// It returns the console id bound to the new session.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var res SignInResult
	if err := c.call(ctx, http.MethodPost, "/auth/sign-in", body, &res); err != nil {
		return "", err
	}
	if c.session == nil {
		return "", nil
	}
	return c.session.Establish(ctx, res.Token, res.User)
}
