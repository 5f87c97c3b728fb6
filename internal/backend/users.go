package backend

import (
	"context"
	"net/http"
	"net/url"

	"stonepay_admin/internal/models"
)

type UsersClient struct {
	c *Client
}

func NewUsersClient(c *Client) *UsersClient {
	return &UsersClient{c: c}
}

func (u *UsersClient) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := u.c.Do(ctx, http.MethodGet, "/users/get_user/"+url.PathEscape(id), nil, &user)
	return user, err
}

func (u *UsersClient) List(ctx context.Context) ([]models.User, error) {
	var users models.List[models.User]
	err := u.c.Do(ctx, http.MethodGet, "/users/get_users", nil, &users)
	return users, err
}

func (u *UsersClient) Count(ctx context.Context) (int64, error) {
	var n models.Count
	err := u.c.Do(ctx, http.MethodGet, "/users/total_count", nil, &n)
	return int64(n), err
}

func (u *UsersClient) Update(ctx context.Context, id string, user models.User) (models.User, error) {
	user.ID = ""
	var updated models.User
	err := u.c.Do(ctx, http.MethodPut, "/users/update_user/"+url.PathEscape(id), user, &updated)
	return updated, err
}

func (u *UsersClient) Delete(ctx context.Context, id string) error {
	return u.c.Do(ctx, http.MethodDelete, "/users/delete_user/"+url.PathEscape(id), nil, nil)
}
