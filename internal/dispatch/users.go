package dispatch

import (
	"context"

	"stonepay_admin/internal/backend"
	"stonepay_admin/internal/models"
	"stonepay_admin/internal/store"
	"stonepay_admin/metrics"
)

type Users struct {
	client  *backend.UsersClient
	Store   *store.Resource[models.User]
	metrics *metrics.DispatchMetrics
}

func NewUsers(client *backend.UsersClient, s *store.Resource[models.User], m *metrics.DispatchMetrics) *Users {
	return &Users{client: client, Store: s, metrics: m}
}

func (u *Users) Fetch(ctx context.Context, id string) (models.User, error) {
	return run(ctx, u.Store, u.metrics, store.OpFetchOne, "users/getUser", "Failed to get user, try again",
		func(ctx context.Context) (models.User, error) { return u.client.Get(ctx, id) },
		item[models.User])
}

func (u *Users) FetchAll(ctx context.Context) ([]models.User, error) {
	return run(ctx, u.Store, u.metrics, store.OpFetchAll, "users/getAllUsers", "Failed to get users, try again",
		u.client.List, items[models.User])
}

func (u *Users) Count(ctx context.Context) (int64, error) {
	return run(ctx, u.Store, u.metrics, store.OpCount, "users/getUserCount", "Failed to get user count, try again",
		u.client.Count, count[models.User])
}

func (u *Users) Update(ctx context.Context, id string, draft models.User) (models.User, error) {
	return run(ctx, u.Store, u.metrics, store.OpUpdate, "users/updateUser", "Failed to update user, try again",
		func(ctx context.Context) (models.User, error) { return u.client.Update(ctx, id, draft) },
		item[models.User])
}

func (u *Users) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, u.Store, u.metrics, store.OpDelete, "users/deleteUser", "Failed to delete user, try again",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, u.client.Delete(ctx, id) },
		func(struct{}) store.Payload[models.User] { return store.Payload[models.User]{ID: id} })
	return err
}
