package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/mocks"
	"github.com/phrazzld/catalog-api/internal/platform/blob"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	users := store.NewUserStore(blob.NewMemoryStore(), "users.csv", store.Options{})
	return NewUserService(users, nil)
}

func TestUserService_CreateRejectsMissingNameWithoutTouchingStore(t *testing.T) {
	mockStore := &mocks.MockRecordStore[domain.User]{}
	svc := NewUserService(mockStore, nil)

	_, err := svc.CreateUser(context.Background(), domain.UserInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, mockStore.Calls())

	_, err = svc.ReplaceUser(context.Background(), 1, domain.UserInput{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, mockStore.Calls())
}

func TestUserService_WrapsStoreErrors(t *testing.T) {
	storageErr := store.NewStoreError("user", "load", "read record file", store.ErrStorageRead)
	mockStore := &mocks.MockRecordStore[domain.User]{
		ListFn:   func(context.Context) ([]domain.User, error) { return nil, storageErr },
		GetFn:    func(context.Context, int) (domain.User, error) { return domain.User{}, store.ErrUserNotFound },
		DeleteFn: func(context.Context, int) error { return store.ErrUserNotFound },
		ExistsFn: func(context.Context) (bool, error) { return false, storageErr },
	}
	svc := NewUserService(mockStore, nil)
	ctx := context.Background()

	_, err := svc.ListUsers(ctx)
	assert.True(t, errors.Is(err, store.ErrStorageRead))

	_, err = svc.GetUser(ctx, 9)
	assert.True(t, errors.Is(err, store.ErrUserNotFound))

	err = svc.DeleteUser(ctx, 9)
	assert.True(t, errors.Is(err, store.ErrUserNotFound))

	_, err = svc.HasUsers(ctx)
	assert.True(t, errors.Is(err, store.ErrStorageRead))
}

func TestUserService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	has, err := svc.HasUsers(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	alice, err := svc.CreateUser(ctx, domain.UserInput{Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 1, Name: "Alice"}, alice)

	has, err = svc.HasUsers(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	patched, err := svc.PatchUser(ctx, 1, domain.UserInput{})
	require.NoError(t, err)
	assert.Equal(t, alice, patched, "empty patch changes nothing")

	patched, err = svc.PatchUser(ctx, 1, domain.UserInput{Name: "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", patched.Name)

	_, err = svc.ReplaceUser(ctx, 1, domain.UserInput{})
	require.Error(t, err)
	got, err := svc.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name, "failed replace leaves the record unchanged")

	replaced, err := svc.ReplaceUser(ctx, 1, domain.UserInput{Name: "Al"})
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 1, Name: "Al"}, replaced)

	_, err = svc.PatchUser(ctx, 5, domain.UserInput{Name: "Ghost"})
	assert.True(t, errors.Is(err, store.ErrUserNotFound))

	require.NoError(t, svc.DeleteUser(ctx, 1))
	all, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
