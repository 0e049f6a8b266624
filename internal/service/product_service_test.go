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

func TestProductService_ValidationHasNoSideEffects(t *testing.T) {
	mockStore := &mocks.MockRecordStore[domain.Product]{}
	svc := NewProductService(mockStore, nil)
	ctx := context.Background()

	missingPrice := domain.ProductInput{Name: "Lamp", Description: "Desk lamp"}

	_, err := svc.CreateProduct(ctx, missingPrice)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.MsgProductFieldsRequired, verr.Message)

	_, err = svc.ReplaceProduct(ctx, 1, missingPrice)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.PatchProduct(ctx, 1, domain.ProductInput{Price: domain.Price{Set: true, Malformed: true}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.MsgPriceNotNumber, verr.Message)

	assert.Empty(t, mockStore.Calls())
}

func TestProductService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemoryStore()
	svc := NewProductService(store.NewProductStore(blobs, "products.csv", store.Options{}), nil)

	lamp, err := svc.CreateProduct(ctx, domain.ProductInput{
		Name:        "Lamp",
		Price:       domain.NewPrice(19.5),
		Description: "Desk lamp",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: 1, Name: "Lamp", Price: 19.5, Description: "Desk lamp"}, lamp)

	patched, err := svc.PatchProduct(ctx, 1, domain.ProductInput{Price: domain.NewPrice(21)})
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: 1, Name: "Lamp", Price: 21, Description: "Desk lamp"}, patched)

	replaced, err := svc.ReplaceProduct(ctx, 1, domain.ProductInput{
		Name:        "Chair",
		Price:       domain.NewPrice(45),
		Description: "Oak chair",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: 1, Name: "Chair", Price: 45, Description: "Oak chair"}, replaced)

	data, err := blobs.Get(ctx, "products.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,name,price,description\n1,Chair,45,Oak chair\n", string(data))

	_, err = svc.GetProduct(ctx, 2)
	assert.True(t, errors.Is(err, store.ErrProductNotFound))

	require.NoError(t, svc.DeleteProduct(ctx, 1))
	has, err := svc.HasProducts(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}
