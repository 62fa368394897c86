package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"product-catalog/internal/client"
	handlerhttp "product-catalog/internal/handler/http"
	"product-catalog/internal/model"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	repo := repository.NewMemoryProductRepository()
	products := handlerhttp.NewProductHandler(service.NewProductService(repo))
	health := handlerhttp.NewHealthHandler(service.NewHealthService(nil))

	srv := httptest.NewServer(handlerhttp.NewRouter(products, health))
	t.Cleanup(srv.Close)
	return srv
}

func TestProductAPI_RoundTrip(t *testing.T) {
	srv := newBackend(t)
	api := client.NewProductAPI(srv.URL, 2*time.Second)
	ctx := context.Background()

	created, err := api.Create(ctx, model.ProductInput{
		Name:        "Chair",
		Price:       json.RawMessage(`"19.999"`),
		Description: "A sturdy chair",
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, created.Price)

	products, err := api.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	updated, err := api.Update(ctx, created.ID.Hex(), model.ProductInput{
		Name:        "Armchair",
		Price:       json.RawMessage("25"),
		Description: "A comfy armchair",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Armchair", updated.Name)

	deleted, err := api.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	products, err = api.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductAPI_ValidationRejection(t *testing.T) {
	srv := newBackend(t)
	api := client.NewProductAPI(srv.URL, 2*time.Second)

	_, err := api.Create(context.Background(), model.ProductInput{
		Name:        "Chair",
		Price:       json.RawMessage(`"abc"`),
		Description: "A sturdy chair",
	})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "price must be a valid number", apiErr.Message)
}

func TestProductAPI_NotFound(t *testing.T) {
	srv := newBackend(t)
	api := client.NewProductAPI(srv.URL, 2*time.Second)

	_, err := api.Delete(context.Background(), "doesnotexist")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestProductAPI_TransportFailureIsNotAPIError(t *testing.T) {
	srv := newBackend(t)
	srv.Close()

	api := client.NewProductAPI(srv.URL, 500*time.Millisecond)
	_, err := api.List(context.Background())

	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}
