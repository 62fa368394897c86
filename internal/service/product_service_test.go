package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockProductRepository is a mock implementation of repository.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Insert(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Replace(ctx context.Context, id primitive.ObjectID, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, id, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func validInput() model.ProductInput {
	return model.ProductInput{
		Name:        "Office Chair",
		Price:       json.RawMessage("149.50"),
		Description: "An ergonomic office chair",
	}
}

func TestProductService_Create_AssignsTimestamps(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	svc := service.NewProductService(repo)

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, 149.50, created.Price)
}

func TestProductService_Create_ValidationSkipsStore(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := service.NewProductService(mockRepo)

	in := validInput()
	in.Price = json.RawMessage(`"not-a-number"`)

	_, err := svc.Create(context.Background(), in)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price must be a valid number", ve.Message)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProductService_Create_StoreFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := service.NewProductService(mockRepo)

	mockRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	_, err := svc.Create(context.Background(), validInput())

	var se *model.StoreError
	require.ErrorAs(t, err, &se)
	mockRepo.AssertExpectations(t)
}

func TestProductService_List_EmptyStoreIsEmptySlice(t *testing.T) {
	svc := service.NewProductService(repository.NewMemoryProductRepository())

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductService_List_IsStable(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	svc := service.NewProductService(repo)
	ctx := context.Background()

	for _, name := range []string{"First Product", "Second Product", "Third Product"} {
		in := validInput()
		in.Name = name
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	first, err := svc.List(ctx)
	require.NoError(t, err)
	second, err := svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "First Product", first[0].Name)
	assert.Equal(t, "Third Product", first[2].Name)
}

func TestProductService_Update_ReplacesFieldsPreservesCreatedAt(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	svc := service.NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	in := model.ProductInput{
		Name:        "  Standing Desk  ",
		Price:       json.RawMessage(`"899.999"`),
		Description: "A motorized standing desk",
	}
	updated, err := svc.Update(ctx, created.ID.Hex(), in)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Standing Desk", updated.Name)
	assert.Equal(t, 900.0, updated.Price)
	assert.Equal(t, "A motorized standing desk", updated.Description)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc := service.NewProductService(repository.NewMemoryProductRepository())

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), validInput())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProductService_Update_MalformedIDIsNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := service.NewProductService(mockRepo)

	_, err := svc.Update(context.Background(), "doesnotexist", validInput())
	assert.ErrorIs(t, err, model.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Update_InvalidPayloadBeforeLookup(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := service.NewProductService(mockRepo)

	in := validInput()
	in.Price = json.RawMessage("0")

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), in)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price must be positive", ve.Message)
	mockRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Delete_ReturnsDeletedRecord(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	svc := service.NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, created.Name, deleted.Name)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_Delete_NotFoundLeavesStoreUntouched(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	svc := service.NewProductService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Delete(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, model.ErrNotFound)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
