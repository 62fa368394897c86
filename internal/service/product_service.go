package service

import (
	"context"
	"errors"
	"time"

	"product-catalog/internal/logger"
	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
)

type ProductService struct {
	repo repository.ProductRepository
}

var ProductServiceTracer = otel.Tracer("ProductService")

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List returns every product in insertion order. An empty store yields an
// empty slice, never nil.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &model.StoreError{Op: "find", Err: err}
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// Create validates and normalizes the input, assigns timestamps, and
// persists the new product.
func (s *ProductService) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Create")
	defer span.End()
	logger.Info(ctx, "Service")

	product, err := model.NewProduct(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, &model.StoreError{Op: "insert", Err: err}
	}
	return product, nil
}

// Update replaces name, price, and description of an existing product. The
// id and createdAt are preserved; updatedAt is refreshed.
func (s *ProductService) Update(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Update")
	defer span.End()
	logger.Info(ctx, "Service")

	product, err := model.NewProduct(in)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An unparseable id cannot refer to a stored product.
		return nil, model.ErrNotFound
	}

	product.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	updated, err := s.repo.Replace(ctx, objID, product)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, &model.StoreError{Op: "update", Err: err}
	}
	return updated, nil
}

// Delete removes a product permanently and returns the removed record.
func (s *ProductService) Delete(ctx context.Context, id string) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Delete")
	defer span.End()
	logger.Info(ctx, "Service")

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}

	deleted, err := s.repo.Delete(ctx, objID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, &model.StoreError{Op: "delete", Err: err}
	}
	return deleted, nil
}
