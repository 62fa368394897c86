package repository

import (
	"context"
	"sync"

	"product-catalog/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryProductRepository is an in-memory ProductRepository that preserves
// insertion order. It backs tests and local runs without a MongoDB instance.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	order    []primitive.ObjectID
	products map[primitive.ObjectID]model.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[primitive.ObjectID]model.Product),
	}
}

func (r *MemoryProductRepository) FindAll(_ context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &product, nil
}

func (r *MemoryProductRepository) Insert(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = primitive.NewObjectID()
	r.order = append(r.order, product.ID)
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) Replace(_ context.Context, id primitive.ObjectID, product *model.Product) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[id]
	if !ok {
		return nil, model.ErrNotFound
	}

	current.Name = product.Name
	current.Price = product.Price
	current.Description = product.Description
	current.UpdatedAt = product.UpdatedAt
	r.products[id] = current

	updated := current
	return &updated, nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, model.ErrNotFound
	}

	delete(r.products, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &product, nil
}
