package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product store used for demos/tests.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*storedProduct
	now      func() time.Time
}

type storedProduct struct {
	product  domain.Product
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		products: map[string]*storedProduct{},
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a product while maintaining metadata.
func (r *Repository) Save(_ context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	if product.ID == "" {
		return nil, errors.New("product id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if existing, ok := r.products[product.ID]; ok {
		metadata.CreatedAt = existing.metadata.CreatedAt
	}
	stored := &storedProduct{product: *product, metadata: metadata}
	r.products[product.ID] = stored
	return stored.projection(), nil
}

// GetByID fetches a product if present.
func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return stored.projection(), nil
}

// List returns every product.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Product], 0, len(r.products))
	for _, stored := range r.products {
		list = append(list, stored.projection())
	}
	return list, nil
}

// SetQuantity overwrites stock for an existing product.
func (r *Repository) SetQuantity(_ context.Context, id string, quantity int64) (*projection.Projection[*domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := stored.product.SetQuantity(quantity); err != nil {
		return nil, err
	}
	stored.metadata.UpdatedAt = r.now()
	return stored.projection(), nil
}

// Decrement removes qty units under the write lock.
func (r *Repository) Decrement(_ context.Context, id string, qty int64) (*projection.Projection[*domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := stored.product.Decrement(qty); err != nil {
		return nil, err
	}
	stored.metadata.UpdatedAt = r.now()
	return stored.projection(), nil
}

func (s *storedProduct) projection() *projection.Projection[*domain.Product] {
	clone := s.product
	return projection.New(&clone, s.metadata.CreatedAt, s.metadata.UpdatedAt)
}
