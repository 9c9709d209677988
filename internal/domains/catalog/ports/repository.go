package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/projection"
)

var ErrNotFound = errors.New("product not found")

// Repository persists products. Products are never deleted.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Product], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Product], error)
	// SetQuantity overwrites the stock of an existing product.
	SetQuantity(ctx context.Context, id string, quantity int64) (*projection.Projection[*domain.Product], error)
	// Decrement atomically removes qty units. It returns ErrNotFound for unknown ids and
	// domain.ErrInsufficientStock when qty exceeds the current quantity.
	Decrement(ctx context.Context, id string, qty int64) (*projection.Projection[*domain.Product], error)
}
