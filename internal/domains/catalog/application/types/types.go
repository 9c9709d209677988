package types

import (
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/projection"
)

// ProductProjection is the read model returned by the catalog use cases.
type ProductProjection = projection.Projection[*domain.Product]

// CreateProductInput carries an admin submission. Pointer fields distinguish absent from zero.
type CreateProductInput struct {
	Name           *string
	Price          *float64
	Description    *string
	Quantity       *int64
	Image          string
	// IdempotencyKey makes retried submissions return the first product.
	IdempotencyKey string
}

// SetQuantityInput overrides the stock of one product.
type SetQuantityInput struct {
	ID       string
	Quantity int64
}

// PurchaseInput decrements stock for a purchase.
type PurchaseInput struct {
	ID  string
	Qty int64
}

// ProductIdentifier addresses a single product.
type ProductIdentifier struct {
	ID string
}
