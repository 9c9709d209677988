package ports

import (
	"context"

	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
)

// Service defines the inventory use cases exposed to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (*catalogtypes.ProductProjection, error)
	ListProducts(ctx context.Context) ([]*catalogtypes.ProductProjection, error)
	GetProduct(ctx context.Context, input catalogtypes.ProductIdentifier) (*catalogtypes.ProductProjection, error)
	SetQuantity(ctx context.Context, input catalogtypes.SetQuantityInput) (*catalogtypes.ProductProjection, error)
	Purchase(ctx context.Context, input catalogtypes.PurchaseInput) (*catalogtypes.ProductProjection, error)
}
