package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// ErrProductNotFound is returned when a cart references an unknown product.
var ErrProductNotFound = errors.New("product not found")

// ProductInfo is what the cart needs to know about a product when adding it.
type ProductInfo struct {
	Ref       domain.ProductRef
	Available int64
}

// InventoryReader is the cart's read-only view of the inventory store.
type InventoryReader interface {
	ListStock(ctx context.Context) (domain.Snapshot, error)
	LookupProduct(ctx context.Context, productID string) (ProductInfo, error)
}
