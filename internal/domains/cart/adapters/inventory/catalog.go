package inventory

import (
	"context"
	"errors"

	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.InventoryReader = (*CatalogReader)(nil)

// CatalogReader adapts the catalog service to the cart's inventory port.
type CatalogReader struct {
	catalog catalogports.Service
}

func NewCatalogReader(catalog catalogports.Service) *CatalogReader {
	return &CatalogReader{catalog: catalog}
}

// ListStock rebuilds a full snapshot from the product listing.
func (r *CatalogReader) ListStock(ctx context.Context) (domain.Snapshot, error) {
	if r == nil || r.catalog == nil {
		return nil, errors.New("catalog reader not configured")
	}
	products, err := r.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make(domain.Snapshot, len(products))
	for _, p := range products {
		if p == nil || p.Entity == nil {
			continue
		}
		snapshot[p.Entity.ID] = p.Entity.Quantity
	}
	return snapshot, nil
}

// LookupProduct returns the denormalised fields a cart line needs.
func (r *CatalogReader) LookupProduct(ctx context.Context, productID string) (ports.ProductInfo, error) {
	if r == nil || r.catalog == nil {
		return ports.ProductInfo{}, errors.New("catalog reader not configured")
	}
	p, err := r.catalog.GetProduct(ctx, catalogtypes.ProductIdentifier{ID: productID})
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return ports.ProductInfo{}, ports.ErrProductNotFound
		}
		return ports.ProductInfo{}, err
	}
	return ports.ProductInfo{
		Ref: domain.ProductRef{
			ID:    p.Entity.ID,
			Name:  p.Entity.Name,
			Price: p.Entity.Price,
			Image: p.Entity.Image,
		},
		Available: p.Entity.Quantity,
	}, nil
}
