package mapper

import (
	"time"

	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
)

// CreateProduct is the admin form payload. Pointers keep absent fields distinguishable from zero.
type CreateProduct struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Quantity    *int64   `json:"quantity"`
	Image       string   `json:"image,omitempty"`
}

// QuantityUpdate overrides stock for one product.
type QuantityUpdate struct {
	Quantity *int64 `json:"quantity"`
}

// Purchase is the buy payload.
type Purchase struct {
	Qty *int64 `json:"qty"`
}

// Product is the HTTP representation of a catalog entry.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// ProductAdded acknowledges an admin create.
type ProductAdded struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

// ToCreateInput converts the transport payload into the use case input.
func ToCreateInput(payload CreateProduct) catalogtypes.CreateProductInput {
	return catalogtypes.CreateProductInput{
		Name:        payload.Name,
		Price:       payload.Price,
		Description: payload.Description,
		Quantity:    payload.Quantity,
		Image:       payload.Image,
	}
}

// FromProjection maps a catalog read model into its HTTP form.
func FromProjection(p *catalogtypes.ProductProjection) Product {
	if p == nil || p.Entity == nil {
		return Product{}
	}
	return Product{
		ID:          p.Entity.ID,
		Name:        p.Entity.Name,
		Price:       p.Entity.Price,
		Description: p.Entity.Description,
		Quantity:    p.Entity.Quantity,
		Image:       p.Entity.Image,
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a slice of read models.
func FromProjectionList(list []*catalogtypes.ProductProjection) []Product {
	result := make([]Product, 0, len(list))
	for _, item := range list {
		result = append(result, FromProjection(item))
	}
	return result
}
