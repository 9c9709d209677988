package domain

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrEmptyName          = errors.New("product name is required")
	ErrEmptyDescription   = errors.New("product description is required")
	ErrInvalidPrice       = errors.New("product price must be a non-negative number")
	ErrInvalidQuantity    = errors.New("product quantity must be zero or greater")
	ErrInvalidPurchaseQty = errors.New("purchase quantity must be greater than zero")
	ErrInsufficientStock  = errors.New("not enough stock")
)

// Product is the inventory aggregate. Quantity is the authoritative available stock.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Description string
	Quantity    int64
	Image       string
}

// NewProduct validates and constructs a Product.
func NewProduct(id, name string, price float64, description string, quantity int64, image string) (*Product, error) {
	p := &Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Price:       price,
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		Image:       strings.TrimSpace(image),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces product invariants.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Description == "" {
		return ErrEmptyDescription
	}
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return ErrInvalidPrice
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// SetQuantity overrides the available stock.
func (p *Product) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	p.Quantity = quantity
	return nil
}

// Decrement removes qty units from stock when enough are available.
func (p *Product) Decrement(qty int64) error {
	if qty <= 0 {
		return ErrInvalidPurchaseQty
	}
	if qty > p.Quantity {
		return ErrInsufficientStock
	}
	p.Quantity -= qty
	return nil
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
