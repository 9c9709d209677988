package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// Service orchestrates the inventory use cases.
type Service struct {
	repo        ports.Repository
	idempotency ports.IdempotencyStore
	newID       func() string
}

type Option func(*Service)

// WithIDGenerator overrides how product identifiers are assigned.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithIdempotencyStore enables Idempotency-Key handling for CreateProduct.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateProduct validates an admin submission and stores it under a fresh identifier.
func (s *Service) CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (*catalogtypes.ProductProjection, error) {
	if missing := missingFields(input); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w: missing %s", ErrInvalidInput, ErrMissingFields, strings.Join(missing, ", "))
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		return s.createProduct(ctx, input, s.newID())
	}
	hash, err := FingerprintCreateProduct(input)
	if err != nil {
		return nil, err
	}
	// The key is reserved with a product id before anything is written, so
	// concurrent retries all converge on the same id.
	record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, ProductID: s.newID()})
	if err != nil {
		return nil, err
	}
	return s.replay(ctx, record, hash, input)
}

func (s *Service) createProduct(ctx context.Context, input catalogtypes.CreateProductInput, id string) (*catalogtypes.ProductProjection, error) {
	product, err := domain.NewProduct(id, *input.Name, *input.Price, *input.Description, *input.Quantity, input.Image)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// replay answers with the product reserved under record, creating it when the
// reserving request never got that far.
func (s *Service) replay(ctx context.Context, record *ports.IdempotencyRecord, hash string, input catalogtypes.CreateProductInput) (*catalogtypes.ProductProjection, error) {
	if record.RequestHash != hash {
		return nil, ports.ErrIdempotencyConflict
	}
	product, err := s.repo.GetByID(ctx, record.ProductID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(err)
	}
	return s.createProduct(ctx, input, record.ProductID)
}

// ListProducts returns the full inventory in no particular order.
func (s *Service) ListProducts(ctx context.Context) ([]*catalogtypes.ProductProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, input catalogtypes.ProductIdentifier) (*catalogtypes.ProductProjection, error) {
	result, err := s.repo.GetByID(ctx, strings.TrimSpace(input.ID))
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// SetQuantity overrides the stock of an existing product.
func (s *Service) SetQuantity(ctx context.Context, input catalogtypes.SetQuantityInput) (*catalogtypes.ProductProjection, error) {
	if input.Quantity < 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	result, err := s.repo.SetQuantity(ctx, strings.TrimSpace(input.ID), input.Quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Purchase atomically decrements stock for a purchase.
func (s *Service) Purchase(ctx context.Context, input catalogtypes.PurchaseInput) (*catalogtypes.ProductProjection, error) {
	if input.Qty <= 0 {
		return nil, mapError(domain.ErrInvalidPurchaseQty)
	}
	result, err := s.repo.Decrement(ctx, strings.TrimSpace(input.ID), input.Qty)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func missingFields(input catalogtypes.CreateProductInput) []string {
	var missing []string
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		missing = append(missing, "name")
	}
	if input.Price == nil {
		missing = append(missing, "price")
	}
	if input.Description == nil || strings.TrimSpace(*input.Description) == "" {
		missing = append(missing, "description")
	}
	if input.Quantity == nil {
		missing = append(missing, "quantity")
	}
	return missing
}

var _ ports.Service = (*Service)(nil)
