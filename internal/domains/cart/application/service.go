package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	carttypes "github.com/Apurer/go-gin-storefront/internal/domains/cart/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

// Service manages cart sessions on behalf of transport adapters.
type Service struct {
	store        SessionStore
	inventory    ports.InventoryReader
	fetcher      *Fetcher
	processor    ports.CheckoutProcessor
	pollInterval time.Duration
	newID        func() string
	logger       *slog.Logger
}

type Option func(*Service)

// WithSessionPollInterval sets the listing poll interval for new sessions.
func WithSessionPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithSessionIDGenerator overrides how session ids are assigned.
func WithSessionIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the cart use cases.
func NewService(store SessionStore, inventory ports.InventoryReader, processor ports.CheckoutProcessor, opts ...Option) *Service {
	s := &Service{
		store:        store,
		inventory:    inventory,
		processor:    processor,
		pollInterval: defaultPollInterval,
		newID:        uuid.NewString,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.fetcher = NewFetcher(inventory, WithFetchLogger(s.logger))
	return s
}

func (s *Service) OpenSession(_ context.Context) (carttypes.SessionView, error) {
	session := NewSession(s.newID(), s.fetcher, s.processor,
		WithPollInterval(s.pollInterval),
		WithSessionLogger(s.logger))
	s.store.Put(session)
	return session.View(), nil
}

func (s *Service) CloseSession(_ context.Context, ref carttypes.SessionRef) error {
	session, ok := s.store.Delete(strings.TrimSpace(ref.SessionID))
	if !ok {
		return ports.ErrSessionNotFound
	}
	session.Close()
	return nil
}

func (s *Service) View(_ context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	return session.View(), nil
}

// AddToCart looks the product up, clamps the requested quantity to what is
// available, and refuses products with no stock.
func (s *Service) AddToCart(ctx context.Context, input carttypes.AddItemInput) (carttypes.SessionView, error) {
	session, err := s.session(input.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return carttypes.SessionView{}, fmt.Errorf("%w: productId is required", ErrInvalidInput)
	}
	info, err := s.inventory.LookupProduct(ctx, productID)
	if err != nil {
		return carttypes.SessionView{}, mapError(err)
	}
	if info.Available <= 0 {
		return carttypes.SessionView{}, fmt.Errorf("%w: %s", ErrOutOfStock, info.Ref.Name)
	}
	qty := input.Qty
	if int64(qty) > info.Available {
		qty = int(info.Available)
	}
	session.AddToCart(info.Ref, qty)
	return session.View(), nil
}

func (s *Service) UpdateQty(_ context.Context, input carttypes.UpdateQtyInput) (carttypes.SessionView, error) {
	session, err := s.session(input.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	session.UpdateQty(strings.TrimSpace(input.ProductID), input.Qty)
	return session.View(), nil
}

func (s *Service) RemoveFromCart(_ context.Context, ref carttypes.ItemRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	session.RemoveFromCart(strings.TrimSpace(ref.ProductID))
	return session.View(), nil
}

func (s *Service) ClearCart(_ context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	session.ClearCart()
	return session.View(), nil
}

func (s *Service) EnterView(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	session.EnterView(ctx)
	return session.View(), nil
}

func (s *Service) LeaveView(_ context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	session.LeaveView()
	return session.View(), nil
}

func (s *Service) WatchListing(_ context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	session.Watch()
	return session.View(), nil
}

func (s *Service) UnwatchListing(_ context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	session.Unwatch()
	return session.View(), nil
}

// SubmitCheckout validates the cart against the latest snapshot. A session
// that has never fetched stock fetches once first.
func (s *Service) SubmitCheckout(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	session, err := s.session(ref.SessionID)
	if err != nil {
		return carttypes.SessionView{}, err
	}
	if !session.HasSnapshot() {
		session.Refresh(ctx)
	}
	if _, err := session.SubmitCheckout(); err != nil {
		return session.View(), mapError(err)
	}
	return session.View(), nil
}

func (s *Service) session(id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	session, ok := s.store.Get(id)
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return session, nil
}

var _ ports.Service = (*Service)(nil)
