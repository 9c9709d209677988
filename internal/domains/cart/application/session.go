package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	carttypes "github.com/Apurer/go-gin-storefront/internal/domains/cart/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const defaultPollInterval = 3 * time.Second

// Session owns one cart, its latest stock snapshot, and its checkout machine.
// All state sits behind mu; inventory fetches and payment processing run
// outside the lock and post their results back.
type Session struct {
	id        string
	fetcher   *Fetcher
	processor ports.CheckoutProcessor
	logger    *slog.Logger
	interval  time.Duration
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	cart       *domain.Cart
	checkout   *domain.Checkout
	snapshot   domain.Snapshot
	snapshotAt time.Time
	inFlight   int
	viewActive bool
	stopWatch  context.CancelFunc
	receipt    string
	lastSeen   time.Time
	closed     bool
}

type SessionOption func(*Session)

// WithPollInterval sets how often a watched listing refetches stock.
func WithPollInterval(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession creates an idle session with an empty cart and an empty snapshot.
func NewSession(id string, fetcher *Fetcher, processor ports.CheckoutProcessor, opts ...SessionOption) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:        id,
		fetcher:   fetcher,
		processor: processor,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		interval:  defaultPollInterval,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
		cart:      domain.NewCart(),
		checkout:  domain.NewCheckout(),
		snapshot:  domain.Snapshot{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.lastSeen = s.now()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// LastSeen reports when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// AddToCart adds product to the cart.
func (s *Session) AddToCart(product domain.ProductRef, requestedQty int) []domain.LineItem {
	return s.mutate(func(c *domain.Cart) []domain.LineItem {
		return c.AddToCart(product, requestedQty)
	})
}

// RemoveFromCart drops a line from the cart.
func (s *Session) RemoveFromCart(productID string) []domain.LineItem {
	return s.mutate(func(c *domain.Cart) []domain.LineItem {
		return c.RemoveFromCart(productID)
	})
}

// UpdateQty sets the quantity for a line.
func (s *Session) UpdateQty(productID string, qty int) []domain.LineItem {
	return s.mutate(func(c *domain.Cart) []domain.LineItem {
		return c.UpdateQty(productID, qty)
	})
}

// ClearCart empties the cart.
func (s *Session) ClearCart() []domain.LineItem {
	return s.mutate(func(c *domain.Cart) []domain.LineItem {
		return c.ClearCart()
	})
}

func (s *Session) mutate(fn func(*domain.Cart) []domain.LineItem) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	before := s.cart.Items()
	items := fn(s.cart)
	if slices.Equal(before, items) {
		return items
	}
	s.checkout.CartEdited()
	if s.viewActive {
		s.refetchLocked()
	}
	return items
}

// EnterView marks a cart or checkout view as active and fetches stock once.
// While active, every cart edit triggers another fetch.
func (s *Session) EnterView(ctx context.Context) {
	s.mu.Lock()
	s.viewActive = true
	s.lastSeen = s.now()
	s.mu.Unlock()
	s.Refresh(ctx)
}

// LeaveView stops edit-triggered fetches.
func (s *Session) LeaveView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewActive = false
	s.lastSeen = s.now()
}

// Refresh fetches a snapshot synchronously and installs it.
func (s *Session) Refresh(ctx context.Context) {
	if !s.beginFetch() {
		return
	}
	snapshot := s.fetcher.FetchSnapshot(ctx)
	if ctx.Err() != nil {
		// Cancelled fetches must not replace the last good snapshot.
		s.abandonFetch()
		return
	}
	s.finishFetch(snapshot)
}

// Watch starts polling stock at the session interval until Unwatch or Close.
// Calling Watch on a watched session is a no-op.
func (s *Session) Watch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.stopWatch != nil {
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.stopWatch = cancel
	s.lastSeen = s.now()
	s.wg.Add(1)
	go s.poll(ctx)
}

// Unwatch stops the listing poller if one is running.
func (s *Session) Unwatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.lastSeen = s.now()
}

func (s *Session) poll(ctx context.Context) {
	defer s.wg.Done()
	s.Refresh(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Reconciliation derives the current cart-versus-stock verdict.
func (s *Session) Reconciliation() domain.Reconciliation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconcileLocked()
}

// HasSnapshot reports whether any fetch has resolved yet.
func (s *Session) HasSnapshot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.snapshotAt.IsZero()
}

// SubmitCheckout runs the stock check and, when it passes, starts processing
// in the background. The cart is cleared only once processing settles.
func (s *Session) SubmitCheckout() (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	if s.closed {
		return s.checkout.Status(), ports.ErrSessionNotFound
	}
	if s.cart.Len() == 0 {
		return s.checkout.Status(), domain.ErrEmptyCart
	}
	attempt, err := s.checkout.Submit(s.reconcileLocked())
	if err != nil {
		return s.checkout.Status(), err
	}
	req := ports.ProcessRequest{
		SessionID: s.id,
		Attempt:   attempt,
		Total:     s.cart.Total(),
		Lines:     s.cart.Len(),
	}
	s.receipt = ""
	s.wg.Add(1)
	go s.process(req)
	return s.checkout.Status(), nil
}

func (s *Session) process(req ports.ProcessRequest) {
	defer s.wg.Done()
	receipt, err := s.processor.Process(s.ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, context.Canceled) && s.closed {
			return
		}
		s.logger.Error("checkout processing failed",
			slog.String("session.id", s.id),
			slog.Int("checkout.attempt", req.Attempt),
			slog.String("error", err.Error()))
		_ = s.checkout.Fail(req.Attempt, err)
		return
	}
	if err := s.checkout.Settle(req.Attempt); err != nil {
		return
	}
	s.cart.ClearCart()
	s.receipt = receipt.Reference
	s.logger.Info("checkout settled",
		slog.String("session.id", s.id),
		slog.Int("checkout.attempt", req.Attempt),
		slog.String("checkout.reference", receipt.Reference))
}

// Checkout returns the checkout machine status.
func (s *Session) Checkout() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Status()
}

// CheckoutHistory returns the transitions the checkout machine has taken.
func (s *Session) CheckoutHistory() []domain.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.History()
}

// Items returns the cart lines.
func (s *Session) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// View assembles the session read model.
func (s *Session) View() carttypes.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.cart.Items()
	lines := make([]carttypes.LineView, 0, len(items))
	for _, item := range items {
		line := carttypes.LineView{LineItem: item}
		if s.snapshot.Known(item.ProductID) {
			stock := s.snapshot.Available(item.ProductID)
			line.Stock = &stock
		}
		lines = append(lines, line)
	}
	return carttypes.SessionView{
		SessionID:      s.id,
		Items:          lines,
		Total:          s.cart.Total(),
		Reconciliation: s.reconcileLocked(),
		Checkout:       s.checkout.Status(),
		LastReceipt:    s.receipt,
		ViewActive:     s.viewActive,
		Watching:       s.stopWatch != nil,
		SnapshotAt:     s.snapshotAt,
	}
}

// Close stops every poller and in-flight processing run and waits for them.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopWatch = nil
	s.viewActive = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Session) reconcileLocked() domain.Reconciliation {
	return domain.Reconcile(s.cart.Items(), s.snapshot, s.inFlight > 0)
}

// refetchLocked starts an asynchronous fetch. Caller holds mu.
func (s *Session) refetchLocked() {
	if s.closed {
		return
	}
	s.inFlight++
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.finishFetch(s.fetcher.FetchSnapshot(s.ctx))
	}()
}

func (s *Session) beginFetch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.inFlight++
	return true
}

func (s *Session) abandonFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
}

// finishFetch installs snapshot. The most recently resolved fetch wins.
func (s *Session) finishFetch(snapshot domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.closed {
		return
	}
	s.snapshot = snapshot
	s.snapshotAt = s.now()
}
