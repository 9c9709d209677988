package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	carttypes "github.com/Apurer/go-gin-storefront/internal/domains/cart/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) OpenSession(ctx context.Context) (carttypes.SessionView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.OpenSession")
	defer span.End()

	view, err := s.inner.OpenSession(ctx)
	if err != nil {
		return view, s.handleError(ctx, span, err, "failed to open cart session")
	}
	span.SetAttributes(attribute.String("session.id", view.SessionID))
	s.metrics.recordSession(ctx, 1)
	s.logInfo(ctx, "cart session opened", slog.String("session.id", view.SessionID))
	return view, nil
}

func (s *Service) CloseSession(ctx context.Context, ref carttypes.SessionRef) error {
	ctx, span := s.start(ctx, "CartService.CloseSession", ref.SessionID)
	defer span.End()

	if err := s.inner.CloseSession(ctx, ref); err != nil {
		return s.handleError(ctx, span, err, "failed to close cart session", slog.String("session.id", ref.SessionID))
	}
	s.metrics.recordSession(ctx, -1)
	s.logInfo(ctx, "cart session closed", slog.String("session.id", ref.SessionID))
	return nil
}

func (s *Service) View(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.View", ref.SessionID)
	defer span.End()
	return s.observe(ctx, span, "failed to load cart", ref.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.View(ctx, ref)
	})
}

func (s *Service) AddToCart(ctx context.Context, input carttypes.AddItemInput) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.AddToCart", input.SessionID)
	defer span.End()
	span.SetAttributes(attribute.String("product.id", input.ProductID), attribute.Int("cart.requested_qty", input.Qty))
	return s.observe(ctx, span, "failed to add to cart", input.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.AddToCart(ctx, input)
	})
}

func (s *Service) UpdateQty(ctx context.Context, input carttypes.UpdateQtyInput) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.UpdateQty", input.SessionID)
	defer span.End()
	span.SetAttributes(attribute.String("product.id", input.ProductID), attribute.Int("cart.qty", input.Qty))
	return s.observe(ctx, span, "failed to update cart quantity", input.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.UpdateQty(ctx, input)
	})
}

func (s *Service) RemoveFromCart(ctx context.Context, ref carttypes.ItemRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.RemoveFromCart", ref.SessionID)
	defer span.End()
	span.SetAttributes(attribute.String("product.id", ref.ProductID))
	return s.observe(ctx, span, "failed to remove from cart", ref.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.RemoveFromCart(ctx, ref)
	})
}

func (s *Service) ClearCart(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.ClearCart", ref.SessionID)
	defer span.End()
	return s.observe(ctx, span, "failed to clear cart", ref.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.ClearCart(ctx, ref)
	})
}

func (s *Service) EnterView(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.EnterView", ref.SessionID)
	defer span.End()
	return s.observe(ctx, span, "failed to enter cart view", ref.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.EnterView(ctx, ref)
	})
}

func (s *Service) LeaveView(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.LeaveView", ref.SessionID)
	defer span.End()
	return s.observe(ctx, span, "failed to leave cart view", ref.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.LeaveView(ctx, ref)
	})
}

func (s *Service) WatchListing(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.WatchListing", ref.SessionID)
	defer span.End()
	return s.observe(ctx, span, "failed to watch listing", ref.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.WatchListing(ctx, ref)
	})
}

func (s *Service) UnwatchListing(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.UnwatchListing", ref.SessionID)
	defer span.End()
	return s.observe(ctx, span, "failed to unwatch listing", ref.SessionID, func(ctx context.Context) (carttypes.SessionView, error) {
		return s.inner.UnwatchListing(ctx, ref)
	})
}

func (s *Service) SubmitCheckout(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error) {
	ctx, span := s.start(ctx, "CartService.SubmitCheckout", ref.SessionID)
	defer span.End()

	s.logInfo(ctx, "submitting checkout", slog.String("session.id", ref.SessionID))
	view, err := s.inner.SubmitCheckout(ctx, ref)
	span.SetAttributes(attribute.String("checkout.state", string(view.Checkout.State)))
	s.metrics.recordCheckout(ctx, view.Checkout.State)
	if err != nil {
		if errors.Is(err, domain.ErrCheckoutBlocked) {
			s.logInfo(ctx, "checkout blocked by stock check",
				slog.String("session.id", ref.SessionID),
				slog.Any("insufficient", view.Reconciliation.InsufficientNames),
				slog.Bool("fetch_in_flight", view.Reconciliation.FetchInFlight))
			return view, err
		}
		return view, s.handleError(ctx, span, err, "failed to submit checkout", slog.String("session.id", ref.SessionID))
	}
	s.logInfo(ctx, "checkout processing",
		slog.String("session.id", ref.SessionID),
		slog.Int("checkout.attempt", view.Checkout.Attempt),
		slog.Float64("cart.total", view.Total))
	return view, nil
}

func (s *Service) start(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("session.id", sessionID)))
}

func (s *Service) observe(ctx context.Context, span trace.Span, failure, sessionID string, fn func(context.Context) (carttypes.SessionView, error)) (carttypes.SessionView, error) {
	view, err := fn(ctx)
	if err != nil {
		return view, s.handleError(ctx, span, err, failure, slog.String("session.id", sessionID))
	}
	span.SetAttributes(
		attribute.Int("cart.lines", len(view.Items)),
		attribute.Bool("cart.blocked", view.Reconciliation.Blocked))
	return view, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	activeSessions metric.Int64UpDownCounter
	checkouts      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	activeSessions, _ := m.Int64UpDownCounter("cart.service.active_sessions", metric.WithDescription("Open cart sessions"))
	checkouts, _ := m.Int64Counter("cart.service.checkouts", metric.WithDescription("Checkout submissions by resulting state"))
	return serviceMetrics{activeSessions: activeSessions, checkouts: checkouts}
}

func (m serviceMetrics) recordSession(ctx context.Context, delta int64) {
	if m.activeSessions != nil {
		m.activeSessions.Add(ctx, delta)
	}
}

func (m serviceMetrics) recordCheckout(ctx context.Context, state domain.State) {
	if m.checkouts != nil {
		m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("checkout.state", string(state))))
	}
}

var _ cartports.Service = (*Service)(nil)
