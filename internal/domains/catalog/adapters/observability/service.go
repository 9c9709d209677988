package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct")
	defer span.End()

	s.logInfo(ctx, "creating product")
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product")
	}
	span.SetAttributes(attribute.String("product.id", result.Entity.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "product created",
		slog.String("product.id", result.Entity.ID),
		slog.Int64("product.quantity", result.Entity.Quantity))
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, input catalogtypes.ProductIdentifier) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.String("product.id", input.ID)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", input.ID))
	}
	return result, nil
}

func (s *Service) SetQuantity(ctx context.Context, input catalogtypes.SetQuantityInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SetQuantity",
		trace.WithAttributes(attribute.String("product.id", input.ID), attribute.Int64("product.quantity", input.Quantity)))
	defer span.End()

	s.logInfo(ctx, "setting product quantity", slog.String("product.id", input.ID), slog.Int64("product.quantity", input.Quantity))
	result, err := s.inner.SetQuantity(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set product quantity", slog.String("product.id", input.ID))
	}
	return result, nil
}

func (s *Service) Purchase(ctx context.Context, input catalogtypes.PurchaseInput) (*catalogtypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Purchase",
		trace.WithAttributes(attribute.String("product.id", input.ID), attribute.Int64("purchase.qty", input.Qty)))
	defer span.End()

	s.logInfo(ctx, "purchasing product", slog.String("product.id", input.ID), slog.Int64("purchase.qty", input.Qty))
	result, err := s.inner.Purchase(ctx, input)
	if err != nil {
		s.metrics.recordPurchase(ctx, "rejected", 0)
		return nil, s.handleError(ctx, span, err, "failed to purchase product", slog.String("product.id", input.ID))
	}
	s.metrics.recordPurchase(ctx, "accepted", input.Qty)
	s.logInfo(ctx, "product purchased",
		slog.String("product.id", result.Entity.ID),
		slog.Int64("product.remaining", result.Entity.Quantity))
	return result, nil
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
	productsCreated metric.Int64Counter
	purchases       metric.Int64Counter
	unitsSold       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsCreated, _ := m.Int64Counter("catalog.service.products_created", metric.WithDescription("Number of products created"))
	purchases, _ := m.Int64Counter("catalog.service.purchases", metric.WithDescription("Purchase attempts by outcome"))
	unitsSold, _ := m.Int64Counter("catalog.service.units_sold", metric.WithDescription("Units removed from stock by purchases"))
	return serviceMetrics{productsCreated: productsCreated, purchases: purchases, unitsSold: unitsSold}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPurchase(ctx context.Context, outcome string, qty int64) {
	if m.purchases != nil {
		m.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("purchase.outcome", outcome)))
	}
	if m.unitsSold != nil && qty > 0 {
		m.unitsSold.Add(ctx, qty)
	}
}

var _ catalogports.Service = (*Service)(nil)
