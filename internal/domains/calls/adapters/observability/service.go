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

	callstypes "github.com/Apurer/go-gin-storefront/internal/domains/calls/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
	callsports "github.com/Apurer/go-gin-storefront/internal/domains/calls/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/calls/adapters/observability/service"

// Service decorates the calls service with tracing, logging, and metrics.
type Service struct {
	inner   callsports.Service
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

// New wraps the core calls service.
func New(inner callsports.Service, opts ...Option) callsports.Service {
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

func (s *Service) TriggerCall(ctx context.Context, input callstypes.TriggerCallInput) (*domain.Call, error) {
	ctx, span := s.tracer.Start(ctx, "CallsService.TriggerCall")
	defer span.End()

	// Phone numbers stay out of logs and spans.
	s.logInfo(ctx, "triggering outbound call")
	call, err := s.inner.TriggerCall(ctx, input)
	if call != nil {
		s.metrics.recordCall(ctx, call.Status)
		span.SetAttributes(attribute.String("call.id", call.ID), attribute.String("call.status", string(call.Status)))
	}
	if err != nil {
		return call, s.handleError(ctx, span, err, "failed to trigger call")
	}
	span.SetAttributes(attribute.String("call.sid", call.CallSID))
	s.logInfo(ctx, "outbound call initiated", slog.String("call.id", call.ID), slog.String("call.sid", call.CallSID))
	return call, nil
}

func (s *Service) RecentCalls(ctx context.Context, input callstypes.RecentCallsInput) ([]*domain.Call, error) {
	ctx, span := s.tracer.Start(ctx, "CallsService.RecentCalls", trace.WithAttributes(attribute.Int("call.limit", input.Limit)))
	defer span.End()

	result, err := s.inner.RecentCalls(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list calls")
	}
	span.SetAttributes(attribute.Int("call.count", len(result)))
	return result, nil
}

func (s *Service) SaveConversation(ctx context.Context, input callstypes.SaveConversationInput) (*domain.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "CallsService.SaveConversation", trace.WithAttributes(attribute.String("call.sid", input.CallSID)))
	defer span.End()

	result, err := s.inner.SaveConversation(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save conversation", slog.String("call.sid", input.CallSID))
	}
	s.metrics.recordConversation(ctx)
	s.logInfo(ctx, "conversation saved",
		slog.String("conversation.id", result.ID),
		slog.String("call.sid", result.CallSID),
		slog.Int("conversation.messages", len(result.Messages)))
	return result, nil
}

func (s *Service) ListConversations(ctx context.Context) ([]*domain.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "CallsService.ListConversations")
	defer span.End()

	result, err := s.inner.ListConversations(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list conversations")
	}
	span.SetAttributes(attribute.Int("conversation.count", len(result)))
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
	calls         metric.Int64Counter
	conversations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	calls, _ := m.Int64Counter("calls.service.triggered", metric.WithDescription("Outbound call triggers by status"))
	conversations, _ := m.Int64Counter("calls.service.conversations_saved", metric.WithDescription("Conversation transcripts saved"))
	return serviceMetrics{calls: calls, conversations: conversations}
}

func (m serviceMetrics) recordCall(ctx context.Context, status domain.Status) {
	if m.calls != nil {
		m.calls.Add(ctx, 1, metric.WithAttributes(attribute.String("call.status", string(status))))
	}
}

func (m serviceMetrics) recordConversation(ctx context.Context) {
	if m.conversations != nil {
		m.conversations.Add(ctx, 1)
	}
}

var _ callsports.Service = (*Service)(nil)
