package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	callstypes "github.com/Apurer/go-gin-storefront/internal/domains/calls/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/ports"
)

const (
	defaultRecentCalls = 20
	maxRecentCalls     = 100
)

// Service triggers outbound calls and stores transcripts.
type Service struct {
	repo    ports.Repository
	dialer  ports.Dialer
	limiter *rate.Limiter
	newID   func() string
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Service)

// WithRateLimit caps call triggers to perMinute with the given burst. Zero disables limiting.
func WithRateLimit(perMinute float64, burst int) Option {
	return func(s *Service) {
		if perMinute <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perMinute/60), burst)
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
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

// NewService wires the calls use cases. Triggers are limited to 10 per minute by default.
func NewService(repo ports.Repository, dialer ports.Dialer, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		dialer:  dialer,
		limiter: rate.NewLimiter(rate.Limit(10.0/60), 3),
		newID:   uuid.NewString,
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// TriggerCall validates the phone number, asks the voice service to dial, and
// logs the outcome whether or not the dial succeeded.
func (s *Service) TriggerCall(ctx context.Context, input callstypes.TriggerCallInput) (*domain.Call, error) {
	phone, err := domain.NormalizePhone(input.Phone)
	if err != nil {
		return nil, mapError(err)
	}
	if s.dialer == nil {
		return nil, fmt.Errorf("%w: voice service not configured", ErrDialFailed)
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return nil, ErrRateLimited
	}
	callSID, dialErr := s.dialer.TriggerCall(ctx, phone)
	if dialErr != nil {
		failed := domain.NewFailedCall(s.newID(), phone, dialErr, s.now().UTC())
		if err := s.repo.SaveCall(ctx, failed); err != nil {
			s.logger.WarnContext(ctx, "failed to record failed call", slog.String("error", err.Error()))
		}
		return failed, fmt.Errorf("%w: %w", ErrDialFailed, dialErr)
	}
	call := domain.NewInitiatedCall(s.newID(), phone, callSID, s.now().UTC())
	if err := s.repo.SaveCall(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

// RecentCalls lists the newest calls first.
func (s *Service) RecentCalls(ctx context.Context, input callstypes.RecentCallsInput) ([]*domain.Call, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecentCalls
	}
	if limit > maxRecentCalls {
		limit = maxRecentCalls
	}
	return s.repo.ListCalls(ctx, limit)
}

// SaveConversation stores a transcript.
func (s *Service) SaveConversation(ctx context.Context, input callstypes.SaveConversationInput) (*domain.Conversation, error) {
	conv, err := domain.NewConversation(s.newID(), input.CallSID, input.UserInfo, input.Messages, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.SaveConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// ListConversations returns every transcript, newest first.
func (s *Service) ListConversations(ctx context.Context) ([]*domain.Conversation, error) {
	return s.repo.ListConversations(ctx)
}

var _ ports.Service = (*Service)(nil)
