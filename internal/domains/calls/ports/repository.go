package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
)

// Repository persists the call log and conversation transcripts.
type Repository interface {
	SaveCall(ctx context.Context, call *domain.Call) error
	ListCalls(ctx context.Context, limit int) ([]*domain.Call, error)
	SaveConversation(ctx context.Context, conv *domain.Conversation) error
	ListConversations(ctx context.Context) ([]*domain.Conversation, error)
}
