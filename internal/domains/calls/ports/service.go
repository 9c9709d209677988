package ports

import (
	"context"

	callstypes "github.com/Apurer/go-gin-storefront/internal/domains/calls/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
)

// Service exposes the call trigger and transcript use cases.
type Service interface {
	TriggerCall(ctx context.Context, input callstypes.TriggerCallInput) (*domain.Call, error)
	RecentCalls(ctx context.Context, input callstypes.RecentCallsInput) ([]*domain.Call, error)
	SaveConversation(ctx context.Context, input callstypes.SaveConversationInput) (*domain.Conversation, error)
	ListConversations(ctx context.Context) ([]*domain.Conversation, error)
}
