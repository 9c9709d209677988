package types

import "github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"

// TriggerCallInput requests an outbound call.
type TriggerCallInput struct {
	Phone string
}

// RecentCallsInput bounds the call log listing. Zero means the default limit.
type RecentCallsInput struct {
	Limit int
}

// SaveConversationInput is a transcript posted by the voice service.
type SaveConversationInput struct {
	CallSID  string
	UserInfo map[string]any
	Messages []domain.Message
}
