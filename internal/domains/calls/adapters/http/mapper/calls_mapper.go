package mapper

import (
	"time"

	callstypes "github.com/Apurer/go-gin-storefront/internal/domains/calls/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
)

// TriggerCall is the call request payload.
type TriggerCall struct {
	Phone string `json:"phone" binding:"required"`
}

// Call is a call log entry.
type Call struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	CallSID   string    `json:"call_sid,omitempty"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one transcript turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation matches the payload the voice service posts after a call.
type Conversation struct {
	ID        string         `json:"_id,omitempty"`
	CallSID   string         `json:"call_sid"`
	UserInfo  map[string]any `json:"user_info"`
	Messages  []Message      `json:"conversation"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
}

// FromCall maps a call log entry.
func FromCall(c *domain.Call) Call {
	if c == nil {
		return Call{}
	}
	return Call{
		ID:        c.ID,
		Phone:     c.Phone,
		CallSID:   c.CallSID,
		Status:    string(c.Status),
		Error:     c.Error,
		CreatedAt: c.CreatedAt,
	}
}

// FromCalls maps a call log listing.
func FromCalls(list []*domain.Call) []Call {
	out := make([]Call, 0, len(list))
	for _, c := range list {
		out = append(out, FromCall(c))
	}
	return out
}

// ToSaveInput converts a posted transcript.
func ToSaveInput(payload Conversation) callstypes.SaveConversationInput {
	messages := make([]domain.Message, 0, len(payload.Messages))
	for _, m := range payload.Messages {
		messages = append(messages, domain.Message{Role: m.Role, Content: m.Content})
	}
	return callstypes.SaveConversationInput{
		CallSID:  payload.CallSID,
		UserInfo: payload.UserInfo,
		Messages: messages,
	}
}

// FromConversation maps a stored transcript.
func FromConversation(c *domain.Conversation) Conversation {
	if c == nil {
		return Conversation{}
	}
	messages := make([]Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, Message{Role: m.Role, Content: m.Content})
	}
	return Conversation{
		ID:        c.ID,
		CallSID:   c.CallSID,
		UserInfo:  c.UserInfo,
		Messages:  messages,
		CreatedAt: c.CreatedAt,
	}
}

// FromConversations maps a transcript listing.
func FromConversations(list []*domain.Conversation) []Conversation {
	out := make([]Conversation, 0, len(list))
	for _, c := range list {
		out = append(out, FromConversation(c))
	}
	return out
}
