package domain

import (
	"strings"
	"time"
)

// Message is one turn of a call transcript.
type Message struct {
	Role    string
	Content string
}

// Conversation is a transcript posted back by the voice service after a call.
type Conversation struct {
	ID        string
	CallSID   string
	UserInfo  map[string]any
	Messages  []Message
	CreatedAt time.Time
}

// NewConversation validates a transcript.
func NewConversation(id, callSID string, userInfo map[string]any, messages []Message, at time.Time) (*Conversation, error) {
	callSID = strings.TrimSpace(callSID)
	if callSID == "" {
		return nil, ErrMissingCallSID
	}
	cleaned := make([]Message, 0, len(messages))
	for _, m := range messages {
		role := strings.TrimSpace(m.Role)
		if role == "" {
			return nil, ErrInvalidRole
		}
		cleaned = append(cleaned, Message{Role: role, Content: m.Content})
	}
	info := make(map[string]any, len(userInfo))
	for k, v := range userInfo {
		info[k] = v
	}
	return &Conversation{ID: id, CallSID: callSID, UserInfo: info, Messages: cleaned, CreatedAt: at}, nil
}
