package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps calls and conversations in memory.
type Repository struct {
	mu            sync.RWMutex
	calls         []domain.Call
	conversations []domain.Conversation
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveCall(_ context.Context, call *domain.Call) error {
	if call == nil {
		return errors.New("cannot save nil call")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, *call)
	return nil
}

func (r *Repository) ListCalls(_ context.Context, limit int) ([]*domain.Call, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sorted := make([]domain.Call, len(r.calls))
	copy(sorted, r.calls)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]*domain.Call, 0, len(sorted))
	for i := range sorted {
		out = append(out, &sorted[i])
	}
	return out, nil
}

func (r *Repository) SaveConversation(_ context.Context, conv *domain.Conversation) error {
	if conv == nil {
		return errors.New("cannot save nil conversation")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conversations = append(r.conversations, cloneConversation(*conv))
	return nil
}

func (r *Repository) ListConversations(_ context.Context) ([]*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Conversation, 0, len(r.conversations))
	for _, c := range r.conversations {
		clone := cloneConversation(c)
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func cloneConversation(c domain.Conversation) domain.Conversation {
	c.Messages = append([]domain.Message(nil), c.Messages...)
	info := make(map[string]any, len(c.UserInfo))
	for k, v := range c.UserInfo {
		info[k] = v
	}
	c.UserInfo = info
	return c
}
