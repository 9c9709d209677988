package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/calls/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the call log and transcripts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type callRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Phone     string    `gorm:"column:phone;size:32;index"`
	CallSID   string    `gorm:"column:call_sid;size:128"`
	Status    string    `gorm:"column:status;type:varchar(32)"`
	Error     string    `gorm:"column:error;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (callRecord) TableName() string { return "calls" }

type messageRecord struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type conversationRecord struct {
	ID        string          `gorm:"primaryKey;column:id;size:64"`
	CallSID   string          `gorm:"column:call_sid;size:128;index"`
	UserInfo  map[string]any  `gorm:"column:user_info;serializer:json"`
	Messages  []messageRecord `gorm:"column:messages;serializer:json"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
}

func (conversationRecord) TableName() string { return "conversations" }

func (r *Repository) SaveCall(ctx context.Context, call *domain.Call) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if call == nil {
		return errors.New("call is nil")
	}
	record := callRecord{
		ID:        call.ID,
		Phone:     call.Phone,
		CallSID:   call.CallSID,
		Status:    string(call.Status),
		Error:     call.Error,
		CreatedAt: call.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *Repository) ListCalls(ctx context.Context, limit int) ([]*domain.Call, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []callRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Call, 0, len(records))
	for _, rec := range records {
		out = append(out, &domain.Call{
			ID:        rec.ID,
			Phone:     rec.Phone,
			CallSID:   rec.CallSID,
			Status:    domain.Status(rec.Status),
			Error:     rec.Error,
			CreatedAt: rec.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repository) SaveConversation(ctx context.Context, conv *domain.Conversation) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if conv == nil {
		return errors.New("conversation is nil")
	}
	messages := make([]messageRecord, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		messages = append(messages, messageRecord{Role: m.Role, Content: m.Content})
	}
	record := conversationRecord{
		ID:        conv.ID,
		CallSID:   conv.CallSID,
		UserInfo:  conv.UserInfo,
		Messages:  messages,
		CreatedAt: conv.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *Repository) ListConversations(ctx context.Context) ([]*domain.Conversation, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []conversationRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Conversation, 0, len(records))
	for _, rec := range records {
		messages := make([]domain.Message, 0, len(rec.Messages))
		for _, m := range rec.Messages {
			messages = append(messages, domain.Message{Role: m.Role, Content: m.Content})
		}
		info := rec.UserInfo
		if info == nil {
			info = map[string]any{}
		}
		out = append(out, &domain.Conversation{
			ID:        rec.ID,
			CallSID:   rec.CallSID,
			UserInfo:  info,
			Messages:  messages,
			CreatedAt: rec.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres calls repository not configured")
	}
	return nil
}
