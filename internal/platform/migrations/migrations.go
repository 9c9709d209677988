package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&productIdempotencyRecord{},
		&callRecord{},
		&conversationRecord{},
	)
}

// Product schema mirrors the catalog persistence adapter.
type productRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	Name        string    `gorm:"column:name;not null"`
	Price       float64   `gorm:"column:price;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Quantity    int64     `gorm:"column:quantity;not null"`
	Image       string    `gorm:"column:image"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type productIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:idempotency_key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	ProductID   string    `gorm:"column:product_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (productIdempotencyRecord) TableName() string { return "product_idempotency_keys" }

// Call schema mirrors the calls persistence adapter.
type callRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Phone     string    `gorm:"column:phone;size:32;index"`
	CallSID   string    `gorm:"column:call_sid;size:128"`
	Status    string    `gorm:"column:status;type:varchar(32)"`
	Error     string    `gorm:"column:error;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (callRecord) TableName() string { return "calls" }

// Conversation schema mirrors the calls persistence adapter.
type conversationRecord struct {
	ID        string            `gorm:"primaryKey;column:id;size:64"`
	CallSID   string            `gorm:"column:call_sid;size:128;index"`
	UserInfo  map[string]any    `gorm:"column:user_info;serializer:json"`
	Messages  []conversationMsg `gorm:"column:messages;serializer:json"`
	CreatedAt time.Time         `gorm:"column:created_at;index"`
}

type conversationMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (conversationRecord) TableName() string { return "conversations" }
