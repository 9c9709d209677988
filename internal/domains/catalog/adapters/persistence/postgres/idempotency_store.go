package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists create-product keys in PostgreSQL.
type IdempotencyStore struct {
	db *gorm.DB
}

func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:idempotency_key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	ProductID   string    `gorm:"column:product_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyRecord) TableName() string { return "product_idempotency_keys" }

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres idempotency store not configured")
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toPort(), nil
}

// Save inserts the key or leaves an existing row untouched, then compares hashes.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres idempotency store not configured")
	}
	row := idempotencyRecord{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		ProductID:   record.ProductID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, err
	}
	stored, err := s.Get(ctx, record.Key)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.New("idempotency record vanished after insert")
	}
	if stored.RequestHash != record.RequestHash {
		return stored, ports.ErrIdempotencyConflict
	}
	return stored, nil
}

func (r idempotencyRecord) toPort() *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		ProductID:   r.ProductID,
		CreatedAt:   r.CreatedAt,
	}
}
