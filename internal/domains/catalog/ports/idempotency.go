package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict means the key was already used for a different product submission.
var ErrIdempotencyConflict = errors.New("idempotency key reused with a different payload")

// IdempotencyRecord ties a client-supplied key to the product it created.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	ProductID   string
	CreatedAt   time.Time
}

// IdempotencyStore remembers create-product keys so admin retries replay safely.
type IdempotencyStore interface {
	// Get returns nil when the key is unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save reserves the key when it is unknown. An existing key is never
	// overwritten: the same hash returns the stored record, a different hash
	// returns it with ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
