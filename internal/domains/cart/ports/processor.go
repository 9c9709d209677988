package ports

import (
	"context"
	"time"
)

// ProcessRequest describes one simulated payment run.
type ProcessRequest struct {
	SessionID string
	Attempt   int
	Total     float64
	Lines     int
}

// Receipt is returned once the simulated payment completes.
type Receipt struct {
	Reference   string
	ProcessedAt time.Time
}

// CheckoutProcessor runs the simulated payment delay.
type CheckoutProcessor interface {
	Process(ctx context.Context, req ProcessRequest) (Receipt, error)
}
