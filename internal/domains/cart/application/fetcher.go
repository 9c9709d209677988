package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const defaultFetchTimeout = 5 * time.Second

// Fetcher builds stock snapshots from the inventory. It never fails: any
// error yields an empty snapshot, which reconciles as out of stock.
type Fetcher struct {
	inventory ports.InventoryReader
	logger    *slog.Logger
	timeout   time.Duration
}

type FetcherOption func(*Fetcher)

// WithFetchLogger sets the logger used to report fetch failures.
func WithFetchLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithFetchTimeout bounds a single inventory listing.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func NewFetcher(inventory ports.InventoryReader, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		inventory: inventory,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:   defaultFetchTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// FetchSnapshot lists current stock.
func (f *Fetcher) FetchSnapshot(ctx context.Context) domain.Snapshot {
	if f == nil || f.inventory == nil {
		return domain.Snapshot{}
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	snapshot, err := f.inventory.ListStock(ctx)
	if err != nil {
		f.logger.WarnContext(ctx, "stock snapshot fetch failed, treating stock as empty", slog.String("error", err.Error()))
		return domain.Snapshot{}
	}
	if snapshot == nil {
		return domain.Snapshot{}
	}
	return snapshot
}
