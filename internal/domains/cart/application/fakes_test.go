package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

type fakeInventory struct {
	mu       sync.Mutex
	products map[string]ports.ProductInfo
	fail     bool
	gate     chan struct{}
	calls    atomic.Int64
}

func newFakeInventory(products ...ports.ProductInfo) *fakeInventory {
	inv := &fakeInventory{products: map[string]ports.ProductInfo{}}
	for _, p := range products {
		inv.products[p.Ref.ID] = p
	}
	return inv
}

func (f *fakeInventory) setStock(id string, qty int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	p.Available = qty
	f.products[id] = p
}

func (f *fakeInventory) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

// hold makes every ListStock block until release is called.
func (f *fakeInventory) hold() (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.gate = nil
		f.mu.Unlock()
		close(gate)
	}
}

func (f *fakeInventory) ListStock(ctx context.Context) (domain.Snapshot, error) {
	f.calls.Add(1)
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("inventory unavailable")
	}
	snapshot := domain.Snapshot{}
	for id, p := range f.products {
		snapshot[id] = p.Available
	}
	return snapshot, nil
}

func (f *fakeInventory) LookupProduct(_ context.Context, id string) (ports.ProductInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return ports.ProductInfo{}, ports.ErrProductNotFound
	}
	return p, nil
}

// fakeProcessor completes a run when the test sends on results.
type fakeProcessor struct {
	results  chan error
	requests chan ports.ProcessRequest
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{results: make(chan error, 4), requests: make(chan ports.ProcessRequest, 4)}
}

func (f *fakeProcessor) Process(ctx context.Context, req ports.ProcessRequest) (ports.Receipt, error) {
	f.requests <- req
	select {
	case err := <-f.results:
		if err != nil {
			return ports.Receipt{}, err
		}
		return ports.Receipt{Reference: "chk-test"}, nil
	case <-ctx.Done():
		return ports.Receipt{}, ctx.Err()
	}
}

type mapStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newMapStore() *mapStore {
	return &mapStore{sessions: map[string]*Session{}}
}

func (m *mapStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
}

func (m *mapStore) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *mapStore) Delete(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	return s, ok
}

var (
	mugInfo  = ports.ProductInfo{Ref: domain.ProductRef{ID: "mug", Name: "Mug", Price: 8}, Available: 5}
	lampInfo = ports.ProductInfo{Ref: domain.ProductRef{ID: "lamp", Name: "Lamp", Price: 25}, Available: 1}
)
