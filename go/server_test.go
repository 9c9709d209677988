package storefrontserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	callsmemory "github.com/Apurer/go-gin-storefront/internal/domains/calls/adapters/memory"
	callsapp "github.com/Apurer/go-gin-storefront/internal/domains/calls/application"
	cartinventory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/inventory"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartworkflows "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/workflows"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
)

type stubDialer struct {
	sid string
	err error
}

func (d *stubDialer) TriggerCall(context.Context, string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.sid, nil
}

type testServer struct {
	engine  *gin.Engine
	catalog *catalogapp.Service
	dialer  *stubDialer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := catalogapp.NewService(catalogmemory.NewRepository(),
		catalogapp.WithIdempotencyStore(catalogmemory.NewIdempotencyStore()),
	)
	sessions := cartmemory.NewSessionStore()
	t.Cleanup(sessions.CloseAll)
	cart := cartapp.NewService(sessions,
		cartinventory.NewCatalogReader(catalog),
		cartworkflows.NewInlineCheckoutProcessor(time.Hour),
		cartapp.WithSessionPollInterval(time.Hour))
	dialer := &stubDialer{sid: "CA100"}
	calls := callsapp.NewService(callsmemory.NewRepository(), dialer, callsapp.WithRateLimit(0, 0))

	engine := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		ProductAPI: NewProductAPI(catalog),
		CartAPI:    NewCartAPI(cart),
		CallAPI:    NewCallAPI(calls),
	})
	return &testServer{engine: engine, catalog: catalog, dialer: dialer}
}

// do issues a request. role may be empty for an anonymous shopper.
func (s *testServer) do(t *testing.T, method, path, role string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(RoleHeader, role)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedProduct(t *testing.T, name string, price float64, qty int64) string {
	t.Helper()
	description := name + " description"
	saved, err := s.catalog.CreateProduct(context.Background(), catalogtypes.CreateProductInput{
		Name:        &name,
		Price:       &price,
		Description: &description,
		Quantity:    &qty,
	})
	require.NoError(t, err)
	return saved.Entity.ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type problemBody struct {
	Type       string         `json:"type"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail"`
	Extensions map[string]any `json:"extensions"`
}

var errUpstream = errors.New("voice service returned 503")
