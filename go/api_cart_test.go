package storefrontserver

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

func openSession(t *testing.T, srv *testServer) string {
	t.Helper()
	rec := srv.do(t, http.MethodPost, "/api/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[cartmapper.Session](t, rec)
	require.NotEmpty(t, session.SessionID)
	assert.Empty(t, session.Items)
	return session.SessionID
}

func TestCartAPI_AddClampsToStock(t *testing.T) {
	srv := newTestServer(t)
	mug := srv.seedProduct(t, "Mug", 10, 3)
	sid := openSession(t, srv)

	rec := srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/cart/items", "", map[string]any{"productId": mug, "qty": 8})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	session := decode[cartmapper.Session](t, rec)
	require.Len(t, session.Items, 1)
	assert.Equal(t, 3, session.Items[0].Qty)
	assert.InDelta(t, 30.0, session.Total, 0.0001)

	rec = srv.do(t, http.MethodPatch, "/api/sessions/"+sid+"/cart/items/"+mug, "", map[string]any{"qty": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[cartmapper.Session](t, rec).Items[0].Qty)

	rec = srv.do(t, http.MethodDelete, "/api/sessions/"+sid+"/cart/items/"+mug, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartmapper.Session](t, rec).Items)
}

func TestCartAPI_RejectsOutOfStockAndAdmins(t *testing.T) {
	srv := newTestServer(t)
	soldOut := srv.seedProduct(t, "Vase", 40, 0)
	sid := openSession(t, srv)

	rec := srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/cart/items", "", map[string]any{"productId": soldOut, "qty": 1})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.TypeOutOfStock, decode[problemBody](t, rec).Type)

	rec = srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/cart/items", "", map[string]any{"productId": "nope", "qty": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/cart/items", "admin", map[string]any{"productId": soldOut, "qty": 1})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admins cannot purchase products", decode[problemBody](t, rec).Detail)

	rec = srv.do(t, http.MethodGet, "/api/sessions/unknown/cart", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAPI_CheckoutEmptyCart(t *testing.T) {
	srv := newTestServer(t)
	sid := openSession(t, srv)

	rec := srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/checkout", "", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Your cart is empty", decode[problemBody](t, rec).Detail)
}

func TestCartAPI_CheckoutBlockedListsNames(t *testing.T) {
	srv := newTestServer(t)
	mug := srv.seedProduct(t, "Mug", 10, 2)
	sid := openSession(t, srv)

	rec := srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/cart/items", "", map[string]any{"productId": mug, "qty": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := srv.catalog.SetQuantity(context.Background(), catalogtypes.SetQuantityInput{ID: mug, Quantity: 1})
	require.NoError(t, err)

	rec = srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/checkout", "", nil)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	problem := decode[problemBody](t, rec)
	assert.Equal(t, apierrors.TypeOutOfStock, problem.Type)
	assert.Equal(t, []any{"Mug"}, problem.Extensions["insufficient"])

	rec = srv.do(t, http.MethodGet, "/api/sessions/"+sid+"/checkout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "blocked", decode[cartmapper.Checkout](t, rec).State)

	rec = srv.do(t, http.MethodGet, "/api/sessions/"+sid+"/reconciliation", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rc := decode[cartmapper.Reconciliation](t, rec)
	assert.True(t, rc.Blocked)
	assert.Equal(t, []string{"Mug"}, rc.InsufficientNames)
}

func TestCartAPI_CheckoutAccepted(t *testing.T) {
	srv := newTestServer(t)
	mug := srv.seedProduct(t, "Mug", 10, 5)
	sid := openSession(t, srv)

	rec := srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/cart/items", "", map[string]any{"productId": mug, "qty": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/checkout", "", nil)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	session := decode[cartmapper.Session](t, rec)
	assert.Equal(t, "processing", session.Checkout.State)
	assert.Equal(t, 1, session.Checkout.Attempt)

	rec = srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/checkout", "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCartAPI_ViewAndWatchToggles(t *testing.T) {
	srv := newTestServer(t)
	sid := openSession(t, srv)

	rec := srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/view", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[cartmapper.Session](t, rec).ViewActive)

	rec = srv.do(t, http.MethodPost, "/api/sessions/"+sid+"/watch", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[cartmapper.Session](t, rec).Watching)

	rec = srv.do(t, http.MethodDelete, "/api/sessions/"+sid+"/watch", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[cartmapper.Session](t, rec).Watching)

	rec = srv.do(t, http.MethodDelete, "/api/sessions/"+sid+"/view", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[cartmapper.Session](t, rec).ViewActive)

	rec = srv.do(t, http.MethodDelete, "/api/sessions/"+sid, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = srv.do(t, http.MethodGet, "/api/sessions/"+sid+"/cart", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
