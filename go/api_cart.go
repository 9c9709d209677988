package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	carttypes "github.com/Apurer/go-gin-storefront/internal/domains/cart/application/types"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// CartAPI exposes cart sessions and the checkout simulator.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

func sessionRef(c *gin.Context) carttypes.SessionRef {
	return carttypes.SessionRef{SessionID: c.Param("sid")}
}

// Post /api/sessions
func (api *CartAPI) OpenSession(c *gin.Context) {
	view, err := api.service.OpenSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cartmapper.FromView(view))
}

// Delete /api/sessions/:sid
func (api *CartAPI) CloseSession(c *gin.Context) {
	if err := api.service.CloseSession(c.Request.Context(), sessionRef(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/sessions/:sid/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	api.respondView(c)(api.service.View(c.Request.Context(), sessionRef(c)))
}

// Post /api/sessions/:sid/cart/items
func (api *CartAPI) AddToCart(c *gin.Context) {
	var payload cartmapper.AddItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	api.respondView(c)(api.service.AddToCart(c.Request.Context(), carttypes.AddItemInput{
		SessionID: c.Param("sid"),
		ProductID: payload.ProductID,
		Qty:       payload.Qty,
	}))
}

// Patch /api/sessions/:sid/cart/items/:pid
func (api *CartAPI) UpdateQty(c *gin.Context) {
	var payload cartmapper.UpdateQty
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	api.respondView(c)(api.service.UpdateQty(c.Request.Context(), carttypes.UpdateQtyInput{
		SessionID: c.Param("sid"),
		ProductID: c.Param("pid"),
		Qty:       *payload.Qty,
	}))
}

// Delete /api/sessions/:sid/cart/items/:pid
func (api *CartAPI) RemoveFromCart(c *gin.Context) {
	api.respondView(c)(api.service.RemoveFromCart(c.Request.Context(), carttypes.ItemRef{
		SessionID: c.Param("sid"),
		ProductID: c.Param("pid"),
	}))
}

// Delete /api/sessions/:sid/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	api.respondView(c)(api.service.ClearCart(c.Request.Context(), sessionRef(c)))
}

// Post /api/sessions/:sid/view
// Marks the cart view open: stock is fetched now and again after every edit.
func (api *CartAPI) EnterView(c *gin.Context) {
	api.respondView(c)(api.service.EnterView(c.Request.Context(), sessionRef(c)))
}

// Delete /api/sessions/:sid/view
func (api *CartAPI) LeaveView(c *gin.Context) {
	api.respondView(c)(api.service.LeaveView(c.Request.Context(), sessionRef(c)))
}

// Post /api/sessions/:sid/watch
// Starts the periodic listing poll.
func (api *CartAPI) WatchListing(c *gin.Context) {
	api.respondView(c)(api.service.WatchListing(c.Request.Context(), sessionRef(c)))
}

// Delete /api/sessions/:sid/watch
func (api *CartAPI) UnwatchListing(c *gin.Context) {
	api.respondView(c)(api.service.UnwatchListing(c.Request.Context(), sessionRef(c)))
}

// Get /api/sessions/:sid/reconciliation
func (api *CartAPI) GetReconciliation(c *gin.Context) {
	view, err := api.service.View(c.Request.Context(), sessionRef(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromReconciliation(view))
}

// Get /api/sessions/:sid/checkout
func (api *CartAPI) GetCheckout(c *gin.Context) {
	view, err := api.service.View(c.Request.Context(), sessionRef(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view).Checkout)
}

// Post /api/sessions/:sid/checkout
// Accepted checkouts answer 202 while the payment simulation runs.
func (api *CartAPI) SubmitCheckout(c *gin.Context) {
	view, err := api.service.SubmitCheckout(c.Request.Context(), sessionRef(c))
	if errors.Is(err, cartdomain.ErrCheckoutBlocked) {
		responder.Respond(c, apierrors.NewInsufficientStockProblem(view.Checkout.Message, view.Checkout.InsufficientNames))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, cartmapper.FromView(view))
}

func (api *CartAPI) respondView(c *gin.Context) func(carttypes.SessionView, error) {
	return func(view carttypes.SessionView, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartmapper.FromView(view))
	}
}
