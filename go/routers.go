package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Access restricts a route to a caller role.
type Access int

const (
	// AccessAny lets every caller through.
	AccessAny Access = iota
	// AccessAdmin requires the admin role.
	AccessAdmin
	// AccessShopper rejects admins. Admins cannot purchase.
	AccessShopper
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Access gates the route by caller role.
	Access Access
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the storefront routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{}
		switch route.Access {
		case AccessAdmin:
			handlers = append(handlers, RequireAdmin())
		case AccessShopper:
			handlers = append(handlers, RejectAdmin())
		}
		handlers = append(handlers, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes with no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	// Routes for the ProductAPI part of the API
	ProductAPI ProductAPI
	// Routes for the CartAPI part of the API
	CartAPI CartAPI
	// Routes for the CallAPI part of the API
	CallAPI CallAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListProducts", http.MethodGet, "/api/products", AccessAny, handleFunctions.ProductAPI.ListProducts},
		{"CreateProduct", http.MethodPost, "/api/products", AccessAdmin, handleFunctions.ProductAPI.CreateProduct},
		{"GetProduct", http.MethodGet, "/api/products/:id", AccessAny, handleFunctions.ProductAPI.GetProduct},
		{"SetProductQuantity", http.MethodPatch, "/api/products/:id/quantity", AccessAdmin, handleFunctions.ProductAPI.SetQuantity},
		{"BuyProduct", http.MethodPost, "/api/products/:id/buy", AccessShopper, handleFunctions.ProductAPI.Buy},

		{"OpenSession", http.MethodPost, "/api/sessions", AccessAny, handleFunctions.CartAPI.OpenSession},
		{"CloseSession", http.MethodDelete, "/api/sessions/:sid", AccessAny, handleFunctions.CartAPI.CloseSession},
		{"GetCart", http.MethodGet, "/api/sessions/:sid/cart", AccessAny, handleFunctions.CartAPI.GetCart},
		{"ClearCart", http.MethodDelete, "/api/sessions/:sid/cart", AccessShopper, handleFunctions.CartAPI.ClearCart},
		{"AddToCart", http.MethodPost, "/api/sessions/:sid/cart/items", AccessShopper, handleFunctions.CartAPI.AddToCart},
		{"UpdateCartQty", http.MethodPatch, "/api/sessions/:sid/cart/items/:pid", AccessShopper, handleFunctions.CartAPI.UpdateQty},
		{"RemoveFromCart", http.MethodDelete, "/api/sessions/:sid/cart/items/:pid", AccessShopper, handleFunctions.CartAPI.RemoveFromCart},
		{"EnterView", http.MethodPost, "/api/sessions/:sid/view", AccessAny, handleFunctions.CartAPI.EnterView},
		{"LeaveView", http.MethodDelete, "/api/sessions/:sid/view", AccessAny, handleFunctions.CartAPI.LeaveView},
		{"WatchListing", http.MethodPost, "/api/sessions/:sid/watch", AccessAny, handleFunctions.CartAPI.WatchListing},
		{"UnwatchListing", http.MethodDelete, "/api/sessions/:sid/watch", AccessAny, handleFunctions.CartAPI.UnwatchListing},
		{"GetReconciliation", http.MethodGet, "/api/sessions/:sid/reconciliation", AccessAny, handleFunctions.CartAPI.GetReconciliation},
		{"GetCheckout", http.MethodGet, "/api/sessions/:sid/checkout", AccessAny, handleFunctions.CartAPI.GetCheckout},
		{"SubmitCheckout", http.MethodPost, "/api/sessions/:sid/checkout", AccessShopper, handleFunctions.CartAPI.SubmitCheckout},

		{"TriggerCall", http.MethodPost, "/api/call", AccessAdmin, handleFunctions.CallAPI.TriggerCall},
		{"RecentCalls", http.MethodGet, "/api/calls", AccessAdmin, handleFunctions.CallAPI.RecentCalls},
		{"SaveConversation", http.MethodPost, "/api/save-conversation", AccessAny, handleFunctions.CallAPI.SaveConversation},
		{"ListConversations", http.MethodGet, "/api/conversations", AccessAdmin, handleFunctions.CallAPI.ListConversations},
	}
}
