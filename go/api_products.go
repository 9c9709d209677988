package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	productmapper "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// ProductAPI wires HTTP transport with the catalog service.
type ProductAPI struct {
	service catalogports.Service
}

const idempotencyKeyHeader = "Idempotency-Key"

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /api/products
// Lists the inventory
func (api *ProductAPI) ListProducts(c *gin.Context) {
	result, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromProjectionList(result))
}

// Post /api/products
// Adds a product (admin only)
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload productmapper.CreateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := productmapper.ToCreateInput(payload)
	input.IdempotencyKey = c.GetHeader(idempotencyKeyHeader)
	saved, err := api.service.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productmapper.ProductAdded{
		Message: "Product added",
		Product: productmapper.FromProjection(saved),
	})
}

// Get /api/products/:id
func (api *ProductAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), catalogtypes.ProductIdentifier{ID: c.Param("id")})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromProjection(product))
}

// Patch /api/products/:id/quantity
// Overrides stock (admin only)
func (api *ProductAPI) SetQuantity(c *gin.Context) {
	var payload productmapper.QuantityUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if payload.Quantity == nil {
		respondBadRequest(c, errors.New("quantity is required"))
		return
	}
	updated, err := api.service.SetQuantity(c.Request.Context(), catalogtypes.SetQuantityInput{
		ID:       c.Param("id"),
		Quantity: *payload.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromProjection(updated))
}

// Post /api/products/:id/buy
// Decrements stock for a purchase
func (api *ProductAPI) Buy(c *gin.Context) {
	var payload productmapper.Purchase
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if payload.Qty == nil {
		respondBadRequest(c, errors.New("qty is required"))
		return
	}
	updated, err := api.service.Purchase(c.Request.Context(), catalogtypes.PurchaseInput{
		ID:  c.Param("id"),
		Qty: *payload.Qty,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromProjection(updated))
}
