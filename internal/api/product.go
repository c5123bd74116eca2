package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/fridge-inventory/backend/internal/service"
	"github.com/pageza/fridge-inventory/backend/internal/types"
)

type ProductHandler struct {
	products service.IProductService
}

func NewProductHandler(products service.IProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	products := router.Group("/products", requireAuth)
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.GiftProduct)
		products.PATCH("", h.GiftProducts)
		products.DELETE("/:id", h.DeleteProduct)
		products.DELETE("", h.DeleteProducts)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	fridgeID, err := uuid.Parse(req.FridgeID)
	if err != nil {
		badRequest(c, "Invalid fridgeId")
		return
	}

	product, err := h.products.Create(c.Request.Context(), userID, req.Name, req.Space, fridgeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	filter, ok := productFilter(c)
	if !ok {
		return
	}

	products, err := h.products.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GiftProduct transfers one product owned by the caller to the receiver.
func (h *ProductHandler) GiftProduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	receiverID, ok := receiver(c)
	if !ok {
		return
	}

	product, err := h.products.Gift(c.Request.Context(), id, userID, receiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GiftProducts transfers every product of the caller matching the query filter.
func (h *ProductHandler) GiftProducts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	filter, ok := productFilter(c)
	if !ok {
		return
	}
	receiverID, ok := receiver(c)
	if !ok {
		return
	}

	if err := h.products.GiftList(c.Request.Context(), userID, receiverID, filter); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProducts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	filter, ok := productFilter(c)
	if !ok {
		return
	}

	if err := h.products.DeleteList(c.Request.Context(), userID, filter); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func productFilter(c *gin.Context) (service.ProductFilter, bool) {
	var query types.ProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return service.ProductFilter{}, false
	}

	filter := service.ProductFilter{Location: query.Location}
	if query.FridgeID != "" {
		id, err := uuid.Parse(query.FridgeID)
		if err != nil {
			badRequest(c, "Invalid fridgeId")
			return service.ProductFilter{}, false
		}
		filter.FridgeID = &id
	}
	return filter, true
}

func receiver(c *gin.Context) (uuid.UUID, bool) {
	var req types.ReceiverRequest
	if !bindJSON(c, &req) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		badRequest(c, "Invalid receiverId")
		return uuid.Nil, false
	}
	return id, true
}
