package handlers

import (
	"net/http"
	"strconv"

	"donerci/internal/models"
	"donerci/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// APIHandler serves the public storefront endpoints.
type APIHandler struct {
	contactService        services.ContactService
	catalogService        services.CatalogService
	orderService          services.OrderService
	restaurantService     services.RestaurantService
	recommendationService services.RecommendationService
}

func NewAPIHandler(
	contactService services.ContactService,
	catalogService services.CatalogService,
	orderService services.OrderService,
	restaurantService services.RestaurantService,
	recommendationService services.RecommendationService,
) *APIHandler {
	return &APIHandler{
		contactService:        contactService,
		catalogService:        catalogService,
		orderService:          orderService,
		restaurantService:     restaurantService,
		recommendationService: recommendationService,
	}
}

func (h *APIHandler) CreateContact(c *gin.Context) {
	var req services.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequest})
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *APIHandler) ListMenu(c *gin.Context) {
	items, err := h.catalogService.ListMenu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *APIHandler) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequest})
		return
	}

	item, err := h.catalogService.CreateMenuItem(c.Request.Context(), &req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) CreateOrder(c *gin.Context) {
	var req struct {
		CustomerName string               `json:"customer_name"`
		Total        *decimal.Decimal     `json:"total"`
		Items        []services.OrderLine `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequest})
		return
	}

	order, err := h.orderService.Submit(c.Request.Context(), &services.Submission{
		Source:       models.SourceAPI,
		CustomerName: req.CustomerName,
		Items:        req.Items,
		ClientTotal:  req.Total,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderPlaced(order))
}

func (h *APIHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.restaurantService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *APIHandler) GetRestaurant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.restaurantService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *APIHandler) Recommendations(c *gin.Context) {
	var restaurantID *uint
	if raw := c.Query("restaurant_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant_id"})
			return
		}
		v := uint(id)
		restaurantID = &v
	}

	recs, err := h.recommendationService.Recommend(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func orderPlaced(order *models.Order) gin.H {
	return gin.H{
		"orderId":      order.ID,
		"order_number": order.OrderNumber,
		"subtotal":     order.Subtotal,
		"delivery_fee": order.DeliveryFee,
		"total":        order.Total,
	}
}
