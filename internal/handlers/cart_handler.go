package handlers

import (
	"net/http"

	"donerci/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader     = "X-Session-ID"
	sessionCookie     = "cart_session"
	sessionContextKey = "session_id"
)

type CartHandler struct {
	cartService services.CartService
	cookieTTL   int
}

func NewCartHandler(cartService services.CartService, cookieTTL int) *CartHandler {
	return &CartHandler{cartService: cartService, cookieTTL: cookieTTL}
}

// Session resolves the cart session from the header or cookie and issues a
// new one when neither carries a valid id.
func (h *CartHandler) Session(c *gin.Context) {
	sid := c.GetHeader(sessionHeader)
	if sid == "" {
		sid, _ = c.Cookie(sessionCookie)
	}
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
	}

	c.Set(sessionContextKey, sid)
	c.Header(sessionHeader, sid)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sid, h.cookieTTL, "/", "", false, true)
	c.Next()
}

func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cartService.View(c.Request.Context(), c.GetString(sessionContextKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		MenuItemID uint `json:"menu_item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequest})
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), c.GetString(sessionContextKey), req.MenuItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequest})
		return
	}

	view, err := h.cartService.SetQuantity(c.Request.Context(), c.GetString(sessionContextKey), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(c.Request.Context(), c.GetString(sessionContextKey), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), c.GetString(sessionContextKey)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Checkout(c *gin.Context) {
	var req services.CheckoutDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequest})
		return
	}

	order, err := h.cartService.Checkout(c.Request.Context(), c.GetString(sessionContextKey), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderPlaced(order))
}
