package handlers

import (
	"context"
	"net/http"

	"donerci/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services groups everything the HTTP layer depends on.
type Services struct {
	Contacts        services.ContactService
	Catalog         services.CatalogService
	Orders          services.OrderService
	Carts           services.CartService
	Restaurants     services.RestaurantService
	Users           services.UserService
	Activities      services.ActivityService
	Stats           services.StatsService
	Recommendations services.RecommendationService
}

type RouterOptions struct {
	Logger           *zap.Logger
	AllowedOrigins   []string
	SessionCookieTTL int
	// HealthCheck reports whether backing stores are reachable.
	HealthCheck func(ctx context.Context) error
}

func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), CORSMiddleware(opts.AllowedOrigins))

	apiHandler := NewAPIHandler(svc.Contacts, svc.Catalog, svc.Orders, svc.Restaurants, svc.Recommendations)
	cartHandler := NewCartHandler(svc.Carts, opts.SessionCookieTTL)
	adminHandler := NewAdminHandler(svc.Users, svc.Restaurants, svc.Orders, svc.Activities, svc.Stats)

	router.GET("/health", func(c *gin.Context) {
		if opts.HealthCheck != nil {
			if err := opts.HealthCheck(c.Request.Context()); err != nil {
				c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/contact", apiHandler.CreateContact)
		api.GET("/menu", apiHandler.ListMenu)
		api.POST("/menu", apiHandler.CreateMenuItem)
		api.POST("/order", apiHandler.CreateOrder)

		api.GET("/restaurants", apiHandler.ListRestaurants)
		api.GET("/restaurants/:id", apiHandler.GetRestaurant)
		api.GET("/recommendations", apiHandler.Recommendations)
	}

	cart := api.Group("/cart", cartHandler.Session)
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PATCH("/items/:id", cartHandler.UpdateQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.POST("/checkout", cartHandler.Checkout)
	}

	// No authentication in front of these; deploy behind a trusted proxy.
	admin := api.Group("/admin")
	{
		admin.GET("/stats", adminHandler.GetStats)

		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users", adminHandler.CreateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/restaurants", adminHandler.ListRestaurants)
		admin.POST("/restaurants", adminHandler.CreateRestaurant)
		admin.DELETE("/restaurants/:id", adminHandler.DeleteRestaurant)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

		admin.GET("/activities", adminHandler.ListActivities)
	}

	return router
}
