package server

import (
	"auction-market/internal/auth"
	"auction-market/internal/health"
	"auction-market/internal/metrics"
	"auction-market/internal/repository"
	"auction-market/internal/tracing"
	accounthandler "auction-market/services/account/handler"
	biddinghandler "auction-market/services/bidding/handler"
	listinghandler "auction-market/services/listing/handler"
	messagehandler "auction-market/services/message/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds everything the router wires into handlers
type Dependencies struct {
	ServiceName string
	JWTSecret   []byte
	Users       repository.UserDB

	Bidding    *biddinghandler.BiddingHandler
	Listings   *listinghandler.ListingHandler
	Accounts   *accounthandler.AccountHandler
	Messages   *messagehandler.MessageHandler
	Health     *health.Manager
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
	MetricsURL string
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())                        // recover from panics
	router.Use(tracing.Middleware(deps.ServiceName))  // span per request
	router.Use(RequestLoggerMiddleware(deps.Metrics)) // custom request logging

	if deps.Health != nil {
		router.GET("/healthz", health.LivenessHandler)
		router.GET("/readyz", health.ReadinessHandler(deps.Health))
	}
	if deps.Registry != nil {
		path := deps.MetricsURL
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(metrics.Handler(deps.Registry)))
	}

	authenticated := auth.Middleware(deps.JWTSecret, deps.Users)
	adminOnly := auth.RequireAdmin()

	api := router.Group("/api/v1")

	biddings := api.Group("/biddings")
	{
		biddings.GET("/:id", deps.Bidding.GetBidHistoryHandler)
		biddings.GET("/:id/winning", deps.Bidding.GetWinningBidHandler)
		biddings.POST("/:id", authenticated, deps.Bidding.PlaceBidHandler)
		biddings.PATCH("/:id/sell", authenticated, deps.Bidding.SellHandler)
	}

	products := api.Group("/products")
	{
		products.GET("", deps.Listings.ListListingsHandler)
		products.GET("/user", authenticated, deps.Listings.ListOwnListingsHandler)
		products.GET("/won", authenticated, deps.Listings.ListWonListingsHandler)
		products.GET("/bids", authenticated, deps.Listings.ListBidListingsHandler)
		products.GET("/:id", deps.Listings.GetListingHandler)
		products.POST("", authenticated, deps.Listings.CreateListingHandler)
		products.PUT("/:id", authenticated, deps.Listings.UpdateListingHandler)
		products.DELETE("/:id", authenticated, deps.Listings.DeleteListingHandler)
		products.PATCH("/commission/:id", authenticated, adminOnly, deps.Listings.VerifyListingHandler)
	}

	users := api.Group("/users")
	{
		users.POST("/signup", deps.Accounts.RegisterHandler)
		users.POST("/login", deps.Accounts.LoginHandler)
		users.GET("/logout", authenticated, deps.Accounts.LogoutHandler)
		users.GET("/me", authenticated, deps.Accounts.CurrentUserHandler)
		users.GET("/stats", authenticated, deps.Accounts.StatsHandler)
		users.PUT("/update-image", authenticated, deps.Accounts.UpdateImageHandler)
		users.GET("/users", authenticated, adminOnly, deps.Accounts.ListUsersHandler)
	}

	messages := api.Group("/messages")
	{
		messages.POST("", deps.Messages.CreateMessageHandler)
		messages.GET("", authenticated, adminOnly, deps.Messages.ListMessagesHandler)
	}

	return router
}
