package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/procuredesk/procurement-api/internal/api/handler"
	"github.com/procuredesk/procurement-api/internal/api/middleware"
	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/service"
	mongorepo "github.com/procuredesk/procurement-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/procuredesk/procurement-api/internal/infrastructure/db/redis"
	"github.com/procuredesk/procurement-api/internal/infrastructure/fanout"
)

// RouterConfig carries everything the router needs beyond its stores.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds the Echo instance with every route registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("procurement"))

	// --- Stores ---
	userRepo := mongorepo.NewUserRepository(db)
	cartRepo := mongorepo.NewCartRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	notificationRepo := mongorepo.NewNotificationRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)
	sessions := redisinfra.NewSessionRegistry(rdb)

	// --- Services ---
	hub := fanout.NewHub(log)
	authService := service.NewAuthService(userRepo, sessions, cfg.JWTSecret, cfg.TokenTTL, log)
	accessService := service.NewAccessService(log)
	cartService := service.NewCartService(cartRepo, log)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, log)
	orderService := service.NewOrderService(orderRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, hub, log)
	subscriptionService := service.NewSubscriptionService(userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	accessHandler := handler.NewAccessHandler(accessService)
	cartHandler := handler.NewCartHandler(cartService, checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Navigation (answers anonymously too) ---
	e.GET("/v1/navigation", accessHandler.Navigation, optionalAuth)
	e.GET("/v1/authorize", accessHandler.Authorize, optionalAuth)

	// --- Cart and checkout ---
	cart := e.Group("/v1/cart", auth, middleware.Screen(accessService, domain.ScreenCart))
	cart.GET("", cartHandler.Get)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:product_id", cartHandler.UpdateQuantity)
	cart.DELETE("/items/:product_id", cartHandler.RemoveItem)
	cart.POST("/checkout", cartHandler.Checkout)

	// --- Orders ---
	orders := e.Group("/v1/orders", auth, middleware.Screen(accessService, domain.ScreenOrders))
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/lines/:line_id/respond", orderHandler.RespondLine)
	orders.POST("/:id/lines/:line_id/approve", orderHandler.ApproveLine)
	orders.POST("/:id/cancel", orderHandler.Cancel)

	// --- Notifications ---
	notifications := e.Group("/v1/notifications", auth, middleware.Screen(accessService, domain.ScreenNotifications))
	notifications.GET("", notificationHandler.Unread)
	notifications.GET("/count", notificationHandler.Count)
	notifications.GET("/stream", notificationHandler.Stream)
	notifications.POST("/:id/read", notificationHandler.MarkRead)

	// --- Subscription workflow ---
	e.POST("/v1/subscription/request", subscriptionHandler.Request, auth,
		middleware.Screen(accessService, domain.ScreenSubscription))

	operator := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin)
	subscriptions := e.Group("/v1/subscriptions", auth, operator)
	subscriptions.GET("/pending", subscriptionHandler.Pending)
	subscriptions.POST("/:user_id/approve", subscriptionHandler.Approve)
	subscriptions.POST("/:user_id/reject", subscriptionHandler.Reject)

	// --- Categories ---
	e.GET("/v1/categories", categoryHandler.List, auth)
	categories := e.Group("/v1/categories", auth, operator)
	categories.POST("", categoryHandler.Create)
	categories.PUT("/:id", categoryHandler.Rename)
	categories.DELETE("/:id", categoryHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
