package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/service"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Gateway struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	auth     *service.AuthService
	products *service.ProductService
	carts    *service.CartService
	orders   *service.OrderService
}

func NewGateway(
	cfg *config.Config,
	logger *zap.Logger,
	auth *service.AuthService,
	products *service.ProductService,
	carts *service.CartService,
	orders *service.OrderService,
) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Gateway{
		config:   cfg,
		logger:   logger,
		router:   router,
		auth:     auth,
		products: products,
		carts:    carts,
		orders:   orders,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := g.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", g.signup)
			auth.POST("/login", g.login)
			auth.GET("/profile", g.requireAuth(), g.getProfile)
		}

		products := api.Group("/products")
		{
			products.GET("", g.listProducts)
			products.GET("/:id", g.getProduct)
			products.POST("/:id/review", g.requireAuth(), g.addReview)
		}

		// Registered outside /products: a static segment there would
		// collide with the :id wildcard in gin's route tree.
		api.GET("/categories", g.listCategories)

		cart := api.Group("/cart", g.requireAuth())
		{
			cart.GET("", g.getCart)
			cart.POST("", g.addCartItem)
			cart.PUT("/:id", g.updateCartItem)
			cart.DELETE("/:id", g.removeCartItem)
			cart.DELETE("", g.clearCart)
		}

		orders := api.Group("/orders", g.requireAuth())
		{
			orders.POST("", g.createOrder)
			orders.GET("", g.listOrders)
			orders.GET("/:id", g.getOrder)
		}

		profile := api.Group("/profile", g.requireAuth())
		{
			profile.GET("", g.getProfile)
			profile.PUT("", g.updateProfile)
			profile.PUT("/password", g.changePassword)
		}
	}

	// Swagger
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.config.Server.Host, g.config.Server.Port)
	g.logger.Info("API server starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (g *Gateway) Router() http.Handler {
	return g.router
}

// writeError maps the service error taxonomy onto HTTP statuses. Every
// failure body is {"message": ...}; internals are logged, never serialized.
func (g *Gateway) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		g.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
