package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/pressmark/cms-api/internal/api/handler"
	"github.com/pressmark/cms-api/internal/api/middleware"
	"github.com/pressmark/cms-api/internal/core/domain"
	"github.com/pressmark/cms-api/internal/core/ports"
	"github.com/pressmark/cms-api/internal/core/service"
	mongodb "github.com/pressmark/cms-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pressmark/cms-api/internal/infrastructure/db/redis"
	"github.com/pressmark/cms-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, files ports.FileStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("cms"))
	e.Use(echomiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)
	cache := redisdb.NewArticleCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	articleService := service.NewArticleService(articleRepo, userRepo, files, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes (rate limited) ---
	auth := e.Group("/auth", echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(rate.Limit(20)),
	))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Article routes ---
	e.GET("/articles", articleHandler.List)
	e.GET("/articles/slug/:slug", articleHandler.GetBySlug)
	e.GET("/articles/:id", articleHandler.Get)
	e.POST("/articles", articleHandler.Create, authRequired)
	e.PUT("/articles/:id", articleHandler.Update, authRequired)
	e.DELETE("/articles/:id", articleHandler.Delete, authRequired)
	e.PATCH("/articles/:id/publish", articleHandler.Publish, authRequired, adminOnly)

	// --- Uploaded images ---
	e.Static("/uploads", cfg.Uploads.Dir)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "API is running"})
	})

	return e
}
