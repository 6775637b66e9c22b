// Package router wires repositories, services, use cases, and handlers into
// the Gin engine. All dependencies are constructed here and injected
// explicitly; nothing reaches for package-level clients.
package router

import (
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/cache"
	"github.com/mathews-augusto-alves/library-api/internal/config"
	"github.com/mathews-augusto-alves/library-api/internal/handler"
	"github.com/mathews-augusto-alves/library-api/internal/metrics"
	"github.com/mathews-augusto-alves/library-api/internal/middleware"
	"github.com/mathews-augusto-alves/library-api/internal/repository"
	"github.com/mathews-augusto-alves/library-api/internal/service"
	"github.com/mathews-augusto-alves/library-api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New builds the fully wired HTTP engine.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	bookRepo := repository.NewBookRepository(db)
	personRepo := repository.NewPersonRepository(db)
	userRepo := repository.NewUserRepository(db)
	loanRepo := repository.NewLoanRepository(db)

	// Services
	bookSvc := service.NewBookService(bookRepo)
	personSvc := service.NewPersonService(personRepo)
	userSvc := service.NewUserService(userRepo)
	loanSvc := service.NewLoanService(loanRepo, bookRepo, cfg.Location())
	authSvc := service.NewAuthService(userRepo, cfg)

	// Use cases
	loanUC := usecase.NewLoanUseCase(bookSvc, personSvc, loanSvc)
	personUC := usecase.NewPersonUseCase(personSvc)
	userUC := usecase.NewUserUseCase(userSvc, authSvc)

	// Handlers
	listCache := cache.New(rdb, cfg.CacheTTL())
	bookH := handler.NewBookHandler(loanUC, listCache)
	loanH := handler.NewLoanHandler(loanUC, listCache)
	personH := handler.NewPersonHandler(personUC)
	userH := handler.NewUserHandler(userUC)
	authH := handler.NewAuthHandler(authSvc)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(metrics.Middleware())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// Unauthenticated surface
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", metrics.Handler())
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Everything below requires a valid staff token
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		books := v1.Group("/books")
		{
			books.POST("", bookH.Create)
			books.GET("", bookH.List)
			books.GET("/:id", bookH.Get)
			books.POST("/loans", loanH.Borrow)
			books.PUT("/:id/return", loanH.Return)
		}

		v1.GET("/loans", loanH.List)
		v1.GET("/loans/active/:id", loanH.ActiveLoan)

		people := v1.Group("/people")
		{
			people.POST("", personH.Create)
			people.GET("", personH.List)
			people.GET("/search", personH.Search)
			people.GET("/:id", personH.Get)
			people.PUT("/:id", personH.Update)
			people.DELETE("/:id", personH.Delete)
		}

		users := v1.Group("/users")
		{
			users.POST("", userH.Register)
			users.GET("", userH.List)
			users.GET("/:id", userH.Get)
			users.PUT("/:id", userH.Update)
			users.DELETE("/:id", userH.Delete)
		}
	}

	return r
}
