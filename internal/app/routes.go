package app

import (
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/auth"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/cache"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/config"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/handlers"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/repo"
	"github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine. Paths are fixed by the
// public API contract, so there is no version prefix.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	secret := []byte(cfg.Auth.JWTSecret)
	requireToken := auth.RequireToken(secret)

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(userSvc, secret)

	users := r.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("", requireToken, authHandler.ListUsers)

	collectionRepo := repo.NewPGCollectionRepo(db)
	collectionCache := cache.NewCollectionCache(rdb, cfg.Redis.DefaultTTL.Duration())
	collectionSvc := service.NewCollectionService(collectionRepo, collectionCache)
	collectionHandler := handlers.NewCollectionHandler(collectionSvc)

	collections := r.Group("/collections", requireToken)
	collections.GET("", collectionHandler.List)
	collections.POST("", collectionHandler.Add)
	collections.GET("/check/:externalId", collectionHandler.Check)
	collections.DELETE("/:externalId", collectionHandler.Remove)
	collections.PUT("/:externalId", collectionHandler.Update)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "MinhaGibiteca API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
