package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"velora/internal/adapter/api"
	"velora/internal/adapter/api/handler"
	apimiddleware "velora/internal/adapter/api/middleware"
	"velora/internal/adapter/api/router"
	"velora/internal/adapter/cache"
	"velora/internal/adapter/repository"
	"velora/internal/infrastructure/auth"
	"velora/internal/infrastructure/postgres"
	"velora/internal/infrastructure/redis"
	"velora/internal/usecase"
	"velora/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.Migrate(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	responseCache := cache.NewRedisCache(redisClient)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	cartRepo := repository.NewPostgresCartRepository(pool)
	productRepo := repository.NewPostgresProductRepository(pool)
	categoryRepo := repository.NewPostgresCategoryRepository(pool)
	brandRepo := repository.NewPostgresBrandRepository(pool)
	wishlistRepo := repository.NewPostgresWishlistRepository(pool)
	userRepo := repository.NewPostgresUserRepository(pool)

	cartUseCase := usecase.NewCartUseCase(cartRepo, responseCache, cfg.CartCacheTTL)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, brandRepo, responseCache, cfg.ListCacheTTL, cfg.DetailCacheTTL)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, responseCache, cfg.ListCacheTTL, cfg.DetailCacheTTL)
	brandUseCase := usecase.NewBrandUseCase(brandRepo, responseCache, cfg.BrandCacheTTL)
	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, productRepo)
	adminUseCase := usecase.NewAdminUseCase(userRepo)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenVerifier)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, router.Handlers{
		Health:   handler.NewHealthHandler(),
		Product:  handler.NewProductHandler(productUseCase),
		Category: handler.NewCategoryHandler(categoryUseCase),
		Brand:    handler.NewBrandHandler(brandUseCase),
		Cart:     handler.NewCartHandler(cartUseCase),
		Wishlist: handler.NewWishlistHandler(wishlistUseCase),
		Admin:    handler.NewAdminHandler(adminUseCase),
	}, authMiddleware, adminMiddleware)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
