package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"reviewtrust/internal/config"
	"reviewtrust/internal/database"
	"reviewtrust/internal/middleware"
	"reviewtrust/internal/modules/admin"
	"reviewtrust/internal/modules/auth"
	"reviewtrust/internal/modules/business"
	"reviewtrust/internal/modules/explore"
	"reviewtrust/internal/modules/image"
	"reviewtrust/internal/modules/review"
	jwtsvc "reviewtrust/internal/pkg/jwt"
	"reviewtrust/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewImageRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, businessRepo, j))
	exploreHandler := explore.NewHandler(explore.NewService(businessRepo, categoryRepo, reviewRepo, imageRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, businessRepo))
	businessHandler := business.NewHandler(business.NewService(businessRepo, categoryRepo, reviewRepo))
	imageHandler := image.NewHandler(image.NewService(imageRepo, businessRepo, cfg.UploadsDir, cfg.StaticBase))
	adminHandler := admin.NewHandler(admin.NewService(userRepo, businessRepo, reviewRepo, categoryRepo))

	ownership := middleware.NewOwnershipChecker(businessRepo, imageRepo)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.Static(cfg.StaticBase, cfg.UploadsDir)

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.Auth(j), middleware.AdminOnly())

		authHandler.RegisterRoutes(v1, protected)
		exploreHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1, protected, adminGroup)
		businessHandler.RegisterRoutes(v1, protected, ownership)
		imageHandler.RegisterRoutes(v1, protected, ownership)
		adminHandler.RegisterRoutes(adminGroup)
	}

	log.Printf("listening on %s (env=%s)", cfg.HTTPAddr, cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
