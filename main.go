package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openmart/shop-api/auth"
	"github.com/openmart/shop-api/config"
	"github.com/openmart/shop-api/logger"
	"github.com/openmart/shop-api/models"
	"github.com/openmart/shop-api/repository"
	"github.com/openmart/shop-api/routes"
	"github.com/openmart/shop-api/services/cart"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Init DB
	db := initDatabase(cfg, log)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		log.Fatal("automigrate failed", "err", err)
	}

	// Gin setup
	if cfg.Mode == "production" || cfg.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Wire the cart core against its collaborators
	cartStore := repository.NewCartRepo(db, log)
	catalog := repository.NewProductRepo(db, log)
	cartService := cart.NewService(cartStore, catalog, log, cfg.OpTimeout, cfg.PriceLookupLimit)
	authenticator := auth.NewTokenVerifier(cfg.JWTSecret)

	// Setup routes
	routes.SetupRoutes(r, db, cartService, authenticator, cfg.JWTSecret, cfg.TokenTTL)

	// Start server
	log.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", "err", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config, log *logger.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("db connection failed", "err", err)
	}
	return db
}
