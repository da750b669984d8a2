package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openmart/shop-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, jwtSecret string, tokenTTL time.Duration) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db, jwtSecret, tokenTTL))
		authGroup.POST("/login", auth.Login(db, jwtSecret, tokenTTL))
	}
}
