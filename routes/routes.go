package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openmart/shop-api/services/cart"
)

// SetupRoutes is the single entry-point that wires up Auth, User, Product
// and Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, svc *cart.Service, authenticator cart.Authenticator, jwtSecret string, tokenTTL time.Duration) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, jwtSecret, tokenTTL)

	// Public catalog reads
	SetupProductRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, svc, authenticator)

	// Admin routes (JWT + admin role)
	SetupAdminRoutes(r, db, authenticator)
}
