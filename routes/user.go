package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/openmart/shop-api/controllers/cart"
	userControllers "github.com/openmart/shop-api/controllers/user"
	"github.com/openmart/shop-api/middleware"
	"github.com/openmart/shop-api/services/cart"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, svc *cart.Service, authenticator cart.Authenticator) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireAuth(authenticator))
	{
		// User profile
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// Shopping cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(svc))           // GET /user/cart
			cartGroup.POST("/", cartControllers.AddToCart(svc))        // POST /user/cart
			cartGroup.GET("/total", cartControllers.GetCartTotal(svc)) // GET /user/cart/total
		}
	}
}
