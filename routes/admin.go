package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/openmart/shop-api/controllers/product"
	"github.com/openmart/shop-api/middleware"
	"github.com/openmart/shop-api/services/cart"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Catalog mutation is
// restricted to principals with the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, authenticator cart.Authenticator) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(authenticator), middleware.RequireAdmin())
	{
		adminGroup.POST("/products", productControllers.CreateProduct(db))       // POST /admin/products
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(db))    // PUT /admin/products/:id
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(db)) // DELETE /admin/products/:id
	}
}
