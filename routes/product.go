package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/openmart/shop-api/controllers/product"
)

// SetupProductRoutes registers the public "/products" reads.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	productGroup := r.Group("/products")
	{
		productGroup.GET("/", productControllers.GetProducts(db))        // GET /products
		productGroup.GET("/:id", productControllers.GetProductByID(db)) // GET /products/:id
	}
}
