package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmart/shop-api/apperr"
	"github.com/openmart/shop-api/middleware"
	"github.com/openmart/shop-api/services/cart"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// POST /user/cart
//
// Adds a line item to the caller's cart. Adding a product that is already
// in the cart appends another line; whether repeat adds should merge
// instead is a product decision this API deliberately does not make.
func AddToCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updated, err := svc.AddToCart(c.Request.Context(), p, input.ProductID, input.Quantity)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, updated)
	}
}

// GET /user/cart
func GetCart(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		found, err := svc.GetCart(c.Request.Context(), p)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, found)
	}
}

// GET /user/cart/total
func GetCartTotal(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		total, err := svc.CalculateTotal(c.Request.Context(), p)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_cents": total.Cents,
			"total":       total.String(),
		})
	}
}
