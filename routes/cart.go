package routes

import (
	"github.com/gin-gonic/gin"

	cartController "github.com/ronautumn/hhnyc-api/controllers/cart"
)

// SetupCartRoutes registers the session cart endpoints.
func SetupCartRoutes(api *gin.RouterGroup, d Deps) {
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", cartController.GetCart(d.Carts))
		cartGroup.POST("/items", cartController.AddCartItem(d.Carts, d.Products))
		cartGroup.PATCH("/items", cartController.UpdateCartItem(d.Carts))
		cartGroup.DELETE("/items/:productID", cartController.DeleteCartItem(d.Carts))
		cartGroup.DELETE("", cartController.ClearCart(d.Carts))
	}
}
