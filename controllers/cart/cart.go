package cartController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ronautumn/hhnyc-api/cart"
	"github.com/ronautumn/hhnyc-api/store"
)

const sessionCookie = "cart_session"

type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Variation string `json:"variation"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	ProductID string `json:"productId" binding:"required"`
	Variation string `json:"variation"`
	Quantity  int    `json:"quantity"`
}

// SessionID reads the cart session cookie, minting one on first contact.
func SessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := cart.NewSessionID()
	c.SetCookie(sessionCookie, id, 7*24*3600, "/", "", false, true)
	return id
}

func cartJSON(ct *cart.Cart) gin.H {
	return gin.H{
		"items":    ct.Lines(),
		"subtotal": ct.Subtotal(),
	}
}

// GET /api/cart
func GetCart(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct := carts.Get(SessionID(c))
		c.JSON(http.StatusOK, cartJSON(ct))
	}
}

// POST /api/cart/items
func AddCartItem(carts *cart.Store, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := products.GetProduct(c.Request.Context(), input.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not available"})
			return
		}

		ct := carts.Get(SessionID(c))
		if err := ct.Add(product, input.Variation, input.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cartJSON(ct))
	}
}

// PATCH /api/cart/items
func UpdateCartItem(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ct := carts.Get(SessionID(c))
		ct.UpdateQuantity(input.ProductID, input.Variation, input.Quantity)
		c.JSON(http.StatusOK, cartJSON(ct))
	}
}

// DELETE /api/cart/items/:productID
func DeleteCartItem(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct := carts.Get(SessionID(c))
		ct.Remove(c.Param("productID"), c.Query("variation"))
		c.JSON(http.StatusOK, cartJSON(ct))
	}
}

// DELETE /api/cart
func ClearCart(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		carts.Get(SessionID(c)).Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
