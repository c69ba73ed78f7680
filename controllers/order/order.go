package orderController

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/notify"
	"github.com/ronautumn/hhnyc-api/store"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SendOrderEmailRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// -------- Helpers --------

// mapOrderStatus validates an admin-supplied status string. Admins may set
// any status; transitions are not a state machine.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusOutForDelivery):
		return models.OrderStatusOutForDelivery, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// -------- Handlers --------

func GetAllOrders(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := orders.ListOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

func GetOrderByRef(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderID")
		order, err := orders.GetOrder(c.Request.Context(), ref)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func UpdateOrderStatus(orders store.OrderStore, feed *Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err = orders.UpdateOrderStatus(c.Request.Context(), ref, newStatus)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		if order, err := orders.GetOrder(c.Request.Context(), ref); err == nil {
			feed.Broadcast(order)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

func SyncOrders(syncer *store.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if syncer == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Remote record store is not configured"})
			return
		}
		results, err := syncer.SyncOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read pending orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}

// SendOrderEmail re-sends the confirmation for an existing order.
func SendOrderEmail(orders store.OrderStore, mailer *notify.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendOrderEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := orders.GetOrder(c.Request.Context(), req.OrderID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if err := mailer.SendOrderConfirmation(order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send order email"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order email sent"})
	}
}
