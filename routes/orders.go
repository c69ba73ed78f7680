package routes

import (
	"github.com/gin-gonic/gin"

	checkoutController "github.com/ronautumn/hhnyc-api/controllers/checkout"
	orderController "github.com/ronautumn/hhnyc-api/controllers/order"
	"github.com/ronautumn/hhnyc-api/middleware"
	"github.com/ronautumn/hhnyc-api/pricing"
)

// SetupOrderRoutes registers checkout plus the admin order management
// endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, d Deps) {
	checkout := &checkoutController.Checkout{
		Carts:    d.Carts,
		Orders:   d.Orders,
		Settings: d.Settings,
		Mailer:   d.Mailer,
		Feed:     d.Feed,
		Pricing:  pricingOptions(d),
		Log:      d.Log,
	}

	orders := api.Group("/orders")
	{
		// Checkout submits here; the confirmation page reads back by ref.
		orders.POST("", checkout.Handler())
		orders.GET("/:orderID", orderController.GetOrderByRef(d.Orders))

		orders.GET("", middleware.ValidateAdminToken, orderController.GetAllOrders(d.Orders))
		orders.PATCH("/:orderID", middleware.ValidateAdminToken, orderController.UpdateOrderStatus(d.Orders, d.Feed))

		// Websocket feed for the admin dashboard.
		orders.GET("/ws", d.Feed.Handler)

		orders.POST("/sync", middleware.ValidateAPIKey, orderController.SyncOrders(d.Syncer))
	}

	api.POST("/send-order-email", middleware.ValidateAdminToken, orderController.SendOrderEmail(d.Orders, d.Mailer))
}

func pricingOptions(d Deps) pricing.Options {
	return pricing.Options{
		ShippingFee:         d.Cfg.ShippingFee,
		FreeShippingMinimum: d.Cfg.FreeShippingMinimum,
	}
}
