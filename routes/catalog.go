package routes

import (
	"github.com/gin-gonic/gin"

	categoryController "github.com/ronautumn/hhnyc-api/controllers/category"
	deliveryController "github.com/ronautumn/hhnyc-api/controllers/delivery"
	productController "github.com/ronautumn/hhnyc-api/controllers/product"
	"github.com/ronautumn/hhnyc-api/middleware"
)

// SetupCatalogRoutes registers the public storefront reads plus the
// admin-protected catalog writes and API-key-protected sync endpoints.
func SetupCatalogRoutes(api *gin.RouterGroup, d Deps) {
	products := api.Group("/products")
	{
		products.GET("", productController.GetProducts(d.Products))
		products.GET("/:id", productController.GetProductByID(d.Products))

		products.POST("", middleware.ValidateAdminToken, productController.CreateProduct(d.Products))
		products.PATCH("/:id", middleware.ValidateAdminToken, productController.UpdateProduct(d.Products))
		products.DELETE("/:id", middleware.ValidateAdminToken, productController.DeleteProduct(d.Products))

		products.POST("/sync", middleware.ValidateAPIKey, productController.SyncProducts(d.Syncer))
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryController.GetCategories(d.Categories))

		categories.POST("", middleware.ValidateAdminToken, categoryController.CreateCategory(d.Categories))
		categories.PATCH("/:id", middleware.ValidateAdminToken, categoryController.UpdateCategory(d.Categories))
		categories.DELETE("/:id", middleware.ValidateAdminToken, categoryController.DeleteCategory(d.Categories))

		categories.POST("/sync", middleware.ValidateAPIKey, categoryController.SyncCategories(d.Syncer))
	}

	api.GET("/delivery-settings", deliveryController.GetDeliverySettings(d.Settings))
}
