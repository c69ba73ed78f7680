package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/ronautumn/hhnyc-api/controllers/admin"
	"github.com/ronautumn/hhnyc-api/middleware"
)

// SetupAdminRoutes registers the admin auth endpoints and back-office tools.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps) {
	admin := api.Group("/admin")
	{
		admin.POST("/login", adminController.Login(d.Cfg))
		admin.GET("/check-auth", middleware.ValidateAdminToken, adminController.CheckAuth())
		admin.GET("/products/export", middleware.ValidateAdminToken, adminController.ExportProductsToExcel(d.Products))
	}
}
