package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/cart"
	"github.com/ronautumn/hhnyc-api/config"
	checkoutController "github.com/ronautumn/hhnyc-api/controllers/checkout"
	orderController "github.com/ronautumn/hhnyc-api/controllers/order"
	"github.com/ronautumn/hhnyc-api/notify"
	"github.com/ronautumn/hhnyc-api/store"
)

// Deps bundles everything the route handlers need.
type Deps struct {
	Cfg        *config.Config
	Products   store.ProductStore
	Categories store.CategoryStore
	Orders     store.OrderStore
	Settings   checkoutController.SettingsSource
	Syncer     *store.Syncer
	Carts      *cart.Store
	Mailer     *notify.Mailer
	Feed       *orderController.Feed
	Log        *zap.SugaredLogger
}

// SetupRoutes is the single entry point that wires up the storefront, cart,
// order, and admin route groups under /api.
func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	SetupCatalogRoutes(api, d)
	SetupCartRoutes(api, d)
	SetupOrderRoutes(api, d)
	SetupAdminRoutes(api, d)
}
