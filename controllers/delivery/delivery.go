package deliveryController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	checkoutController "github.com/ronautumn/hhnyc-api/controllers/checkout"
	"github.com/ronautumn/hhnyc-api/pricing"
)

// GetDeliverySettings returns the borough fee schedule. With ?borough= it
// also includes the currently eligible delivery dates for that borough.
func GetDeliverySettings(settings checkoutController.SettingsSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := settings.DeliverySettings(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery settings"})
			return
		}

		borough := c.Query("borough")
		if borough == "" {
			c.JSON(http.StatusOK, all)
			return
		}

		setting, ok := pricing.SettingFor(all, borough)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No delivery settings for borough"})
			return
		}

		dates := pricing.EligibleDeliveryDates(time.Now(), borough)
		formatted := make([]string, len(dates))
		for i, d := range dates {
			formatted[i] = d.Format("2006-01-02")
		}
		c.JSON(http.StatusOK, gin.H{
			"setting":       setting,
			"eligibleDates": formatted,
		})
	}
}
