// Package pricing computes cart totals and delivery-date eligibility. All
// functions are pure; monetary values stay unrounded floats; rounding to two
// digits happens at presentation time only.
package pricing

import (
	"strings"

	"github.com/ronautumn/hhnyc-api/models"
)

const (
	DefaultShippingFee         = 15.0
	DefaultFreeShippingMinimum = 150.0
)

// Line is one priced cart line: the effective unit price (variation price when
// one is selected, base price otherwise) and the quantity.
type Line struct {
	Price    float64
	Quantity int
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Fee      float64 `json:"fee"`
	Total    float64 `json:"total"`
}

// Options overrides the flat shipping schedule. Zero values fall back to the
// defaults.
type Options struct {
	ShippingFee         float64
	FreeShippingMinimum float64
}

func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// ComputeTotals applies the delivery or shipping fee schedule to the cart.
//
// For delivery, the borough's DeliverySetting decides the fee: free at or
// above the borough's free-delivery minimum, otherwise the borough fee. A
// borough with no setting gets no fee. For shipping, a flat fee applies below
// the free-shipping minimum.
func ComputeTotals(lines []Line, method, borough string, settings []models.DeliverySetting, opts Options) Totals {
	subtotal := Subtotal(lines)
	var fee float64

	switch method {
	case models.MethodDelivery:
		if s, ok := settingFor(settings, borough); ok && subtotal < s.FreeDeliveryMinimum {
			fee = s.DeliveryFee
		}
	case models.MethodShipping:
		shippingFee := opts.ShippingFee
		if shippingFee == 0 {
			shippingFee = DefaultShippingFee
		}
		freeMin := opts.FreeShippingMinimum
		if freeMin == 0 {
			freeMin = DefaultFreeShippingMinimum
		}
		if subtotal < freeMin {
			fee = shippingFee
		}
	}

	return Totals{Subtotal: subtotal, Fee: fee, Total: subtotal + fee}
}

// SettingFor looks up a borough's delivery setting, case-insensitively.
func SettingFor(settings []models.DeliverySetting, borough string) (models.DeliverySetting, bool) {
	return settingFor(settings, borough)
}

func settingFor(settings []models.DeliverySetting, borough string) (models.DeliverySetting, bool) {
	for _, s := range settings {
		if strings.EqualFold(s.Borough, borough) {
			return s, true
		}
	}
	return models.DeliverySetting{}, false
}
