package checkoutController

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/cart"
	cartController "github.com/ronautumn/hhnyc-api/controllers/cart"
	orderController "github.com/ronautumn/hhnyc-api/controllers/order"
	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/notify"
	"github.com/ronautumn/hhnyc-api/pricing"
	"github.com/ronautumn/hhnyc-api/store"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError is a user-correctable checkout failure; the handler maps it
// to a 400 instead of a 500.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

// SettingsSource yields the borough fee schedule for totals computation.
type SettingsSource interface {
	DeliverySettings(ctx context.Context) ([]models.DeliverySetting, error)
}

type CheckoutRequest struct {
	CustomerName   string `json:"customerName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	DeliveryMethod string `json:"deliveryMethod" binding:"required,oneof=delivery shipping"`
	Borough        string `json:"borough"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	DeliveryDate   string `json:"deliveryDate"` // YYYY-MM-DD
}

// Validate applies the method-specific field rules and, for delivery, the
// date eligibility rules. Pure so the rules are testable without HTTP.
func (r CheckoutRequest) Validate(now time.Time) error {
	if r.CustomerName == "" || r.Email == "" || r.Phone == "" {
		return ValidationError{"customerName, email, and phone are required"}
	}
	switch r.DeliveryMethod {
	case models.MethodDelivery:
		if r.Borough == "" || r.Address == "" || r.ZipCode == "" {
			return ValidationError{"borough, address, and zipCode are required for delivery"}
		}
		if r.DeliveryDate == "" {
			return ValidationError{"deliveryDate is required for delivery"}
		}
		date, err := time.ParseInLocation("2006-01-02", r.DeliveryDate, now.Location())
		if err != nil {
			return ValidationError{"deliveryDate must be formatted YYYY-MM-DD"}
		}
		if !pricing.IsDeliveryDateEligible(now, r.Borough, date) {
			return ValidationError{fmt.Sprintf("delivery to %s is not available on %s", r.Borough, r.DeliveryDate)}
		}
	case models.MethodShipping:
		if r.Address == "" || r.City == "" || r.State == "" || r.ZipCode == "" {
			return ValidationError{"address, city, state, and zipCode are required for shipping"}
		}
	}
	return nil
}

type Checkout struct {
	Carts    *cart.Store
	Orders   store.OrderStore
	Settings SettingsSource
	Mailer   *notify.Mailer
	Feed     *orderController.Feed
	Pricing  pricing.Options
	Log      *zap.SugaredLogger
}

// generateOrderRef builds a human-facing order number from the epoch-millis
// tail plus a random tail. Collisions are possible, so PlaceOrder verifies
// the candidate against the store before accepting it.
func generateOrderRef() string {
	millis := time.Now().UnixMilli() % 1_000_000
	return fmt.Sprintf("%06d%03d", millis, rand.Intn(1000))
}

func (h *Checkout) uniqueOrderRef(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		ref := generateOrderRef()
		exists, err := h.Orders.OrderRefExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return "", errors.New("could not allocate a unique order id")
}

// PlaceOrder assembles and persists an order from the session cart.
func (h *Checkout) PlaceOrder(ctx context.Context, sessionID string, req CheckoutRequest, now time.Time) (models.Order, error) {
	if err := req.Validate(now); err != nil {
		return models.Order{}, err
	}

	ct := h.Carts.Get(sessionID)
	lines := ct.Lines()
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var settings []models.DeliverySetting
	if req.DeliveryMethod == models.MethodDelivery {
		var err error
		settings, err = h.Settings.DeliverySettings(ctx)
		if err != nil {
			return models.Order{}, fmt.Errorf("load delivery settings: %w", err)
		}
	}
	totals := pricing.ComputeTotals(ct.PricingLines(), req.DeliveryMethod, req.Borough, settings, h.Pricing)

	ref, err := h.uniqueOrderRef(ctx)
	if err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = models.OrderItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
			Variation: l.Variation,
		}
	}

	order := models.Order{
		OrderRef:       ref,
		CustomerName:   req.CustomerName,
		Email:          req.Email,
		Phone:          req.Phone,
		Items:          items,
		DeliveryMethod: req.DeliveryMethod,
		Borough:        req.Borough,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		DeliveryDate:   req.DeliveryDate,
		Subtotal:       totals.Subtotal,
		Fee:            totals.Fee,
		Total:          totals.Total,
		Status:         models.OrderStatusPending,
		CreatedAt:      now,
	}

	if err := h.Orders.CreateOrder(ctx, &order); err != nil {
		return models.Order{}, fmt.Errorf("persist order: %w", err)
	}

	// The order exists; everything past this point is best-effort.
	ct.Clear()
	if h.Feed != nil {
		h.Feed.Broadcast(order)
	}
	go func(o models.Order) {
		if err := h.Mailer.SendOrderConfirmation(o); err != nil {
			h.Log.Warnw("order confirmation email failed", "orderRef", o.OrderRef, "error", err)
		}
	}(order)

	return order, nil
}

// Handler is POST /api/orders.
func (h *Checkout) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := h.PlaceOrder(c.Request.Context(), cartController.SessionID(c), req, time.Now())
		if err != nil {
			var verr ValidationError
			if errors.As(err, &verr) || errors.Is(err, ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
