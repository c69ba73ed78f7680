package checkoutController

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ronautumn/hhnyc-api/cart"
	"github.com/ronautumn/hhnyc-api/config"
	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/notify"
	"github.com/ronautumn/hhnyc-api/store"
)

type fakeOrders struct {
	created      []models.Order
	takenRefs    int // first N ref checks report a collision
	refChecks    int
	createErr    error
	refCheckErr  error
	alwaysExists bool
}

func (f *fakeOrders) ListOrders(ctx context.Context) ([]models.Order, error) {
	return f.created, nil
}

func (f *fakeOrders) GetOrder(ctx context.Context, ref string) (models.Order, error) {
	for _, o := range f.created {
		if o.OrderRef == ref {
			return o, nil
		}
	}
	return models.Order{}, store.ErrNotFound
}

func (f *fakeOrders) CreateOrder(ctx context.Context, o *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *o)
	return nil
}

func (f *fakeOrders) UpdateOrderStatus(ctx context.Context, ref string, status models.OrderStatus) error {
	return nil
}

func (f *fakeOrders) OrderRefExists(ctx context.Context, ref string) (bool, error) {
	f.refChecks++
	if f.refCheckErr != nil {
		return false, f.refCheckErr
	}
	if f.alwaysExists {
		return true, nil
	}
	return f.refChecks <= f.takenRefs, nil
}

type fakeSettings struct {
	settings []models.DeliverySetting
	err      error
	calls    int
}

func (f *fakeSettings) DeliverySettings(ctx context.Context) ([]models.DeliverySetting, error) {
	f.calls++
	return f.settings, f.err
}

// Monday morning, well before the same-day cutoff.
var testNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func brooklynSettings() *fakeSettings {
	return &fakeSettings{settings: []models.DeliverySetting{
		{Borough: "Brooklyn", DeliveryFee: 5, FreeDeliveryMinimum: 50},
		{Borough: "Manhattan", DeliveryFee: 10, FreeDeliveryMinimum: 100},
	}}
}

func testProduct() models.Product {
	return models.Product{
		ID:       "p1",
		Name:     "Banana Bread",
		Price:    12,
		IsActive: true,
	}
}

func newCheckout(orders *fakeOrders, settings *fakeSettings) (*Checkout, *cart.Store) {
	carts := cart.NewStore()
	return &Checkout{
		Carts:    carts,
		Orders:   orders,
		Settings: settings,
		Mailer:   notify.New(config.SMTPConfig{}, zap.NewNop().Sugar()),
		Log:      zap.NewNop().Sugar(),
	}, carts
}

func deliveryRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:   "Ada Lovelace",
		Email:          "ada@example.com",
		Phone:          "212-555-0100",
		DeliveryMethod: models.MethodDelivery,
		Borough:        "Brooklyn",
		Address:        "123 Bedford Ave",
		ZipCode:        "11211",
		DeliveryDate:   "2026-03-03",
	}
}

func TestPlaceOrderDelivery(t *testing.T) {
	orders := &fakeOrders{}
	settings := brooklynSettings()
	h, carts := newCheckout(orders, settings)

	ct := carts.Get("sess-1")
	require.NoError(t, ct.Add(testProduct(), "", 3)) // subtotal 36, below the 50 free minimum

	order, err := h.PlaceOrder(context.Background(), "sess-1", deliveryRequest(), testNow)
	require.NoError(t, err)

	assert.Len(t, order.OrderRef, 9)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 36.0, order.Subtotal)
	assert.Equal(t, 5.0, order.Fee)
	assert.Equal(t, 41.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Banana Bread", order.Items[0].Name)
	assert.Equal(t, 3, order.Items[0].Quantity)

	require.Len(t, orders.created, 1)
	assert.Equal(t, order.OrderRef, orders.created[0].OrderRef)
	assert.True(t, ct.IsEmpty(), "cart should be cleared after a successful order")
}

func TestPlaceOrderFreeDeliveryOverMinimum(t *testing.T) {
	orders := &fakeOrders{}
	h, carts := newCheckout(orders, brooklynSettings())

	ct := carts.Get("sess-1")
	require.NoError(t, ct.Add(testProduct(), "", 5)) // subtotal 60, over the 50 minimum

	order, err := h.PlaceOrder(context.Background(), "sess-1", deliveryRequest(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Fee)
	assert.Equal(t, 60.0, order.Total)
}

func TestPlaceOrderValidationFailsBeforeAnyWrite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CheckoutRequest)
	}{
		{"missing email", func(r *CheckoutRequest) { r.Email = "" }},
		{"delivery without borough", func(r *CheckoutRequest) { r.Borough = "" }},
		{"delivery without date", func(r *CheckoutRequest) { r.DeliveryDate = "" }},
		{"malformed date", func(r *CheckoutRequest) { r.DeliveryDate = "03/08/2026" }},
		{"sunday delivery", func(r *CheckoutRequest) { r.DeliveryDate = "2026-03-08" }},
		{"manhattan off-day", func(r *CheckoutRequest) {
			r.Borough = "Manhattan"
			r.DeliveryDate = "2026-03-04" // a Wednesday
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &fakeOrders{}
			settings := brooklynSettings()
			h, carts := newCheckout(orders, settings)
			require.NoError(t, carts.Get("sess-1").Add(testProduct(), "", 1))

			req := deliveryRequest()
			tt.mutate(&req)

			_, err := h.PlaceOrder(context.Background(), "sess-1", req, testNow)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)

			assert.Empty(t, orders.created)
			assert.Zero(t, settings.calls, "settings should not be read when validation fails")
			assert.False(t, carts.Get("sess-1").IsEmpty(), "cart must survive a rejected checkout")
		})
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	orders := &fakeOrders{}
	h, _ := newCheckout(orders, brooklynSettings())

	_, err := h.PlaceOrder(context.Background(), "sess-empty", deliveryRequest(), testNow)
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.created)
}

func TestPlaceOrderShipping(t *testing.T) {
	orders := &fakeOrders{}
	settings := brooklynSettings()
	h, carts := newCheckout(orders, settings)
	h.Pricing.ShippingFee = 15
	h.Pricing.FreeShippingMinimum = 150

	require.NoError(t, carts.Get("sess-1").Add(testProduct(), "", 2)) // subtotal 24

	req := CheckoutRequest{
		CustomerName:   "Ada Lovelace",
		Email:          "ada@example.com",
		Phone:          "212-555-0100",
		DeliveryMethod: models.MethodShipping,
		Address:        "1 Infinite Loop",
		City:           "Cupertino",
		State:          "CA",
		ZipCode:        "95014",
	}

	order, err := h.PlaceOrder(context.Background(), "sess-1", req, testNow)
	require.NoError(t, err)
	assert.Equal(t, 15.0, order.Fee)
	assert.Equal(t, 39.0, order.Total)
	assert.Zero(t, settings.calls, "borough settings are not consulted for shipping")
}

func TestUniqueOrderRefRetriesOnCollision(t *testing.T) {
	orders := &fakeOrders{takenRefs: 3}
	h, carts := newCheckout(orders, brooklynSettings())
	require.NoError(t, carts.Get("sess-1").Add(testProduct(), "", 1))

	order, err := h.PlaceOrder(context.Background(), "sess-1", deliveryRequest(), testNow)
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderRef)
	assert.Equal(t, 4, orders.refChecks)
}

func TestUniqueOrderRefGivesUpAfterFiveAttempts(t *testing.T) {
	orders := &fakeOrders{alwaysExists: true}
	h, carts := newCheckout(orders, brooklynSettings())
	ct := carts.Get("sess-1")
	require.NoError(t, ct.Add(testProduct(), "", 1))

	_, err := h.PlaceOrder(context.Background(), "sess-1", deliveryRequest(), testNow)
	require.Error(t, err)
	assert.Equal(t, 5, orders.refChecks)
	assert.Empty(t, orders.created)
	assert.False(t, ct.IsEmpty(), "cart must survive a failed checkout")
}

func TestPlaceOrderPersistFailureKeepsCart(t *testing.T) {
	orders := &fakeOrders{createErr: errors.New("db down")}
	h, carts := newCheckout(orders, brooklynSettings())
	ct := carts.Get("sess-1")
	require.NoError(t, ct.Add(testProduct(), "", 1))

	_, err := h.PlaceOrder(context.Background(), "sess-1", deliveryRequest(), testNow)
	require.Error(t, err)
	assert.False(t, ct.IsEmpty())
}
